package target

import "github.com/vovakirdan/duckclick/internal/spawn"

// PointsFor returns the score for hitting a good target of the given tier.
// Smaller targets are harder to hit and worth more.
func PointsFor(tier spawn.Tier) int {
	switch tier {
	case spawn.TierLarge:
		return 1
	case spawn.TierMedium:
		return 2
	case spawn.TierSmall:
		return 5
	default:
		return 0
	}
}

// Good is the rewarding variant.
type Good struct{}

// Kind implements Variant.
func (Good) Kind() spawn.Kind { return spawn.KindGood }

// Clicked reports the tier's point value.
func (Good) Clicked(r Reporter, t *Target) { r.GoodClicked(PointsFor(t.Tier)) }

// Expired reports a miss. Misses carry no score effect.
func (Good) Expired(r Reporter, _ *Target) { r.GoodExpired() }

// Decoy is the penalizing variant. The penalty amount belongs to the level,
// so the decoy only signals that it was hit.
type Decoy struct{}

// Kind implements Variant.
func (Decoy) Kind() spawn.Kind { return spawn.KindDecoy }

// Clicked reports a time-penalty event.
func (Decoy) Clicked(r Reporter, _ *Target) { r.DecoyClicked() }

// Expired reports a neutral expiry.
func (Decoy) Expired(r Reporter, _ *Target) { r.DecoyExpired() }
