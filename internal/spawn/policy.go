// Package spawn decides what the playfield produces next: which target kind,
// which size tier and where, plus the per-level spawn session that paces it.
package spawn

import (
	"github.com/vovakirdan/duckclick/internal/core"
	"github.com/vovakirdan/duckclick/internal/level"
)

// Kind is the type of target to spawn.
type Kind int

const (
	KindGood Kind = iota
	KindDecoy
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindGood:
		return "good"
	case KindDecoy:
		return "decoy"
	default:
		return "unknown"
	}
}

// Tier is a target size class. Smaller targets are harder to hit.
type Tier int

const (
	TierLarge Tier = iota
	TierMedium
	TierSmall
)

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierLarge:
		return "large"
	case TierMedium:
		return "medium"
	case TierSmall:
		return "small"
	default:
		return "unknown"
	}
}

// noiseAmplitude bounds the random offset applied to the good-target probability.
const noiseAmplitude = 0.1

// RandomSource supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Policy makes the random spawn decisions for a level.
type Policy struct {
	rng RandomSource
}

// NewPolicy creates a policy drawing from rng.
func NewPolicy(rng RandomSource) *Policy {
	return &Policy{rng: rng}
}

// ChooseNextKind picks the kind of the next target.
// An exhausted quota deterministically selects the other kind; callers must
// stop asking once both are zero. Otherwise the good-target share of the
// remaining quota is perturbed by up to ±0.1 so equal quotas do not simply
// alternate.
func (p *Policy) ChooseNextKind(goodRemaining, decoyRemaining int) Kind {
	if decoyRemaining <= 0 {
		return KindGood
	}
	if goodRemaining <= 0 {
		return KindDecoy
	}

	pGood := float64(goodRemaining) / float64(goodRemaining+decoyRemaining)
	offset := (p.rng.Float64()*2 - 1) * noiseAmplitude
	pGood = core.ClampF(pGood+offset, 0, 1)

	if p.rng.Float64() < pGood {
		return KindGood
	}
	return KindDecoy
}

// ChooseSizeTier picks a tier from a normalized distribution.
func (p *Policy) ChooseSizeTier(dist level.SizeDistribution) Tier {
	r := p.rng.Float64()
	switch {
	case r < dist.Large:
		return TierLarge
	case r < dist.Large+dist.Medium:
		return TierMedium
	default:
		return TierSmall
	}
}

// ChoosePosition picks a uniform point inside area inset by padding.
// An axis whose inset is empty collapses to the area's center on that axis.
func (p *Policy) ChoosePosition(area core.Bounds, padding float64) core.Vec {
	center := area.Center()
	return core.Vec{
		X: p.pickAxis(area.MinX, area.MaxX, padding, center.X),
		Y: p.pickAxis(area.MinY, area.MaxY, padding, center.Y),
	}
}

func (p *Policy) pickAxis(lo, hi, padding, center float64) float64 {
	lo += padding
	hi -= padding
	if hi <= lo {
		return center
	}
	return lo + p.rng.Float64()*(hi-lo)
}
