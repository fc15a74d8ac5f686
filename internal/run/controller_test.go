package run

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duckclick/internal/checkpoint"
	"github.com/vovakirdan/duckclick/internal/level"
)

// mapLevels serves levels from a map and synthesizes defaults for the rest.
type mapLevels map[int]level.Config

func (m mapLevels) Load(id int) level.Config {
	if cfg, ok := m[id]; ok {
		return cfg
	}
	return level.Default(id)
}

func (m mapLevels) NextLevelID(current int) (int, bool) {
	_, ok := m[current+1]
	return current + 1, ok
}

func campaign(n int, good int, timeLimit float64) mapLevels {
	m := mapLevels{}
	for id := 1; id <= n; id++ {
		cfg := level.Default(id)
		cfg.GoodTargetCount = good
		cfg.DecoyTargetCount = 1
		cfg.TimeLimitSeconds = timeLimit
		cfg.DecoyPenaltySeconds = 3
		m[id] = cfg
	}
	return m
}

type fakeSpawner struct {
	active  bool
	overlap bool
	starts  []int
	stops   int
	clears  int
}

func (f *fakeSpawner) StartSpawning(cfg level.Config) {
	if f.active {
		f.overlap = true
	}
	f.active = true
	f.starts = append(f.starts, cfg.LevelID)
}

func (f *fakeSpawner) StopSpawning() {
	f.active = false
	f.stops++
}

func (f *fakeSpawner) ClearActiveEntities() {
	f.clears++
}

type recorder struct {
	phases []Phase
	loaded []int
	scores []int
	lives  []int
	times  []float64
	ended  []int
}

func (r *recorder) PhaseChanged(p Phase)         { r.phases = append(r.phases, p) }
func (r *recorder) LevelLoaded(cfg level.Config) { r.loaded = append(r.loaded, cfg.LevelID) }
func (r *recorder) ScoreChanged(score int)       { r.scores = append(r.scores, score) }
func (r *recorder) LivesChanged(lives int)       { r.lives = append(r.lives, lives) }
func (r *recorder) TimeChanged(t float64)        { r.times = append(r.times, t) }
func (r *recorder) RunEnded(score int)           { r.ended = append(r.ended, score) }

type harness struct {
	c       *Controller
	spawner *fakeSpawner
	cps     *checkpoint.Memory
	events  *recorder
}

func newHarness(levels LevelSource, opts ...Option) *harness {
	h := &harness{spawner: &fakeSpawner{}, cps: checkpoint.NewMemory(), events: &recorder{}}
	opts = append([]Option{WithSpawner(h.spawner)}, opts...)
	h.c = New(levels, h.cps, opts...)
	h.c.Subscribe(h.events)
	return h
}

func (h *harness) failLevel() {
	h.c.Tick(h.c.State().TimeLeft + 1)
}

func (h *harness) winLevel() {
	for h.c.Phase() == PhasePlaying {
		h.c.GoodClicked(1)
	}
}

func TestNewStartsInMenu(t *testing.T) {
	h := newHarness(campaign(3, 3, 30))
	st := h.c.State()

	if st.Phase != PhaseMenu || st.CurrentLevelID != 1 || st.Score != 0 || st.LivesRemaining != 3 {
		t.Errorf("initial state = %+v", st)
	}
	if len(h.spawner.starts) != 0 {
		t.Error("spawning must not begin before StartRun")
	}
}

func TestWinConditionAwardsTimeBonus(t *testing.T) {
	h := newHarness(campaign(3, 3, 30))
	h.c.StartRun()

	h.c.Tick(10.44)
	h.c.GoodClicked(1)
	h.c.GoodClicked(2)
	if h.c.Phase() != PhasePlaying {
		t.Fatalf("phase after 2 of 3 hits = %v, want playing", h.c.Phase())
	}
	h.c.GoodClicked(5)

	st := h.c.State()
	if st.Phase != PhaseLevelComplete {
		t.Fatalf("phase = %v, want level_complete", st.Phase)
	}
	// 8 points plus round(19.56 * 10)
	if st.Score != 8+196 {
		t.Errorf("Score = %d, want %d", st.Score, 8+196)
	}
	if h.spawner.active {
		t.Error("spawning should stop on level complete")
	}
}

func TestLoseByTimerClampsToZero(t *testing.T) {
	h := newHarness(campaign(1, 3, 5))
	h.c.StartRun()

	h.c.Tick(2.5)
	h.c.Tick(2.5)

	st := h.c.State()
	if st.Phase != PhaseFailed {
		t.Errorf("phase = %v, want failed", st.Phase)
	}
	if st.TimeLeft != 0 {
		t.Errorf("TimeLeft = %v, want exactly 0", st.TimeLeft)
	}

	h2 := newHarness(campaign(1, 3, 5))
	h2.c.StartRun()
	h2.c.Tick(7)
	if got := h2.c.State().TimeLeft; got != 0 {
		t.Errorf("overshooting tick left TimeLeft = %v, want 0", got)
	}
	for _, tl := range h2.events.times {
		if tl < 0 {
			t.Errorf("listener observed negative time %v", tl)
		}
	}
}

func TestLoseByPenalty(t *testing.T) {
	levels := campaign(1, 3, 30)
	cfg := levels[1]
	cfg.TimeLimitSeconds = 2
	cfg.DecoyPenaltySeconds = 3
	levels[1] = cfg

	h := newHarness(levels)
	h.c.StartRun()
	h.c.DecoyClicked()

	st := h.c.State()
	if st.TimeLeft != 0 || st.Phase != PhaseFailed {
		t.Errorf("after penalty: TimeLeft=%v phase=%v, want 0 failed", st.TimeLeft, st.Phase)
	}
}

func TestDecoyPenaltyReducesTime(t *testing.T) {
	h := newHarness(campaign(1, 3, 30))
	h.c.StartRun()
	h.c.DecoyClicked()

	if got := h.c.State().TimeLeft; got != 27 {
		t.Errorf("TimeLeft = %v, want 27", got)
	}
	h.c.DecoyExpired()
	if got := h.c.State().TimeLeft; got != 27 {
		t.Errorf("decoy expiry changed time to %v", got)
	}
}

func TestGoodExpiredCountsMissWithoutPenalty(t *testing.T) {
	h := newHarness(campaign(1, 3, 30))
	h.c.StartRun()
	h.c.GoodClicked(2)
	h.c.GoodExpired()

	st := h.c.State()
	if st.GoodMissed != 1 || st.Score != 2 || st.TimeLeft != 30 {
		t.Errorf("state after miss = %+v", st)
	}
}

func TestEventsIgnoredOutsidePlaying(t *testing.T) {
	h := newHarness(campaign(2, 3, 5))

	h.c.GoodClicked(5)
	h.c.DecoyClicked()
	h.c.EntitySpawned()
	h.c.Tick(1)
	if st := h.c.State(); st.Score != 0 || st.TotalSpawned != 0 || st.TimeLeft != 5 {
		t.Errorf("menu phase mutated state: %+v", st)
	}

	h.c.StartRun()
	h.c.TogglePause()
	h.c.Tick(10)
	h.c.GoodClicked(5)
	if st := h.c.State(); st.Phase != PhasePaused || st.TimeLeft != 5 || st.Score != 0 {
		t.Errorf("paused phase mutated state: %+v", st)
	}

	h.c.TogglePause()
	h.failLevel()
	h.c.GoodClicked(5)
	h.c.GoodExpired()
	if st := h.c.State(); st.Score != 0 || st.GoodMissed != 0 {
		t.Errorf("late events after failure mutated state: %+v", st)
	}
}

func TestEntitySpawnedCounts(t *testing.T) {
	h := newHarness(campaign(1, 3, 30))
	h.c.StartRun()
	h.c.EntitySpawned()
	h.c.EntitySpawned()

	if got := h.c.State().TotalSpawned; got != 2 {
		t.Errorf("TotalSpawned = %d, want 2", got)
	}
}

func TestStartRunWithoutSpawnerIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	c := New(campaign(1, 3, 30), nil, WithLogger(log.New(&buf)))

	c.StartRun()
	if c.Phase() != PhaseMenu {
		t.Errorf("phase = %v, want menu", c.Phase())
	}
	if !strings.Contains(buf.String(), "no spawner") {
		t.Errorf("missing spawner should be logged, got %q", buf.String())
	}

	sp := &fakeSpawner{}
	c.SetSpawner(sp)
	c.StartRun()
	if c.Phase() != PhasePlaying || len(sp.starts) != 1 {
		t.Error("StartRun should work once a spawner is attached")
	}
}

func TestAdvanceProgressesAndEndsRun(t *testing.T) {
	h := newHarness(campaign(2, 1, 30))
	h.c.StartRun()

	h.winLevel()
	h.c.Advance()
	if st := h.c.State(); st.Phase != PhasePlaying || st.CurrentLevelID != 2 {
		t.Fatalf("after advance: %+v", st)
	}

	h.winLevel()
	score := h.c.State().Score
	h.c.Advance()
	if h.c.Phase() != PhaseAllLevelsComplete {
		t.Fatalf("phase = %v, want all_levels_complete", h.c.Phase())
	}
	if len(h.events.ended) != 1 || h.events.ended[0] != score {
		t.Errorf("RunEnded = %v, want [%d]", h.events.ended, score)
	}

	h.c.Advance()
	h.c.StartRun()
	if h.c.Phase() != PhaseAllLevelsComplete {
		t.Error("AllLevelsComplete should be terminal until NewGame")
	}
}

func TestCheckpointWrittenOnlyAtCheckpointLevel(t *testing.T) {
	h := newHarness(campaign(3, 1, 30), WithCheckpointLevel(2))
	h.c.StartRun()

	h.winLevel()
	h.c.Advance()
	if _, ok := h.cps.Load(); ok {
		t.Fatal("no checkpoint expected after level 1")
	}

	h.winLevel()
	want := checkpoint.Snapshot{LevelID: 2, Score: h.c.State().Score, Lives: 3}
	h.c.Advance()

	got, ok := h.cps.Load()
	if !ok || got != want {
		t.Errorf("checkpoint = %+v, %v; want %+v", got, ok, want)
	}
}

func TestMultiLifeFailure(t *testing.T) {
	h := newHarness(campaign(3, 1, 10), WithStartingLives(2))
	h.cps.Save(checkpoint.Snapshot{LevelID: 2, Score: 50, Lives: 2})

	h.c.StartRun()
	h.failLevel()
	h.c.ResolveFailure()

	st := h.c.State()
	if st.Phase != PhaseMenu || st.LivesRemaining != 1 || st.CurrentLevelID != 1 || st.TimeLeft != 10 {
		t.Fatalf("after first failure: %+v", st)
	}
	if _, ok := h.cps.Load(); !ok {
		t.Fatal("checkpoint must survive while lives remain")
	}

	h.c.StartRun()
	h.c.GoodExpired()
	h.failLevel()
	h.c.ResolveFailure()

	st = h.c.State()
	if st.Phase != PhaseRunOver {
		t.Fatalf("phase = %v, want run_over", st.Phase)
	}
	if st.LivesRemaining != 2 {
		t.Errorf("LivesRemaining = %d, want reset to 2", st.LivesRemaining)
	}
	if _, ok := h.cps.Load(); ok {
		t.Error("checkpoint should be cleared when lives run out")
	}
	if len(h.events.ended) != 1 {
		t.Errorf("RunEnded fired %d times, want 1", len(h.events.ended))
	}

	h.c.StartRun()
	h.c.RestartLevel()
	if h.c.Phase() != PhaseRunOver {
		t.Error("RunOver should only be left through NewGame")
	}
}

func TestSingleLifeFailure(t *testing.T) {
	h := newHarness(campaign(3, 1, 10), WithFailurePolicy(SingleLife), WithStartingLives(5))
	if got := h.c.State().LivesRemaining; got != 1 {
		t.Fatalf("single-life run starts with %d lives, want 1", got)
	}

	h.c.StartRun()
	h.winLevel()
	h.c.Advance()
	h.cps.Save(checkpoint.Snapshot{LevelID: 1, Score: 10, Lives: 1})
	scoreBefore := h.c.State().Score

	h.failLevel()
	h.c.ResolveFailure()

	st := h.c.State()
	if st.Phase != PhaseMenu || st.CurrentLevelID != 1 || st.Score != 0 || st.LivesRemaining != 1 {
		t.Errorf("after single-life failure: %+v", st)
	}
	if _, ok := h.cps.Load(); ok {
		t.Error("single-life failure should discard the checkpoint")
	}
	if len(h.events.ended) != 1 || h.events.ended[0] != scoreBefore {
		t.Errorf("RunEnded = %v, want [%d]", h.events.ended, scoreBefore)
	}
}

func TestRestartLevelRestoresCheckpoint(t *testing.T) {
	h := newHarness(campaign(8, 1, 10))
	h.c.StartRun()
	h.cps.Save(checkpoint.Snapshot{LevelID: 6, Score: 500, Lives: 2})

	h.failLevel()
	h.c.RestartLevel()

	st := h.c.State()
	if st.Phase != PhasePlaying || st.CurrentLevelID != 6 || st.Score != 500 || st.LivesRemaining != 2 {
		t.Errorf("after restart: %+v", st)
	}
}

func TestRestartLevelWithoutCheckpoint(t *testing.T) {
	h := newHarness(campaign(3, 2, 10))
	h.c.StartRun()
	h.winLevel()
	h.c.Advance()
	h.c.GoodClicked(5)
	score := h.c.State().Score

	h.c.TogglePause()
	h.c.RestartLevel()

	st := h.c.State()
	if st.Phase != PhasePlaying || st.CurrentLevelID != 2 || st.Score != score {
		t.Errorf("after restart: %+v, want level 2 score %d", st, score)
	}
	if st.GoodClicked != 0 || st.TimeLeft != 10 {
		t.Errorf("restart should reset level counters: %+v", st)
	}
}

func TestRestartLevelOnlyFromAllowedPhases(t *testing.T) {
	h := newHarness(campaign(2, 1, 10))
	h.c.StartRun()
	h.c.GoodClicked(1)
	starts := len(h.spawner.starts)

	h.c.RestartLevel()
	if h.c.Phase() != PhaseLevelComplete || len(h.spawner.starts) != starts {
		t.Error("RestartLevel from level_complete must be ignored")
	}
}

func TestNewGameResetsEverything(t *testing.T) {
	h := newHarness(campaign(3, 1, 10))
	h.c.StartRun()
	h.winLevel()
	h.c.Advance()
	h.cps.Save(checkpoint.Snapshot{LevelID: 2, Score: 99, Lives: 3})

	h.c.NewGame()

	st := h.c.State()
	if st.Phase != PhaseMenu || st.CurrentLevelID != 1 || st.Score != 0 || st.LivesRemaining != 3 {
		t.Errorf("after NewGame: %+v", st)
	}
	if _, ok := h.cps.Load(); ok {
		t.Error("NewGame should clear the checkpoint")
	}
	if h.spawner.active {
		t.Error("NewGame should stop spawning")
	}
}

func TestSingleSpawnSession(t *testing.T) {
	h := newHarness(campaign(3, 1, 10))
	h.c.StartRun()
	h.c.TogglePause()
	h.c.RestartLevel()
	h.winLevel()
	h.c.Advance()
	h.failLevel()
	h.c.RestartLevel()

	if h.spawner.overlap {
		t.Error("StartSpawning was called while a session was still active")
	}
	if want := []int{1, 1, 2, 2}; len(h.spawner.starts) != len(want) {
		t.Errorf("spawn sessions for levels %v, want %v", h.spawner.starts, want)
	}
	if h.spawner.clears < h.spawner.stops {
		t.Error("every stop must also clear active entities")
	}
}

func TestListenerNotifications(t *testing.T) {
	h := newHarness(campaign(2, 1, 10))
	h.c.StartRun()
	h.c.GoodClicked(2)

	if len(h.events.loaded) != 1 || h.events.loaded[0] != 1 {
		t.Errorf("LevelLoaded = %v, want [1]", h.events.loaded)
	}
	wantPhases := []Phase{PhasePlaying, PhaseLevelComplete}
	if len(h.events.phases) != 2 || h.events.phases[0] != wantPhases[0] || h.events.phases[1] != wantPhases[1] {
		t.Errorf("phases = %v, want %v", h.events.phases, wantPhases)
	}
	// hit points, then the time bonus
	if len(h.events.scores) != 2 || h.events.scores[0] != 2 || h.events.scores[1] != 102 {
		t.Errorf("scores = %v, want [2 102]", h.events.scores)
	}
}

func TestUnsubscribe(t *testing.T) {
	h := newHarness(campaign(1, 3, 10))
	other := &recorder{}
	unsubscribe := h.c.Subscribe(other)

	h.c.StartRun()
	unsubscribe()
	unsubscribe()
	h.c.GoodClicked(1)
	h.c.Tick(1)

	if len(other.scores) != 0 || len(other.times) != 1 {
		t.Errorf("unsubscribed listener got scores=%v times=%v", other.scores, other.times)
	}
	if len(h.events.scores) != 1 {
		t.Errorf("remaining listener got scores=%v, want one", h.events.scores)
	}
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	h := newHarness(campaign(1, 3, 10))
	late := &recorder{}
	var unsubscribeLate func()
	h.c.Subscribe(&unsubscribingListener{stop: func() { unsubscribeLate() }})
	unsubscribeLate = h.c.Subscribe(late)

	h.c.StartRun()
	if len(late.phases) != 0 {
		t.Errorf("listener removed mid-delivery still received %v", late.phases)
	}
}

type unsubscribingListener struct {
	NopListener
	stop func()
}

func (u *unsubscribingListener) LevelLoaded(level.Config) { u.stop() }

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want FailurePolicy
		ok   bool
	}{
		{"multi_life", MultiLife, true},
		{"single_life", SingleLife, true},
		{"single", SingleLife, true},
		{"hybrid", MultiLife, false},
	}
	for _, tt := range tests {
		got, ok := ParseFailurePolicy(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFailurePolicy(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
