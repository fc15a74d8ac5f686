package duckhunt

import (
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/duckclick/internal/checkpoint"
	"github.com/vovakirdan/duckclick/internal/core"
	"github.com/vovakirdan/duckclick/internal/level"
	"github.com/vovakirdan/duckclick/internal/run"
	"github.com/vovakirdan/duckclick/internal/spawn"
	"github.com/vovakirdan/duckclick/internal/target"
)

const testLevel = `{
	"levelName": "Test Pond",
	"goodTargetCount": 2,
	"decoyTargetCount": 0,
	"timeLimitSeconds": 20,
	"spawnIntervalSeconds": 1,
	"targetLifetimeSeconds": 1,
	"decoyPenaltySeconds": 4,
	"sizeDistribution": {"large": 1, "medium": 0, "small": 0}
}`

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 42}
}

func newTestGame(t *testing.T, files map[string]string) *Game {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	g := New(Options{
		Levels:      level.NewStore(level.NewFSSource(fsys, "."), nil),
		Checkpoints: checkpoint.NewMemory(),
	})
	g.Reset(testConfig())
	return g
}

func confirm() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	return in
}

func clickAt(x, y int) core.InputFrame {
	in := core.NewInputFrame()
	in.Click(x, y)
	return in
}

func idle(g *Game, ticks int) {
	for i := 0; i < ticks; i++ {
		g.Step(core.NewInputFrame())
	}
}

func TestConfirmStartsRunAndSpawnsImmediately(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})

	if g.State().Phase != "menu" {
		t.Fatalf("initial phase = %q, want menu", g.State().Phase)
	}

	g.Step(confirm())

	snap := g.Snapshot()
	if snap.Run.Phase != run.PhasePlaying {
		t.Fatalf("phase = %v, want playing", snap.Run.Phase)
	}
	if len(snap.Targets) != 1 || snap.Run.TotalSpawned != 1 {
		t.Errorf("targets=%d spawned=%d, want first spawn on the first tick", len(snap.Targets), snap.Run.TotalSpawned)
	}
	if snap.Targets[0].Tier != spawn.TierLarge {
		t.Errorf("tier = %v, want large from the level's distribution", snap.Targets[0].Tier)
	}
}

func TestClickingTargetScores(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})
	g.Step(confirm())

	tg := g.Arena().Targets()[0]
	b := tg.Bounds()
	g.Step(clickAt(b.X, b.Y))

	st := g.Controller().State()
	if st.GoodClicked != 1 || st.Score != target.PointsFor(spawn.TierLarge) {
		t.Errorf("after hit: clicked=%d score=%d", st.GoodClicked, st.Score)
	}
	if tg.State() != target.StateClicked {
		t.Errorf("target state = %v, want clicked", tg.State())
	}
	if len(g.Arena().Targets()) != 0 {
		t.Error("clicked target should be removed from the arena")
	}
	if g.Arena().Session().IsActive(tg.ID) {
		t.Error("clicked target should be released from the session")
	}
}

func TestMissedClickDoesNothing(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})
	g.Step(confirm())

	g.Step(clickAt(0, 0))
	if st := g.Controller().State(); st.Score != 0 || st.GoodClicked != 0 {
		t.Errorf("click on empty cell changed state: %+v", st)
	}
}

func TestWinningLevelThroughClicks(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})
	g.Step(confirm())

	for i := 0; i < 100 && g.Controller().Phase() == run.PhasePlaying; i++ {
		in := core.NewInputFrame()
		for _, tg := range g.Arena().Targets() {
			b := tg.Bounds()
			in.Click(b.X+b.W/2, b.Y+b.H/2)
		}
		g.Step(in)
	}

	if g.Controller().Phase() != run.PhaseLevelComplete {
		t.Fatalf("phase = %v, want level_complete", g.Controller().Phase())
	}
	if len(g.Arena().Targets()) != 0 {
		t.Error("level end should clear the arena")
	}
	if st := g.Controller().State(); st.Score <= 2 {
		t.Errorf("score %d should include the time bonus", st.Score)
	}

	g.Step(confirm())
	if g.Controller().Phase() != run.PhaseAllLevelsComplete {
		t.Errorf("advancing past the only level: phase = %v", g.Controller().Phase())
	}
}

func TestTargetsExpireWithoutEndingLevel(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})
	g.Step(confirm())
	idle(g, 40)

	st := g.Controller().State()
	if st.GoodMissed != 2 {
		t.Errorf("GoodMissed = %d, want 2", st.GoodMissed)
	}
	if st.Phase != run.PhasePlaying {
		t.Errorf("phase = %v: a level only ends by win or timer", st.Phase)
	}
	if st.Score != 0 {
		t.Errorf("misses must not change the score, got %d", st.Score)
	}

	idle(g, 200)
	if g.Controller().Phase() != run.PhaseFailed {
		t.Errorf("phase = %v after the countdown, want failed", g.Controller().Phase())
	}
}

func TestPauseFreezesTargets(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})
	g.Step(confirm())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	before := g.Snapshot()
	idle(g, 50)
	after := g.Snapshot()

	if after.Run.TimeLeft != before.Run.TimeLeft {
		t.Errorf("countdown moved while paused: %v -> %v", before.Run.TimeLeft, after.Run.TimeLeft)
	}
	if !reflect.DeepEqual(before.Targets, after.Targets) {
		t.Errorf("targets changed while paused: %+v -> %+v", before.Targets, after.Targets)
	}

	g.Step(clickAt(0, 0))
	if g.Controller().Phase() != run.PhasePaused {
		t.Error("a click must not unpause the game")
	}
}

func TestClickAcknowledgesScreens(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})

	g.Step(clickAt(40, 12))
	if g.Controller().Phase() != run.PhasePlaying {
		t.Fatalf("a click in the menu should start the run, phase = %v", g.Controller().Phase())
	}
	if g.Controller().State().GoodClicked != 0 {
		t.Error("the acknowledging click must not hit a target")
	}
}

func TestArenaStartSpawningReplacesSession(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})
	g.Step(confirm())

	old := g.Arena().Session()
	restart := core.NewInputFrame()
	restart.Set(core.ActionPause)
	g.Step(restart)
	restart = core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	if !old.Stopped() {
		t.Error("old session should be stopped")
	}
	if g.Arena().Session() == old {
		t.Error("restart should open a new session")
	}
	if n := len(g.Arena().Targets()); n != 1 {
		t.Errorf("targets after restart = %d, want only the new session's first spawn", n)
	}
}

func TestDecoyClickAppliesPenalty(t *testing.T) {
	decoyLevel := strings.Replace(testLevel, `"decoyTargetCount": 0`, `"decoyTargetCount": 1`, 1)
	decoyLevel = strings.Replace(decoyLevel, `"goodTargetCount": 2`, `"goodTargetCount": 0`, 1)
	g := newTestGame(t, map[string]string{"level_001.json": decoyLevel})
	g.Step(confirm())

	tg := g.Arena().Targets()[0]
	if tg.Kind() != spawn.KindDecoy {
		t.Fatalf("kind = %v, want decoy", tg.Kind())
	}
	before := g.Controller().State().TimeLeft
	b := tg.Bounds()
	g.Step(clickAt(b.X, b.Y))

	got := g.Controller().State().TimeLeft
	if want := before - 4 - g.dt; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("TimeLeft = %v, want %v", got, want)
	}
}

func TestDeterminism(t *testing.T) {
	files := map[string]string{"level_001.json": strings.Replace(testLevel, `"decoyTargetCount": 0`, `"decoyTargetCount": 3`, 1)}
	g1 := newTestGame(t, files)
	g2 := newTestGame(t, files)

	for i := 0; i < 150; i++ {
		in := core.NewInputFrame()
		if i == 0 {
			in.Set(core.ActionConfirm)
		}
		if i%7 == 3 {
			in.Click(20+i%30, 5+i%12)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Errorf("snapshots diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestTooSmallScreenFreezes(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})
	g.Resize(20, 8)
	g.Step(confirm())

	if g.Controller().Phase() != run.PhaseMenu {
		t.Error("game should not start in a too-small window")
	}
	if !strings.Contains(g.String(), "too small") {
		t.Error("too-small message not rendered")
	}
}

func TestRenderMenuAndTargets(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})

	if out := g.String(); !strings.Contains(out, "DUCK CLICK") || !strings.Contains(out, "Test Pond") {
		t.Errorf("menu render missing title or level name:\n%s", out)
	}

	g.Step(confirm())
	tg := g.Arena().Targets()[0]
	b := tg.Bounds()

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if got := screen.Row(b.Y + 1); !strings.Contains(got, "<(o )") {
		t.Errorf("row %d = %q, want the large duck sprite", b.Y+1, got)
	}
}

func TestListenersSurviveReset(t *testing.T) {
	g := newTestGame(t, map[string]string{"level_001.json": testLevel})
	rec := &phaseRecorder{}
	g.Subscribe(rec)

	g.Reset(testConfig())
	g.Step(confirm())

	if len(rec.phases) != 1 || rec.phases[0] != run.PhasePlaying {
		t.Errorf("phases = %v, want [playing]", rec.phases)
	}
}

type phaseRecorder struct {
	run.NopListener
	phases []run.Phase
}

func (p *phaseRecorder) PhaseChanged(ph run.Phase) { p.phases = append(p.phases, ph) }
