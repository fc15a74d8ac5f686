package level

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
)

func newTestStore(files map[string]string) (*Store, *bytes.Buffer) {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	var buf bytes.Buffer
	return NewStore(NewFSSource(fsys, "."), log.New(&buf)), &buf
}

func TestStoreLoadMissingFallsBackToDefault(t *testing.T) {
	store, logs := newTestStore(nil)

	cfg := store.Load(5)
	want := Default(5)

	if cfg.LevelID != 5 {
		t.Errorf("LevelID = %d, want 5", cfg.LevelID)
	}
	if cfg.GoodTargetCount != 3 || cfg.DecoyTargetCount != 0 {
		t.Errorf("counts = %d/%d, want 3/0", cfg.GoodTargetCount, cfg.DecoyTargetCount)
	}
	if cfg.TimeLimitSeconds != 30 || cfg.SpawnIntervalSeconds != 3 || cfg.TargetLifetimeSeconds != 5 {
		t.Errorf("timings = %v/%v/%v, want 30/3/5",
			cfg.TimeLimitSeconds, cfg.SpawnIntervalSeconds, cfg.TargetLifetimeSeconds)
	}
	if cfg.DecoyPenaltySeconds != 2 || cfg.DifficultyLabel != "tutorial" {
		t.Errorf("penalty/difficulty = %d/%q, want 2/tutorial", cfg.DecoyPenaltySeconds, cfg.DifficultyLabel)
	}
	if cfg.LevelName != want.LevelName {
		t.Errorf("LevelName = %q, want %q", cfg.LevelName, want.LevelName)
	}
	if !strings.Contains(logs.String(), "unavailable") {
		t.Errorf("missing level should log a warning, got %q", logs.String())
	}
}

func TestStoreLoadCorruptFallsBackToDefault(t *testing.T) {
	store, logs := newTestStore(map[string]string{
		"level_001.json": `{"goodTargetCount": "lots"`,
	})

	cfg := store.Load(1)
	if cfg.GoodTargetCount != DefaultGoodTargetCount {
		t.Errorf("GoodTargetCount = %d, want default", cfg.GoodTargetCount)
	}
	if !strings.Contains(logs.String(), "malformed") {
		t.Errorf("corrupt level should log a warning, got %q", logs.String())
	}
}

func TestStoreLoadCaches(t *testing.T) {
	fsys := fstest.MapFS{
		"level_001.json": {Data: []byte(`{"levelName": "Original", "goodTargetCount": 4}`)},
	}
	store := NewStore(NewFSSource(fsys, "."), nil)

	first := store.Load(1)
	fsys["level_001.json"] = &fstest.MapFile{Data: []byte(`{"levelName": "Changed"}`)}
	second := store.Load(1)

	if first.LevelName != "Original" || second.LevelName != "Original" {
		t.Errorf("expected cached record, got %q then %q", first.LevelName, second.LevelName)
	}
}

func TestStoreDoesNotCacheDefaults(t *testing.T) {
	fsys := fstest.MapFS{}
	store := NewStore(NewFSSource(fsys, "."), nil)

	if cfg := store.Load(1); cfg.LevelName != Default(1).LevelName {
		t.Fatalf("expected default record, got %q", cfg.LevelName)
	}

	fsys["level_001.json"] = &fstest.MapFile{Data: []byte(`{"levelName": "Now Present"}`)}
	if cfg := store.Load(1); cfg.LevelName != "Now Present" {
		t.Errorf("LevelName = %q, want record loaded after it appeared", cfg.LevelName)
	}
}

func TestStoreNextLevelID(t *testing.T) {
	store, _ := newTestStore(map[string]string{
		"level_001.json": `{}`,
		"level_002.json": `{}`,
		"level_004.json": `{}`,
	})

	if next, ok := store.NextLevelID(1); !ok || next != 2 {
		t.Errorf("NextLevelID(1) = %d, %v; want 2, true", next, ok)
	}
	if _, ok := store.NextLevelID(2); ok {
		t.Error("NextLevelID(2) should report no more levels when level 3 is absent (no gap skipping)")
	}
}

func TestCampaignProgressionBoundary(t *testing.T) {
	store := NewStore(Campaign(), nil)

	for id := 1; id < 12; id++ {
		next, ok := store.NextLevelID(id)
		if !ok || next != id+1 {
			t.Errorf("NextLevelID(%d) = %d, %v; want %d, true", id, next, ok, id+1)
		}
	}
	if _, ok := store.NextLevelID(12); ok {
		t.Error("NextLevelID(12) should report no more levels")
	}
}

func TestCampaignRecordsAreValid(t *testing.T) {
	var buf bytes.Buffer
	store := NewStore(Campaign(), log.New(&buf))

	levels := store.List()
	if len(levels) != 12 {
		t.Fatalf("List() returned %d levels, want 12", len(levels))
	}
	for i, cfg := range levels {
		if cfg.LevelID != i+1 {
			t.Errorf("levels[%d].LevelID = %d, want %d", i, cfg.LevelID, i+1)
		}
		if cfg.Degenerate() {
			t.Errorf("level %d has no targets", cfg.LevelID)
		}
		if cfg.LevelName == "" || cfg.BackgroundMusicKey == "" {
			t.Errorf("level %d missing name or music key", cfg.LevelID)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("built-in campaign should load without warnings, got %q", buf.String())
	}
}
