// Package checkpoint keeps the single saved snapshot of run progress.
package checkpoint

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultKey is the settings key the snapshot lives under.
const DefaultKey = "checkpoint"

// KeyFor returns the settings key for a user. An empty or blank user gets DefaultKey.
func KeyFor(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + user
}

// Snapshot is the run progress saved at a checkpoint level.
type Snapshot struct {
	LevelID int `json:"checkpointLevelId"`
	Score   int `json:"savedScore"`
	Lives   int `json:"savedLives"`
}

// Store is a single-slot snapshot store. Save overwrites any prior snapshot.
// Load reports false when there is no usable snapshot, including when the
// backing medium fails.
type Store interface {
	Save(s Snapshot) error
	Load() (Snapshot, bool)
	Clear() error
}

// Memory is an in-process Store.
type Memory struct {
	snap *Snapshot
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(s Snapshot) error {
	m.snap = &s
	return nil
}

func (m *Memory) Load() (Snapshot, bool) {
	if m.snap == nil {
		return Snapshot{}, false
	}
	return *m.snap, true
}

func (m *Memory) Clear() error {
	m.snap = nil
	return nil
}

// Settings is the key-value medium SettingsStore writes to.
// *storage.Store implements it.
type Settings interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}

// opTimeout bounds a single settings read or write.
const opTimeout = 2 * time.Second

// SettingsStore persists the snapshot as JSON under one settings key.
type SettingsStore struct {
	settings Settings
	key      string
	logger   *log.Logger
}

// NewSettingsStore creates a store writing under key (DefaultKey when empty).
func NewSettingsStore(settings Settings, key string, logger *log.Logger) *SettingsStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SettingsStore{settings: settings, key: key, logger: logger}
}

// Key returns the settings key in use.
func (s *SettingsStore) Key() string {
	return s.key
}

func (s *SettingsStore) Save(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.settings.SetSetting(ctx, s.key, string(data)); err != nil {
		s.logger.Error("checkpoint write failed", "key", s.key, "err", err)
		return err
	}
	return nil
}

func (s *SettingsStore) Load() (Snapshot, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, ok, err := s.settings.GetSetting(ctx, s.key)
	if err != nil {
		s.logger.Error("checkpoint read failed", "key", s.key, "err", err)
		return Snapshot{}, false
	}
	if !ok || raw == "" {
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.Warn("checkpoint record unreadable, ignoring", "key", s.key, "err", err)
		return Snapshot{}, false
	}
	if snap.LevelID <= 0 || snap.Score < 0 || snap.Lives <= 0 {
		s.logger.Warn("checkpoint record out of range, ignoring", "key", s.key, "snapshot", snap)
		return Snapshot{}, false
	}
	return snap, true
}

func (s *SettingsStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.settings.DeleteSetting(ctx, s.key); err != nil {
		s.logger.Error("checkpoint clear failed", "key", s.key, "err", err)
		return err
	}
	return nil
}
