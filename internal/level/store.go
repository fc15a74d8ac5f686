package level

import (
	"io"

	"github.com/charmbracelet/log"
)

// maxListed bounds List when a source keeps answering for consecutive ids.
const maxListed = 999

// Store loads level records from a Source and caches the parsed result.
// It never fails its caller: missing or malformed records degrade to Default.
type Store struct {
	src    Source
	logger *log.Logger
	cache  map[int]Config
}

// NewStore creates a store over src. A nil logger discards output.
func NewStore(src Source, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		src:    src,
		logger: logger,
		cache:  make(map[int]Config),
	}
}

// Load returns the configuration for a level id.
func (s *Store) Load(id int) Config {
	if cfg, ok := s.cache[id]; ok {
		return cfg
	}

	data, err := s.src.Lookup(Key(id))
	if err != nil {
		s.logger.Warn("level record unavailable, using default", "key", Key(id), "error", err)
		return Default(id)
	}

	cfg, err := Parse(id, data)
	if err != nil {
		s.logger.Warn("level record malformed, using default", "key", Key(id), "error", err)
		return Default(id)
	}

	cfg = sanitize(cfg, id, s.logger)
	s.cache[id] = cfg
	s.logger.Debug("level loaded", "key", Key(id), "name", cfg.LevelName)
	return cfg
}

// NextLevelID returns current+1 when that record exists.
// Gaps are not skipped: a missing next record means there are no more levels.
func (s *Store) NextLevelID(current int) (int, bool) {
	next := current + 1
	if !s.src.Exists(Key(next)) {
		return 0, false
	}
	return next, true
}

// List loads every level reachable from id 1 without a gap.
func (s *Store) List() []Config {
	var levels []Config
	for id := 1; id <= maxListed && s.src.Exists(Key(id)); id++ {
		levels = append(levels, s.Load(id))
	}
	return levels
}
