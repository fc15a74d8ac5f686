package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duckclick/internal/run"
)

// ScoreSaver persists final scores. *storage.Store implements it.
type ScoreSaver interface {
	SaveScore(mode string, score int) (int64, error)
}

// ScoreRecorder saves the final score of every run that ends with points.
type ScoreRecorder struct {
	run.NopListener

	saver  ScoreSaver
	mode   string
	logger *log.Logger
	saved  int
}

// NewScoreRecorder creates a recorder filing scores under mode. A nil saver
// records nothing.
func NewScoreRecorder(saver ScoreSaver, mode string, logger *log.Logger) *ScoreRecorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ScoreRecorder{saver: saver, mode: mode, logger: logger}
}

// RunEnded saves the score.
func (r *ScoreRecorder) RunEnded(score int) {
	if r.saver == nil || score <= 0 {
		return
	}
	if _, err := r.saver.SaveScore(r.mode, score); err != nil {
		r.logger.Error("cannot save score", "mode", r.mode, "score", score, "err", err)
		return
	}
	r.saved++
	r.logger.Info("score saved", "mode", r.mode, "score", score)
}

// Saved returns how many scores were written.
func (r *ScoreRecorder) Saved() int {
	return r.saved
}
