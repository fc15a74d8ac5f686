// Package audio plays procedurally generated music and sound effects in
// response to run events.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/duckclick/internal/level"
	"github.com/vovakirdan/duckclick/internal/run"
	"github.com/vovakirdan/duckclick/internal/spawn"
	"github.com/vovakirdan/duckclick/internal/target"
)

// DefaultSampleRate is used when the config leaves it unset.
const DefaultSampleRate = 48000

// Config controls the player.
type Config struct {
	Enabled     bool
	SampleRate  int
	MusicVolume float64
	SFXVolume   float64
}

// speakerOnce guards speaker.Init, which may only run once per process.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// Player plays music and one-shots. It is silent when disabled or when the
// audio device cannot be opened; every method is then a no-op apart from
// bookkeeping.
type Player struct {
	run.NopListener

	mu     sync.Mutex
	cfg    Config
	rate   beep.SampleRate
	logger *log.Logger

	// out hands a stream to the device; nil means silent.
	out    func(beep.Streamer)
	lock   func()
	unlock func()
	mixer  *beep.Mixer

	music    *beep.Ctrl
	musicKey string
	levelKey string
}

// NewPlayer creates a player and opens the audio device when enabled.
func NewPlayer(cfg Config, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	p := &Player{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		logger: logger,
		mixer:  &beep.Mixer{},
	}
	if !cfg.Enabled {
		logger.Debug("audio disabled")
		return p
	}

	speakerOnce.Do(func() {
		speakerErr = speaker.Init(p.rate, p.rate.N(100*time.Millisecond))
		if speakerErr == nil {
			speaker.Play(p.mixer)
		}
	})
	if speakerErr != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", speakerErr)
		return p
	}

	p.lock, p.unlock = speaker.Lock, speaker.Unlock
	p.out = func(s beep.Streamer) {
		p.withLock(func() { p.mixer.Add(s) })
	}
	return p
}

// Silent reports whether the player produces no sound.
func (p *Player) Silent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out == nil
}

// MusicKey returns the key of the music currently playing, or "".
func (p *Player) MusicKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.musicKey
}

// PlayMusicKey starts the theme for key, replacing the current music.
// Unknown keys play the fallback theme.
func (p *Player) PlayMusicKey(key string) {
	key = ResolveMusicKey(key, p.logger)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.musicKey == key && p.music != nil {
		p.setPaused(p.music, false)
		return
	}
	p.stopMusicLocked()
	p.musicKey = key

	if p.out == nil {
		return
	}
	p.music = &beep.Ctrl{Streamer: withVolume(musicStream(key, p.rate), p.cfg.MusicVolume)}
	p.out(p.music)
}

// PauseMusic pauses or resumes the current music.
func (p *Player) PauseMusic(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music != nil {
		p.setPaused(p.music, paused)
	}
}

// StopMusic stops the current music.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusicLocked()
}

func (p *Player) stopMusicLocked() {
	if p.music != nil {
		// A nil streamer makes the mixer drop the control.
		p.withLock(func() { p.music.Streamer = nil })
	}
	p.music = nil
	p.musicKey = ""
}

func (p *Player) setPaused(c *beep.Ctrl, paused bool) {
	p.withLock(func() { c.Paused = paused })
}

func (p *Player) withLock(fn func()) {
	if p.lock != nil {
		p.lock()
		defer p.unlock()
	}
	fn()
}

// PlayOneShot plays a sound effect over the music.
func (p *Player) PlayOneShot(s Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out == nil {
		return
	}
	stream := soundStream(s, p.rate)
	if stream == nil {
		return
	}
	p.out(withVolume(stream, p.cfg.SFXVolume))
}

// Close silences everything.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusicLocked()
	if p.out != nil {
		p.withLock(p.mixer.Clear)
	}
}

// LevelLoaded selects the level's music. It starts once play begins.
func (p *Player) LevelLoaded(cfg level.Config) {
	key := cfg.BackgroundMusicKey
	if key == "" {
		key = level.DefaultMusicKey
	}
	p.mu.Lock()
	p.levelKey = key
	p.mu.Unlock()
}

// PhaseChanged drives music and phase stingers.
func (p *Player) PhaseChanged(ph run.Phase) {
	switch ph {
	case run.PhasePlaying:
		p.mu.Lock()
		key := p.levelKey
		p.mu.Unlock()
		p.PlayMusicKey(key)
	case run.PhasePaused:
		p.PauseMusic(true)
	case run.PhaseLevelComplete:
		p.StopMusic()
		p.PlayOneShot(SoundLevelComplete)
	case run.PhaseFailed, run.PhaseRunOver:
		p.StopMusic()
		p.PlayOneShot(SoundFail)
	case run.PhaseAllLevelsComplete:
		p.StopMusic()
		p.PlayOneShot(SoundVictory)
	case run.PhaseMenu:
		p.StopMusic()
	}
}

// TargetSpawned implements the arena observer.
func (p *Player) TargetSpawned(*target.Target) {}

// TargetResolved plays the effect for a clicked or expired target.
func (p *Player) TargetResolved(t *target.Target) {
	switch {
	case t.State() == target.StateClicked && t.Kind() == spawn.KindGood:
		p.PlayOneShot(SoundHit)
	case t.State() == target.StateClicked:
		p.PlayOneShot(SoundDecoy)
	case t.Kind() == spawn.KindGood:
		p.PlayOneShot(SoundMiss)
	}
}
