package audio

import (
	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
)

// Music keys understood by the player. Level records name one of these.
const (
	TutorialTheme  = "tutorial_theme"
	ActionTheme    = "action_theme"
	ChallengeTheme = "challenge_theme"
	BossTheme      = "boss_theme"
)

// FallbackMusicKey is played for keys outside the known set.
const FallbackMusicKey = TutorialTheme

// MusicKeys returns the known music keys.
func MusicKeys() []string {
	return []string{TutorialTheme, ActionTheme, ChallengeTheme, BossTheme}
}

// KnownMusicKey reports whether key is one of the music keys.
func KnownMusicKey(key string) bool {
	_, ok := themes[key]
	return ok
}

// ResolveMusicKey maps key onto the known set. Unknown keys fall back to
// the tutorial theme with a warning.
func ResolveMusicKey(key string, logger *log.Logger) string {
	if KnownMusicKey(key) {
		return key
	}
	if logger != nil {
		logger.Warn("unknown music key, using fallback", "key", key, "fallback", FallbackMusicKey)
	}
	return FallbackMusicKey
}

type theme struct {
	bpm   float64
	wave  WaveType
	notes []note
}

// Note frequencies in Hz.
const (
	noteC4 = 261.63
	noteD4 = 293.66
	noteE4 = 329.63
	noteF4 = 349.23
	noteG4 = 392.00
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
	noteD5 = 587.33
	noteE5 = 659.25
	noteG5 = 783.99
	noteA3 = 220.00
	noteE3 = 164.81
	rest   = 0
)

var themes = map[string]theme{
	TutorialTheme: {bpm: 96, wave: WaveTriangle, notes: []note{
		{noteC4, 1}, {noteE4, 1}, {noteG4, 1}, {noteE4, 1},
		{noteF4, 1}, {noteA4, 1}, {noteG4, 2},
		{noteE4, 1}, {noteD4, 1}, {noteC4, 2}, {rest, 2},
	}},
	ActionTheme: {bpm: 132, wave: WaveSquare, notes: []note{
		{noteA3, 0.5}, {noteA3, 0.5}, {noteC4, 0.5}, {noteA3, 0.5},
		{noteD4, 0.5}, {noteA3, 0.5}, {noteE4, 1},
		{noteG4, 0.5}, {noteE4, 0.5}, {noteD4, 0.5}, {noteC4, 0.5}, {rest, 1},
	}},
	ChallengeTheme: {bpm: 148, wave: WaveSquare, notes: []note{
		{noteE3, 0.5}, {noteE4, 0.5}, {noteE3, 0.5}, {noteD4, 0.5},
		{noteE3, 0.5}, {noteC4, 0.5}, {noteB4, 1},
		{noteE3, 0.5}, {noteG4, 0.5}, {noteA4, 0.5}, {noteB4, 0.5}, {rest, 1},
	}},
	BossTheme: {bpm: 160, wave: WaveSquare, notes: []note{
		{noteE3, 0.25}, {noteE3, 0.25}, {noteE4, 0.5}, {noteE3, 0.25}, {noteE3, 0.25}, {noteD5, 0.5},
		{noteE3, 0.25}, {noteE3, 0.25}, {noteC5, 0.5}, {noteB4, 0.5}, {noteA4, 1},
		{noteE3, 0.25}, {noteE3, 0.25}, {noteE5, 0.5}, {noteD5, 0.5}, {rest, 0.5},
	}},
}

// musicStream returns an endless stream for a resolved key. A key without
// notes plays silence.
func musicStream(key string, rate beep.SampleRate) beep.Streamer {
	th, ok := themes[key]
	if !ok || len(th.notes) == 0 {
		return beep.Silence(-1)
	}
	return beep.Iterate(func() beep.Streamer {
		return sequence(th.notes, th.bpm, th.wave, rate)
	})
}

// Sound is a one-shot effect.
type Sound int

const (
	SoundHit Sound = iota
	SoundDecoy
	SoundMiss
	SoundLevelComplete
	SoundFail
	SoundVictory
)

func (s Sound) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundDecoy:
		return "decoy"
	case SoundMiss:
		return "miss"
	case SoundLevelComplete:
		return "level_complete"
	case SoundFail:
		return "fail"
	case SoundVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// soundStream builds the finite stream for a one-shot effect.
func soundStream(s Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundHit:
		return beep.Mix(
			sequence([]note{{noteC5, 0.25}, {noteG5, 0.5}}, 240, WaveSine, rate),
			withVolume(sequence([]note{{noteC4, 0.75}}, 240, WaveTriangle, rate), 0.4),
		)
	case SoundDecoy:
		return beep.Mix(
			sequence([]note{{110, 0.6}}, 120, WaveSquare, rate),
			withVolume(sequence([]note{{0, 0.6}}, 120, WaveNoise, rate), 0.3),
		)
	case SoundMiss:
		return withVolume(sequence([]note{{noteE4, 0.25}, {noteC4, 0.5}}, 240, WaveTriangle, rate), 0.5)
	case SoundLevelComplete:
		return sequence([]note{{noteC5, 0.5}, {noteE5, 0.5}, {noteG5, 1}}, 200, WaveSquare, rate)
	case SoundFail:
		return sequence([]note{{noteG4, 0.5}, {noteE4, 0.5}, {noteC4, 0.5}, {noteA3, 1.5}}, 160, WaveTriangle, rate)
	case SoundVictory:
		return sequence([]note{
			{noteC5, 0.5}, {noteC5, 0.5}, {noteC5, 0.5}, {noteC5, 1},
			{noteA4, 1}, {noteB4, 1}, {noteC5, 0.5}, {noteB4, 0.25}, {noteC5, 2},
		}, 180, WaveSquare, rate)
	default:
		return nil
	}
}
