package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType is an oscillator wave shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// sample returns the wave value at phase p in [0, 1).
func (w WaveType) sample(p float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(p-0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// oscillator is a finite tone. A zero frequency produces silence, except
// for noise which ignores frequency.
type oscillator struct {
	freq     float64
	wave     WaveType
	rate     beep.SampleRate
	phase    float64
	position int
	length   int
	rng      *rand.Rand
}

// NewOscillator creates a tone of the given frequency and duration.
func NewOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		wave:   wave,
		rate:   rate,
		length: rate.N(d),
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.length {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.length {
			return i, true
		}
		var v float64
		if o.freq > 0 || o.wave == WaveNoise {
			v = o.wave.sample(o.phase, o.rng)
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a finite stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which must last d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(float64(remaining)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one step of a tone sequence. A zero frequency is a rest.
type note struct {
	freq  float64
	beats float64
}

// tone builds a shaped note lasting d.
func tone(n note, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	attack := min(d/10, 10*time.Millisecond)
	release := min(d/3, 60*time.Millisecond)
	return NewEnvelope(NewOscillator(n.freq, d, wave, rate), d, attack, release, rate)
}

// sequence plays notes once at the given tempo.
func sequence(notes []note, bpm float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	beat := time.Duration(float64(time.Minute) / bpm)
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, tone(n, time.Duration(n.beats*float64(beat)), wave, rate))
	}
	return beep.Seq(parts...)
}
