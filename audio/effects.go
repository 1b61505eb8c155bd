package audio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/tstris/constant"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator of the given length
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is one enveloped tone
func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, constant.CueAttack, constant.CueRelease, rate)
}

// arpeggio plays notes back to back
func arpeggio(freqs []float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = note(f, d, wave, rate)
	}
	return beep.Seq(notes...)
}

// CueStreamer builds the finite streamer for a cue at the given master volume
func CueStreamer(c Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	var s beep.Streamer
	switch c {
	case CueLock:
		s = newVolume(note(110, constant.LockCueDuration, WaveSquare, rate), 0.4)
	case CueHardDrop:
		click := newVolume(note(0, constant.LockCueDuration/2, WaveNoise, rate), 0.3)
		thud := note(70, constant.LockCueDuration*2, WaveSine, rate)
		s = beep.Seq(click, thud)
	case CueClear:
		s = arpeggio([]float64{523.25, 659.25, 783.99}, constant.ClearCueNoteLength, WaveSquare, rate)
		s = newVolume(s, 0.5)
	case CueTetris:
		s = arpeggio([]float64{523.25, 659.25, 783.99, 1046.50}, constant.ClearCueNoteLength, WaveSquare, rate)
		s = newVolume(s, 0.6)
	case CueLevelUp:
		s = arpeggio([]float64{659.25, 880, 1318.51}, constant.LevelCueNoteLength, WaveSine, rate)
	case CueGameOver:
		s = arpeggio([]float64{329.63, 261.63, 220}, constant.GameOverCueDuration/3, WaveSaw, rate)
		s = newVolume(s, 0.5)
	case CueFinished:
		s = arpeggio([]float64{523.25, 783.99, 1046.50, 1567.98}, constant.LevelCueNoteLength, WaveSine, rate)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCue, int(c))
	}
	return newVolume(s, volume), nil
}
