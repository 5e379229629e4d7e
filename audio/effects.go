package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/git-conflict/constants"
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

// NewOscillator creates a finite oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
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
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is a sine whose frequency moves linearly from one pitch to another
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSweep creates a finite pitch sweep
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*progress
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, zero volume is expressed as Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is one enveloped oscillator tone
func note(freq float64, wave WaveType, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// jingle plays notes in sequence, each shaped as a short tone
func jingle(freqs []float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = note(f, wave, constants.JingleNoteDuration, constants.JingleNoteAttack, constants.JingleNoteRelease, rate)
	}
	return beep.Seq(notes...)
}

// Sound effect generators

// CreateMoveSound generates a soft tick for each step
func CreateMoveSound(s *Settings) beep.Streamer {
	rate := beep.SampleRate(s.SampleRate)
	tick := note(660, WaveSine, constants.MoveSoundDuration, constants.MoveSoundAttack, constants.MoveSoundRelease, rate)
	return newVolume(tick, s.volume(SoundMove))
}

// CreateConflictSound generates a rising alarm when a conflict opens
func CreateConflictSound(s *Settings) beep.Streamer {
	rate := beep.SampleRate(s.SampleRate)
	d := constants.ConflictSoundDuration
	rise := NewEnvelope(NewSweep(220, 440, d, rate), d, constants.ConflictSoundAttack, constants.ConflictSoundRelease, rate)
	edge := note(440, WaveSquare, d, constants.ConflictSoundAttack, constants.ConflictSoundRelease, rate)
	mixed := beep.Mix(newVolume(rise, 0.8), newVolume(edge, 0.15))
	return newVolume(mixed, s.volume(SoundConflict))
}

// CreatePowerupSound generates a three-note arpeggio
func CreatePowerupSound(s *Settings) beep.Streamer {
	rate := beep.SampleRate(s.SampleRate)
	d := constants.PowerupSoundNoteDuration
	seq := beep.Seq(
		note(523.25, WaveSine, d, constants.PowerupSoundAttack, constants.PowerupSoundRelease, rate), // C5
		note(659.25, WaveSine, d, constants.PowerupSoundAttack, constants.PowerupSoundRelease, rate), // E5
		note(783.99, WaveSine, d, constants.PowerupSoundAttack, constants.PowerupSoundRelease, rate), // G5
	)
	return newVolume(seq, s.volume(SoundPowerup))
}

// CreateBugSound generates a harsh buzz with a noise burst
func CreateBugSound(s *Settings) beep.Streamer {
	rate := beep.SampleRate(s.SampleRate)
	d := constants.BugSoundDuration
	buzz := note(110, WaveSaw, d, constants.BugSoundAttack, constants.BugSoundRelease, rate)
	noise := note(0, WaveNoise, d, constants.BugSoundAttack, constants.BugSoundRelease, rate)
	mixed := beep.Mix(newVolume(buzz, 0.7), newVolume(noise, 0.3))
	return newVolume(mixed, s.volume(SoundBug))
}

// CreateWinSound generates an ascending major jingle
func CreateWinSound(s *Settings) beep.Streamer {
	rate := beep.SampleRate(s.SampleRate)
	seq := jingle([]float64{523.25, 659.25, 783.99, 1046.50}, WaveSquare, rate)
	return newVolume(seq, s.volume(SoundWin))
}

// CreateLoseSound generates a falling sweep
func CreateLoseSound(s *Settings) beep.Streamer {
	rate := beep.SampleRate(s.SampleRate)
	d := constants.LoseSoundDuration
	fall := NewEnvelope(NewSweep(392, 98, d, rate), d, constants.LoseSoundAttack, constants.LoseSoundRelease, rate)
	return newVolume(fall, s.volume(SoundLose))
}

// CreateCommitSound generates a bell with an octave overtone
func CreateCommitSound(s *Settings) beep.Streamer {
	rate := beep.SampleRate(s.SampleRate)
	d := constants.CommitSoundDuration
	fund := note(880, WaveSine, d, constants.CommitSoundAttack, constants.CommitSoundRelease, rate)
	over := note(1760, WaveSine, d, constants.CommitSoundAttack, constants.CommitSoundRelease/2, rate)
	mixed := beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
	return newVolume(mixed, s.volume(SoundCommit))
}

// GetSoundEffect returns the streamer for the given cue, nil for unknown types
func GetSoundEffect(st SoundType, s *Settings) beep.Streamer {
	switch st {
	case SoundMove:
		return CreateMoveSound(s)
	case SoundConflict:
		return CreateConflictSound(s)
	case SoundPowerup:
		return CreatePowerupSound(s)
	case SoundBug:
		return CreateBugSound(s)
	case SoundWin:
		return CreateWinSound(s)
	case SoundLose:
		return CreateLoseSound(s)
	case SoundCommit:
		return CreateCommitSound(s)
	default:
		return nil
	}
}
