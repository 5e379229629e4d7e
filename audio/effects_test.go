package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to exhaustion, failing if it runs past limit samples
func drain(t *testing.T, s beep.Streamer, limit int) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("sample %d is not finite: %f", total+i, v)
				}
				peak = math.Max(peak, math.Abs(v))
			}
		}
		total += n
		if !ok {
			return total, peak
		}
		if total > limit {
			t.Fatalf("stream did not end within %d samples", limit)
		}
	}
}

// TestOscillatorSine verifies sine wave range and length
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	total, peak := drain(t, osc, rate.N(time.Second))
	if total != rate.N(100*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(100*time.Millisecond), total)
	}
	if peak > 1.0 {
		t.Errorf("Sine peak out of range: %f", peak)
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorSquare verifies square wave only takes the two extremes
func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))

	samples := make([][2]float64, 50)
	n, ok := osc.Stream(samples)
	if !ok || n != 50 {
		t.Fatalf("Expected 50 samples ok, got %d %v", n, ok)
	}
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("Square wave sample %d should be -1.0 or 1.0, got %f", i, v)
		}
	}
}

// TestOscillatorEnds verifies an exhausted oscillator reports done
func TestOscillatorEnds(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 10*time.Millisecond, WaveSaw, rate)

	samples := make([][2]float64, 64)
	n, ok := osc.Stream(samples)
	if n != 10 || !ok {
		t.Fatalf("First stream: got %d %v, want 10 true", n, ok)
	}
	n, ok = osc.Stream(samples)
	if n != 0 || ok {
		t.Errorf("Second stream: got %d %v, want 0 false", n, ok)
	}
}

// TestEnvelopeShape verifies attack starts silent and release ends near silent
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 20*time.Millisecond, 20*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("Attack should start at zero, got %f", samples[0][0])
	}
	if samples[50][0] != 1.0 {
		t.Errorf("Sustain should be full volume, got %f", samples[50][0])
	}
	if samples[99][0] > 0.1 {
		t.Errorf("Release should end near zero, got %f", samples[99][0])
	}
}

// TestSweepEnds verifies a sweep is finite and bounded
func TestSweepEnds(t *testing.T) {
	rate := beep.SampleRate(8000)
	total, peak := drain(t, NewSweep(100, 1000, 50*time.Millisecond, rate), rate.N(time.Second))
	if total != rate.N(50*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(50*time.Millisecond), total)
	}
	if peak > 1.0 {
		t.Errorf("Sweep peak out of range: %f", peak)
	}
}

// TestAllSoundEffects verifies every cue builds a finite audible stream
func TestAllSoundEffects(t *testing.T) {
	s := DefaultSettings()
	s.SampleRate = 8000
	s.MasterVolume = 1.0
	limit := beep.SampleRate(s.SampleRate).N(2 * time.Second)

	for st := SoundType(0); st < soundTypeCount; st++ {
		t.Run(st.String(), func(t *testing.T) {
			streamer := GetSoundEffect(st, s)
			if streamer == nil {
				t.Fatal("Expected non-nil streamer")
			}
			total, peak := drain(t, streamer, limit)
			if total == 0 {
				t.Error("Expected samples")
			}
			if peak == 0 {
				t.Error("Expected audible output")
			}
		})
	}
}

// TestSoundEffectSilentAtZeroVolume verifies zero master volume yields silence
func TestSoundEffectSilentAtZeroVolume(t *testing.T) {
	s := DefaultSettings()
	s.SampleRate = 8000
	s.MasterVolume = 0

	_, peak := drain(t, GetSoundEffect(SoundBug, s), 8000)
	if peak != 0 {
		t.Errorf("Expected silence, got peak %f", peak)
	}
}

// TestGetSoundEffectUnknown verifies unknown types return nil
func TestGetSoundEffectUnknown(t *testing.T) {
	if GetSoundEffect(soundTypeCount, DefaultSettings()) != nil {
		t.Error("Expected nil streamer for unknown sound type")
	}
	if soundTypeCount.String() != "unknown" {
		t.Errorf("Expected unknown name, got %q", soundTypeCount.String())
	}
}
