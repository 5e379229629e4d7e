package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/status"
)

// Player plays cues, implemented by SoundManager
type Player interface {
	Play(st SoundType) bool
}

// SoundManager owns the speaker and a mixer that every cue is added to
type SoundManager struct {
	mu          sync.Mutex
	settings    *Settings
	mixer       *beep.Mixer
	initialized bool

	muted  atomic.Bool
	played atomic.Int64

	// Mirrors for the debug overlay, nil until AttachMetrics
	statVolume *status.AtomicFloat
	statMuted  *atomic.Bool
}

// NewSoundManager creates a sound manager, nil settings selects the defaults
func NewSoundManager(settings *Settings) *SoundManager {
	if settings == nil {
		settings = DefaultSettings()
	}
	sm := &SoundManager{
		settings: settings,
		mixer:    &beep.Mixer{},
	}
	sm.muted.Store(!settings.Enabled)
	return sm
}

// Initialize opens the speaker, failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.settings.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Play queues a cue, returns false when nothing was played
func (sm *SoundManager) Play(st SoundType) bool {
	if sm.muted.Load() {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}
	s := GetSoundEffect(st, sm.settings)
	if s == nil {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
	return true
}

// ToggleMute flips the mute state, returns true if sound is now enabled
func (sm *SoundManager) ToggleMute() bool {
	muted := !sm.muted.Load()
	sm.muted.Store(muted)
	sm.publish()
	if muted && sm.IsInitialized() {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}
	return !muted
}

// SetMuted sets the mute state directly
func (sm *SoundManager) SetMuted(muted bool) {
	sm.muted.Store(muted)
	sm.publish()
}

// IsMuted returns current mute state
func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// IsInitialized reports whether the speaker is open
func (sm *SoundManager) IsInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// SetVolume updates master volume (0.0-1.0) for cues played afterwards
func (sm *SoundManager) SetVolume(vol float64) {
	sm.mu.Lock()
	sm.settings.MasterVolume = min(1, max(0, vol))
	sm.mu.Unlock()
	sm.publish()
}

// Volume returns the master volume
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.settings.MasterVolume
}

// Played returns the number of cues handed to the speaker
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}

// AttachMetrics mirrors volume and mute state into reg, call before the frontend starts
func (sm *SoundManager) AttachMetrics(reg *status.Registry) {
	sm.statVolume = reg.Floats.Get(status.KeyVolume)
	sm.statMuted = reg.Bools.Get(status.KeyMuted)
	sm.publish()
}

func (sm *SoundManager) publish() {
	if sm.statVolume == nil {
		return
	}
	sm.statVolume.Set(sm.Volume())
	sm.statMuted.Store(sm.muted.Load())
}
