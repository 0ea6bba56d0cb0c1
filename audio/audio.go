// Package audio plays short tones for simulation events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/majeika/physics2d"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes tones onto the speaker. Until Init succeeds it stays silent,
// so it can be used headless.
type Player struct {
	log         *zap.Logger
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	initialized bool
	// volume in beep's base-2 scale, 0 is unchanged
	Volume float64
}

// NewPlayer returns a silent player. A nil log discards playback errors.
func NewPlayer(log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		log:    log,
		mixer:  &beep.Mixer{},
		rate:   sampleRate,
		Volume: -2,
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Tone returns a sine tone of freq hertz lasting d.
func Tone(rate beep.SampleRate, freq float64, d time.Duration, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(rate.N(d), &effects.Volume{
		Streamer: sine,
		Base:     2,
		Volume:   volume,
	}), nil
}

// Blip plays a short tone. Before Init the tone is only validated.
func (p *Player) Blip(freq float64, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	tone, err := Tone(p.rate, freq, d, p.Volume)
	if err != nil {
		return fmt.Errorf("audio: blip %.0f Hz: %w", freq, err)
	}
	if !p.initialized {
		return nil
	}
	speaker.Lock()
	p.mixer.Add(tone)
	speaker.Unlock()
	return nil
}

// Pitch maps an impact speed to a blip frequency.
func Pitch(speed float64) float64 {
	return 220 + physics2d.Clamp(speed, 0, 100)*8
}

// OnCollision wraps handler so that every contact also plays a blip pitched
// by the relative speed of the bodies along the collision axis.
func (p *Player) OnCollision(handler physics2d.CollisionHandler) physics2d.CollisionHandler {
	return func(a, b *physics2d.Body, axis physics2d.Vector) {
		speed := a.Velocity().Sub(b.Velocity()).Dot(axis)
		if speed < 0 {
			speed = -speed
		}
		if err := p.Blip(Pitch(speed), 40*time.Millisecond); err != nil {
			p.log.Warn("collision blip failed", zap.Error(err))
		}
		if handler != nil {
			handler(a, b, axis)
		}
	}
}
