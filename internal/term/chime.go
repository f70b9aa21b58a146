package term

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Chime plays the arrival sound.
type Chime interface {
	Play()
}

// Silent is a Chime that does nothing.
type Silent struct{}

// Play is a no-op.
func (Silent) Play() {}

// Speaker plays a short decaying tone through the system audio device.
type Speaker struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
}

// NewSpeaker initialises the audio device. Callers fall back to Silent on
// error.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &Speaker{mixer: &beep.Mixer{}, ready: true}
	speaker.Play(s.mixer)
	return s, nil
}

// Play queues one chime.
func (s *Speaker) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Add(Tone(880, 180*time.Millisecond))
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.ready = false
}

// Tone is a sine at freq Hz that fades out linearly over d.
func Tone(freq float64, d time.Duration) beep.Streamer {
	total := sampleRate.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := 1 - float64(pos)/float64(total)
			v := 0.3 * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(sampleRate))
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}
