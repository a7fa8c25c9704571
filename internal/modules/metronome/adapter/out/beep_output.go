package out

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"stringlog/internal/modules/metronome/domain"
	metronomeout "stringlog/internal/modules/metronome/port/out"
)

const DefaultSampleRate = beep.SampleRate(44100)

// DeviceBuffer is the device chunk size. It stays well under the scheduler
// lookahead so one read burst cannot carry the clock past queued clicks.
const DeviceBuffer = time.Second / 40

// Device is the playback sink a BeepOutput streams into.
type Device interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(streamer beep.Streamer)
	Clear()
	Close()
}

type speakerDevice struct{}

func (speakerDevice) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerDevice) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

func (speakerDevice) Clear() {
	speaker.Clear()
}

func (speakerDevice) Close() {
	speaker.Close()
}

type voice struct {
	start int64
	tone  domain.Tone
}

// BeepOutput mixes scheduled clicks into a single endless stream. Its clock is the number
// of samples handed to the device divided by the sample rate.
type BeepOutput struct {
	device Device
	rate   beep.SampleRate

	mu       sync.Mutex
	opened   bool
	position int64
	gain     float64
	voices   []voice
}

func NewBeepOutput() metronomeout.AudioOutput {
	return NewBeepOutputWithDevice(speakerDevice{}, DefaultSampleRate)
}

func NewBeepOutputWithDevice(device Device, rate beep.SampleRate) *BeepOutput {
	return &BeepOutput{device: device, rate: rate, gain: domain.Gain(domain.DefaultVolume)}
}

func (o *BeepOutput) Open() error {
	o.mu.Lock()
	if o.opened {
		o.mu.Unlock()
		return nil
	}
	o.mu.Unlock()

	if err := o.device.Init(o.rate, o.rate.N(DeviceBuffer)); err != nil {
		return err
	}
	o.mu.Lock()
	o.opened = true
	o.mu.Unlock()
	o.device.Play(o)
	return nil
}

func (o *BeepOutput) CurrentTime() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return float64(o.position) / float64(o.rate)
}

// Schedule queues a click. A click whose time has already been streamed plays
// from the next sample instead of joining part-way through its envelope.
func (o *BeepOutput) Schedule(click domain.Click) {
	start := int64(math.Round(click.Time * float64(o.rate)))
	o.mu.Lock()
	if start < o.position {
		start = o.position
	}
	o.voices = append(o.voices, voice{start: start, tone: domain.ToneFor(click.Accent)})
	o.mu.Unlock()
}

func (o *BeepOutput) SetGain(gain float64) {
	o.mu.Lock()
	o.gain = gain
	o.mu.Unlock()
}

func (o *BeepOutput) Suspend() {
	o.mu.Lock()
	o.voices = nil
	o.mu.Unlock()
}

func (o *BeepOutput) Close() error {
	o.mu.Lock()
	opened := o.opened
	o.opened = false
	o.voices = nil
	o.mu.Unlock()
	if !opened {
		return nil
	}
	o.device.Clear()
	o.device.Close()
	return nil
}

// Stream renders the next block of samples. It never drains, so the clock keeps advancing
// while no clicks are queued.
func (o *BeepOutput) Stream(samples [][2]float64) (int, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	rate := float64(o.rate)
	for i := range samples {
		pos := o.position + int64(i)
		var v float64
		for _, vc := range o.voices {
			if pos < vc.start {
				continue
			}
			v += vc.tone.Sample(float64(pos-vc.start)/rate, o.gain)
		}
		v = math.Max(-1, math.Min(1, v))
		samples[i][0] = v
		samples[i][1] = v
	}
	o.position += int64(len(samples))

	live := o.voices[:0]
	for _, vc := range o.voices {
		if float64(o.position-vc.start)/rate < vc.tone.Duration {
			live = append(live, vc)
		}
	}
	o.voices = live
	return len(samples), true
}

func (o *BeepOutput) Err() error { return nil }
