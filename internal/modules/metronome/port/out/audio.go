package out

import (
	"time"

	"stringlog/internal/modules/metronome/domain"
)

// AudioOutput is the sound device. CurrentTime is its clock in seconds.
type AudioOutput interface {
	Open() error
	CurrentTime() float64
	Schedule(click domain.Click)
	SetGain(gain float64)
	// Suspend drops queued clicks; the device stays open.
	Suspend()
	Close() error
}

type Deferrer interface {
	AfterFunc(delay time.Duration, fn func()) (cancel func())
}

// FrameSource delivers re-pump ticks until stop is called; the channel is closed after stop.
type FrameSource interface {
	Frames() (ticks <-chan time.Time, stop func())
}
