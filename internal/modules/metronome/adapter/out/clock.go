package out

import (
	"sync"
	"time"

	"stringlog/internal/modules/metronome/domain"
	metronomeout "stringlog/internal/modules/metronome/port/out"
)

type TimerDeferrer struct{}

func NewTimerDeferrer() metronomeout.Deferrer { return TimerDeferrer{} }

func (TimerDeferrer) AfterFunc(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// TickerFrames re-pumps the scheduler at a fixed display-like cadence.
type TickerFrames struct {
	Interval time.Duration
}

func NewTickerFrames() metronomeout.FrameSource {
	return TickerFrames{Interval: domain.FrameInterval}
}

func (f TickerFrames) Frames() (<-chan time.Time, func()) {
	interval := f.Interval
	if interval <= 0 {
		interval = domain.FrameInterval
	}
	out := make(chan time.Time, 1)
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(out)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case t := <-ticker.C:
				select {
				case out <- t:
				default:
				}
			}
		}
	}()
	var once sync.Once
	return out, func() { once.Do(func() { close(done) }) }
}
