package service

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"stringlog/internal/modules/metronome/domain"
	metronomeout "stringlog/internal/modules/metronome/port/out"
	apperrors "stringlog/internal/platform/errors"
)

// Scheduler queues clicks on the audio clock with a short lookahead and moves the
// beat indicator when each click is due.
type Scheduler struct {
	output   metronomeout.AudioOutput
	deferrer metronomeout.Deferrer
	frames   metronomeout.FrameSource
	logger   *zap.Logger

	mu           sync.Mutex
	opened       bool
	running      bool
	bpm          int
	volume       int
	nextBeatTime float64
	beat         int
	indicator    int
	epoch        uint64
	pending      map[uint64]func()
	pendingSeq   uint64
	stopFrames   func()
	listeners    map[uint64]func(domain.State)
	listenerSeq  uint64
}

func NewScheduler(output metronomeout.AudioOutput, deferrer metronomeout.Deferrer, frames metronomeout.FrameSource, bpm, volume int, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		output:    output,
		deferrer:  deferrer,
		frames:    frames,
		logger:    logger,
		bpm:       domain.ClampBPM(bpm),
		volume:    domain.ClampVolume(volume),
		indicator: domain.NoBeat,
		pending:   map[uint64]func(){},
		listeners: map[uint64]func(domain.State){},
	}
}

// Start opens the output on first use and begins scheduling from the current audio time.
// Starting a running scheduler is a no-op.
func (s *Scheduler) Start() (domain.State, error) {
	s.mu.Lock()
	if s.running {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, nil
	}
	if !s.opened {
		if err := s.output.Open(); err != nil {
			state := s.stateLocked()
			s.mu.Unlock()
			s.logger.Warn("audio output unavailable", zap.Error(err))
			return state, fmt.Errorf("%w: %v", apperrors.ErrAudioUnavailable, err)
		}
		s.opened = true
	}
	s.output.SetGain(domain.Gain(s.volume))
	s.epoch++
	s.running = true
	s.beat = 0
	s.indicator = 0
	s.nextBeatTime = s.output.CurrentTime()
	s.pumpLocked()

	ticks, stop := s.frames.Frames()
	s.stopFrames = stop
	go s.loop(ticks, s.epoch)

	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Info("metronome started", zap.Int("bpm", state.BPM))
	notify(listeners, state)
	return state, nil
}

func (s *Scheduler) Stop() domain.State {
	s.mu.Lock()
	if !s.running {
		state := s.stateLocked()
		s.mu.Unlock()
		return state
	}
	s.running = false
	s.epoch++
	for id, cancel := range s.pending {
		cancel()
		delete(s.pending, id)
	}
	if s.stopFrames != nil {
		s.stopFrames()
		s.stopFrames = nil
	}
	s.beat = 0
	s.indicator = domain.NoBeat
	s.output.Suspend()
	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Info("metronome stopped")
	notify(listeners, state)
	return state
}

// Pump queues every click that falls inside the lookahead window.
func (s *Scheduler) Pump() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.pumpLocked()
}

func (s *Scheduler) SetBPM(bpm int) domain.State {
	s.mu.Lock()
	s.bpm = domain.ClampBPM(bpm)
	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()
	notify(listeners, state)
	return state
}

func (s *Scheduler) SetVolume(volume int) domain.State {
	s.mu.Lock()
	s.volume = domain.ClampVolume(volume)
	if s.opened {
		s.output.SetGain(domain.Gain(s.volume))
	}
	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()
	notify(listeners, state)
	return state
}

func (s *Scheduler) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Scheduler) Subscribe(listener func(domain.State)) func() {
	s.mu.Lock()
	s.listenerSeq++
	id := s.listenerSeq
	s.listeners[id] = listener
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close stops playback and releases the output if it was ever opened.
func (s *Scheduler) Close() error {
	s.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return nil
	}
	s.opened = false
	return s.output.Close()
}

func (s *Scheduler) loop(ticks <-chan time.Time, epoch uint64) {
	for range ticks {
		s.mu.Lock()
		if !s.running || s.epoch != epoch {
			s.mu.Unlock()
			return
		}
		s.pumpLocked()
		s.mu.Unlock()
	}
}

func (s *Scheduler) pumpLocked() {
	now := s.output.CurrentTime()
	for s.nextBeatTime < now+domain.Lookahead {
		click := domain.Click{Time: s.nextBeatTime, Beat: s.beat, Accent: s.beat == 0}
		s.output.Schedule(click)
		s.deferIndicatorLocked(click, now)
		s.nextBeatTime += domain.BeatInterval(s.bpm)
		s.beat = (s.beat + 1) % domain.BeatsPerMeasure
	}
}

func (s *Scheduler) deferIndicatorLocked(click domain.Click, now float64) {
	s.pendingSeq++
	id := s.pendingSeq
	epoch := s.epoch
	beat := click.Beat
	s.pending[id] = s.deferrer.AfterFunc(domain.SecondsToDuration(click.Time-now), func() {
		s.showBeat(epoch, id, beat)
	})
}

func (s *Scheduler) showBeat(epoch, id uint64, beat int) {
	s.mu.Lock()
	delete(s.pending, id)
	if !s.running || s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	s.indicator = beat
	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()
	notify(listeners, state)
}

func (s *Scheduler) stateLocked() domain.State {
	return domain.State{
		BPM:             s.bpm,
		BeatsPerMeasure: domain.BeatsPerMeasure,
		Running:         s.running,
		CurrentBeat:     s.indicator,
		Volume:          s.volume,
	}
}

func (s *Scheduler) listenersLocked() []func(domain.State) {
	out := make([]func(domain.State), 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func notify(listeners []func(domain.State), state domain.State) {
	for _, l := range listeners {
		l(state)
	}
}
