package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrTimerRunning      = errors.New("timer already running")
	ErrTimerNotRunning   = errors.New("timer is not running")
	ErrTimerNotPaused    = errors.New("timer is not paused")
	ErrAudioUnavailable  = errors.New("audio output unavailable")
	ErrSearchUnavailable = errors.New("track search unavailable")
	ErrDataIntegrity     = errors.New("data integrity error")
)
