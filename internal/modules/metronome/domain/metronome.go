package domain

import "time"

const (
	MinBPM          = 40
	MaxBPM          = 240
	DefaultBPM      = 120
	BeatsPerMeasure = 4
	MaxVolume       = 100
	DefaultVolume   = 75
	// NoBeat is the indicator value while the metronome is stopped.
	NoBeat = -1
)

// Lookahead is how far ahead of the audio clock clicks are queued, in seconds.
const Lookahead = 0.1

// FrameInterval is the cadence at which the scheduler is re-pumped.
const FrameInterval = time.Second / 60

// Click is a single scheduled beat. Time is on the audio clock, in seconds.
type Click struct {
	Time   float64
	Beat   int
	Accent bool
}

type State struct {
	BPM             int
	BeatsPerMeasure int
	Running         bool
	CurrentBeat     int
	Volume          int
}

func ClampBPM(bpm int) int {
	return clamp(bpm, MinBPM, MaxBPM)
}

func ClampVolume(volume int) int {
	return clamp(volume, 0, MaxVolume)
}

// BeatInterval returns seconds per beat at the given tempo.
func BeatInterval(bpm int) float64 {
	return 60.0 / float64(ClampBPM(bpm))
}

// Gain maps a 0..100 volume to the master gain applied to every click.
func Gain(volume int) float64 {
	return float64(ClampVolume(volume)) / MaxVolume
}

// SecondsToDuration converts an audio clock delta to a wall-clock delay, never negative.
func SecondsToDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
