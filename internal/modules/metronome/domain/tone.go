package domain

import "math"

// ToneFloor is the amplitude an envelope decays to at the end of a click.
const ToneFloor = 0.001

// Tone describes a decaying sine click.
type Tone struct {
	Frequency float64
	Peak      float64
	Duration  float64
}

var (
	AccentTone = Tone{Frequency: 1200, Peak: 0.8, Duration: 0.06}
	NormalTone = Tone{Frequency: 880, Peak: 0.5, Duration: 0.06}
)

func ToneFor(accent bool) Tone {
	if accent {
		return AccentTone
	}
	return NormalTone
}

// Amplitude is the exponential envelope at offset t seconds into the click.
func (t Tone) Amplitude(offset float64) float64 {
	if offset < 0 || offset >= t.Duration || t.Peak <= 0 {
		return 0
	}
	return t.Peak * math.Pow(ToneFloor/t.Peak, offset/t.Duration)
}

func (t Tone) Sample(offset, gain float64) float64 {
	return gain * t.Amplitude(offset) * math.Sin(2*math.Pi*t.Frequency*offset)
}
