package domain_test

import (
	"math"
	"testing"
	"time"

	"stringlog/internal/modules/metronome/domain"
)

func TestClampBPM(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want int }{
		{in: 10, want: domain.MinBPM},
		{in: 40, want: 40},
		{in: 133, want: 133},
		{in: 240, want: 240},
		{in: 500, want: domain.MaxBPM},
	}
	for _, tc := range cases {
		if got := domain.ClampBPM(tc.in); got != tc.want {
			t.Fatalf("ClampBPM(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClampVolumeAndGain(t *testing.T) {
	t.Parallel()

	if got := domain.ClampVolume(-5); got != 0 {
		t.Fatalf("ClampVolume(-5) = %d", got)
	}
	if got := domain.ClampVolume(130); got != 100 {
		t.Fatalf("ClampVolume(130) = %d", got)
	}
	if got := domain.Gain(75); got != 0.75 {
		t.Fatalf("Gain(75) = %v", got)
	}
}

func TestBeatInterval(t *testing.T) {
	t.Parallel()

	if got := domain.BeatInterval(120); got != 0.5 {
		t.Fatalf("BeatInterval(120) = %v", got)
	}
	if got := domain.BeatInterval(60); got != 1 {
		t.Fatalf("BeatInterval(60) = %v", got)
	}
}

func TestSecondsToDurationNeverNegative(t *testing.T) {
	t.Parallel()

	if got := domain.SecondsToDuration(-0.2); got != 0 {
		t.Fatalf("negative delay = %v", got)
	}
	if got := domain.SecondsToDuration(0.05); got != 50*time.Millisecond {
		t.Fatalf("delay = %v", got)
	}
}

func TestToneEnvelope(t *testing.T) {
	t.Parallel()

	tone := domain.AccentTone
	if got := tone.Amplitude(0); got != 0.8 {
		t.Fatalf("peak = %v", got)
	}
	end := tone.Amplitude(tone.Duration - 1e-9)
	if math.Abs(end-domain.ToneFloor) > 1e-4 {
		t.Fatalf("tail = %v, want ~%v", end, domain.ToneFloor)
	}
	if got := tone.Amplitude(tone.Duration); got != 0 {
		t.Fatalf("after end = %v", got)
	}
	if got := tone.Amplitude(-0.01); got != 0 {
		t.Fatalf("before start = %v", got)
	}
	mid := tone.Amplitude(tone.Duration / 2)
	if mid >= 0.8 || mid <= domain.ToneFloor {
		t.Fatalf("mid = %v", mid)
	}
}

func TestToneFor(t *testing.T) {
	t.Parallel()

	if domain.ToneFor(true).Frequency != 1200 || domain.ToneFor(false).Frequency != 880 {
		t.Fatalf("unexpected tone frequencies")
	}
	if domain.ToneFor(false).Peak != 0.5 {
		t.Fatalf("normal peak = %v", domain.ToneFor(false).Peak)
	}
}

func TestToneSampleScalesWithGain(t *testing.T) {
	t.Parallel()

	offset := 0.0002
	full := domain.NormalTone.Sample(offset, 1)
	half := domain.NormalTone.Sample(offset, 0.5)
	if math.Abs(full/2-half) > 1e-12 {
		t.Fatalf("gain not linear: %v vs %v", full, half)
	}
	if domain.NormalTone.Sample(offset, 0) != 0 {
		t.Fatalf("muted sample not zero")
	}
}
