package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
// Calendar math (days, weeks, months) uses the Location of the returned instant.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
