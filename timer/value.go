package timer

import (
	"errors"
	"fmt"
)

// Field limits
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 3600
	MaxMinutes       = 59
	MaxSeconds       = 59
	MaxMilliseconds  = 999
)

// ErrOutOfRange is returned for negative fields or minutes/seconds past 59
var ErrOutOfRange = errors.New("time field out of range")

// Value is a normalized hours:minutes:seconds(:milliseconds) reading
type Value struct {
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

// Decompose splits a total second count into a normalized Value
// Negative counts clamp to zero
func Decompose(totalSeconds int) Value {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return Value{
		Hours:   totalSeconds / SecondsPerHour,
		Minutes: (totalSeconds / SecondsPerMinute) % 60,
		Seconds: totalSeconds % 60,
	}
}

// TotalSeconds recombines the whole-second fields
func (v Value) TotalSeconds() int {
	return v.Hours*SecondsPerHour + v.Minutes*SecondsPerMinute + v.Seconds
}

// Validate checks the normalization invariant
func (v Value) Validate() error {
	switch {
	case v.Hours < 0:
		return fmt.Errorf("%w: hours %d", ErrOutOfRange, v.Hours)
	case v.Minutes < 0 || v.Minutes > MaxMinutes:
		return fmt.Errorf("%w: minutes %d", ErrOutOfRange, v.Minutes)
	case v.Seconds < 0 || v.Seconds > MaxSeconds:
		return fmt.Errorf("%w: seconds %d", ErrOutOfRange, v.Seconds)
	case v.Milliseconds < 0 || v.Milliseconds > MaxMilliseconds:
		return fmt.Errorf("%w: milliseconds %d", ErrOutOfRange, v.Milliseconds)
	}
	return nil
}

// IsZero reports whether every field is zero
func (v Value) IsZero() bool {
	return v == Value{}
}

// Text renders the value as [HH:MM:SS]
func (v Value) Text() string {
	return fmt.Sprintf("[%02d:%02d:%02d]", v.Hours, v.Minutes, v.Seconds)
}

// TextMillis renders the value as [HH:MM:SS:mmm]
func (v Value) TextMillis() string {
	return fmt.Sprintf("[%02d:%02d:%02d:%03d]", v.Hours, v.Minutes, v.Seconds, v.Milliseconds)
}

// String implements fmt.Stringer
func (v Value) String() string {
	return v.Text()
}
