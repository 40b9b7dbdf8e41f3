package timer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrParse is returned for time strings that cannot be read
var ErrParse = errors.New("cannot parse time")

// FromDuration converts a non-negative duration to a Value, keeping milliseconds
func FromDuration(d time.Duration) Value {
	if d < 0 {
		d = 0
	}
	v := Decompose(int(d / time.Second))
	v.Milliseconds = int((d % time.Second) / time.Millisecond)
	return v
}

// ParseValue reads a time given as HH:MM:SS, MM:SS, a plain second count or
// a Go duration such as 1h2m3s
// In colon forms only the leading field may exceed 59; the result is normalized
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty", ErrParse)
	}

	if strings.Contains(s, ":") {
		return parseClock(s)
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Value{}, fmt.Errorf("%w: negative %q", ErrParse, s)
		}
		return Decompose(n), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	if d < 0 {
		return Value{}, fmt.Errorf("%w: negative %q", ErrParse, s)
	}
	return FromDuration(d), nil
}

func parseClock(s string) (Value, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return Value{}, fmt.Errorf("%w: too many fields in %q", ErrParse, s)
	}

	// Weights from the rightmost field: seconds, minutes, hours
	weights := [...]int{1, SecondsPerMinute, SecondsPerHour}
	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Value{}, fmt.Errorf("%w: field %q in %q", ErrParse, p, s)
		}
		pos := len(parts) - 1 - i
		if i > 0 && n > 59 {
			return Value{}, fmt.Errorf("%w: field %q in %q exceeds 59", ErrParse, p, s)
		}
		if n > (math.MaxInt-total)/weights[pos] {
			return Value{}, fmt.Errorf("%w: %q overflows", ErrParse, s)
		}
		total += n * weights[pos]
	}
	return Decompose(total), nil
}
