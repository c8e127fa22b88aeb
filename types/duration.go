package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Duration is a time span read from configuration, such as a confirmation timeout or a receipt
// polling interval.
type Duration struct {
	time.Duration
}

// NewDuration wraps a time.Duration with a Duration.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// ParseDuration parses "90s", "1m30s" and similar. A bare number is read as nanoseconds.
func ParseDuration(s string) (Duration, error) {
	d, err := cast.ToDurationE(strings.TrimSpace(s))
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	return NewDuration(d), nil
}

// Positive reports whether the duration is strictly greater than zero.
func (d Duration) Positive() bool {
	return d.Duration > 0
}
