package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidThreshold is returned for negative, non-numeric or out of range thresholds.
var ErrInvalidThreshold = errors.New("invalid threshold")

// ParseThreshold parses a non-negative number of seconds.
func ParseThreshold(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	seconds, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number of seconds", ErrInvalidThreshold, s)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidThreshold, seconds)
	}
	if seconds > math.MaxInt64/int64(time.Second) {
		return 0, fmt.Errorf("%w: %d is too large", ErrInvalidThreshold, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}
