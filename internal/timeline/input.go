package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a numeric form field. Anything that is not a finite number
// returns ErrNaNInput so the caller can keep the previous value.
func ParseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", raw, ErrNaNInput)
	}
	return v, nil
}

// FormatClock renders seconds as m:ss, the way the player controls and the
// timeline ruler display time
func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int64(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
