package domain

import (
	"fmt"
	"math"
	"time"
)

const clockLayout = "15:04:05"

// ConvertTo24h turns a (hour 1-12, minute 0-59, AM/PM) triple into a
// 24-hour "HH:MM:SS" clock string. 12 AM folds to 00, 12 PM stays 12,
// any other PM hour gains 12.
func ConvertTo24h(hour, minute int, meridiem string) (string, error) {
	if hour < 1 || hour > 12 {
		return "", fmt.Errorf("%w: hour %d out of range 1-12", ErrInvalidInput, hour)
	}
	if minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: minute %d out of range 0-59", ErrInvalidInput, minute)
	}
	switch meridiem {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return "", fmt.Errorf("%w: meridiem must be AM or PM, got %q", ErrInvalidInput, meridiem)
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

// ElapsedHours computes (end - start) in hours from two 24-hour "HH:MM:SS"
// clock strings, rounded to 4 decimal places. A negative span (end before
// start) clamps to exactly 0.0: overnight shifts are not modelled.
// Unparseable input also yields 0.0, matching the historic behaviour of the
// reporting forms where partially filled times mean "no span recorded".
func ElapsedHours(start24, end24 string) float64 {
	t1, err1 := time.Parse(clockLayout, start24)
	t2, err2 := time.Parse(clockLayout, end24)
	if err1 != nil || err2 != nil {
		return 0.0
	}
	diff := t2.Sub(t1).Hours()
	if diff < 0 {
		return 0.0
	}
	return round4(diff)
}

// BlockVolume is the product of the three block dimensions, with no unit
// conversion.
func BlockVolume(w, h, l float64) float64 {
	return w * h * l
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
