// Package timeutil converts between a user's fixed whole-hour UTC offset and
// absolute UTC instants. Offsets are integers in [-12, +12]; daylight saving
// and fractional offsets are deliberately not modeled.
package timeutil

import (
	"fmt"
	"time"

	appErrors "remindbot/internal/pkg/errors"
)

// Layout is the fixed textual format for reminder times (24-hour, no seconds).
const Layout = "2006-01-02 15:04"

const (
	// MinOffset and MaxOffset bound the selectable whole-hour UTC offsets.
	MinOffset = -12
	MaxOffset = 12
)

// ValidOffset reports whether o is a supported whole-hour UTC offset.
func ValidOffset(o int) bool {
	return o >= MinOffset && o <= MaxOffset
}

// zone returns the fixed location for a whole-hour offset.
func zone(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}

// ToUTC parses text in the Layout format, interprets it as local to
// offsetHours and converts it to UTC. Seconds and sub-seconds are zero by
// construction of the layout. It returns ErrInvalidTimeFormat on malformed
// input, ErrInvalidOffset on an unsupported offset, and ErrPastTime unless
// the resulting instant is strictly after now.
func ToUTC(text string, offsetHours int, now time.Time) (time.Time, error) {
	if !ValidOffset(offsetHours) {
		return time.Time{}, fmt.Errorf("%w: %+d", appErrors.ErrInvalidOffset, offsetHours)
	}

	local, err := time.ParseInLocation(Layout, text, zone(offsetHours))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", appErrors.ErrInvalidTimeFormat, text)
	}

	utc := local.UTC()
	if !utc.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s", appErrors.ErrPastTime, text)
	}
	return utc, nil
}

// ToLocal formats a UTC instant in the user's offset using the same layout
// as ToUTC, so that display round-trips the input exactly.
func ToLocal(t time.Time, offsetHours int) string {
	return t.In(zone(offsetHours)).Format(Layout)
}

// ClockAt returns the current wall clock (HH:MM) at the given offset.
// Used to label timezone choices during registration.
func ClockAt(now time.Time, offsetHours int) string {
	return now.In(zone(offsetHours)).Format("15:04")
}
