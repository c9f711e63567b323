package timeutil

import (
	"errors"
	"testing"
	"time"

	appErrors "remindbot/internal/pkg/errors"
)

func TestToUTCConvertsOffset(t *testing.T) {
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	// A user at UTC+3 entering 09:00 local means 06:00 UTC.
	got, err := ToUTC("2025-01-01 09:00", 3, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("expected zeroed seconds, got %v", got)
	}
}

func TestToUTCRejectsMalformedInput(t *testing.T) {
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"tomorrow",
		"2025-01-01",
		"09:00 2025-01-01",
		"2025-13-01 09:00",
		"2025-01-01T09:00",
		"",
	} {
		if _, err := ToUTC(input, 0, now); !errors.Is(err, appErrors.ErrInvalidTimeFormat) {
			t.Errorf("input %q: expected ErrInvalidTimeFormat, got %v", input, err)
		}
	}
}

func TestToUTCRejectsPastTime(t *testing.T) {
	now := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)

	// 09:00 at UTC+3 is exactly now in UTC; "not strictly after" must fail.
	if _, err := ToUTC("2025-01-01 09:00", 3, now); !errors.Is(err, appErrors.ErrPastTime) {
		t.Errorf("expected ErrPastTime for boundary instant, got %v", err)
	}
	if _, err := ToUTC("2024-12-31 09:00", 3, now); !errors.Is(err, appErrors.ErrPastTime) {
		t.Errorf("expected ErrPastTime for past instant, got %v", err)
	}
	// One minute later is acceptable.
	if _, err := ToUTC("2025-01-01 09:01", 3, now); err != nil {
		t.Errorf("expected one minute ahead to be valid, got %v", err)
	}
}

func TestToUTCRejectsInvalidOffset(t *testing.T) {
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	for _, offset := range []int{-13, 13, 100} {
		if _, err := ToUTC("2025-01-01 09:00", offset, now); !errors.Is(err, appErrors.ErrInvalidOffset) {
			t.Errorf("offset %d: expected ErrInvalidOffset, got %v", offset, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	for _, offset := range []int{-12, -5, 0, 3, 12} {
		input := "2025-06-15 18:30"
		utc, err := ToUTC(input, offset, now)
		if err != nil {
			t.Fatalf("offset %+d: unexpected error: %v", offset, err)
		}
		if got := ToLocal(utc, offset); got != input {
			t.Errorf("offset %+d: round trip produced %q, want %q", offset, got, input)
		}
	}
}

func TestValidOffset(t *testing.T) {
	for _, offset := range []int{-12, 0, 12} {
		if !ValidOffset(offset) {
			t.Errorf("offset %d should be valid", offset)
		}
	}
	for _, offset := range []int{-13, 13} {
		if ValidOffset(offset) {
			t.Errorf("offset %d should be invalid", offset)
		}
	}
}

func TestClockAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 5, 0, 0, time.UTC)

	if got := ClockAt(now, 3); got != "15:05" {
		t.Errorf("expected 15:05 at UTC+3, got %s", got)
	}
	if got := ClockAt(now, -5); got != "07:05" {
		t.Errorf("expected 07:05 at UTC-5, got %s", got)
	}
}
