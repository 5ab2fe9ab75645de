package timeutil

import (
	"testing"
	"time"
)

func TestHoursToNanoseconds(t *testing.T) {
	if got := HoursToNanoseconds(1); got != 3_600_000_000_000 {
		t.Errorf("HoursToNanoseconds(1) = %d", got)
	}
	if got := HoursToNanoseconds(24); got != DayInSeconds*1_000_000_000 {
		t.Errorf("HoursToNanoseconds(24) = %d", got)
	}
}

func TestNanosRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 123)
	if !FromNanos(Nanos(now)).Equal(now) {
		t.Error("round trip mismatch")
	}
}
