package timezone

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	loc := Location("America/Sao_Paulo")

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-10T14:30:00Z", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)},
		{"2025-03-10T14:30:00.000Z", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)},
		{"2025-03-10T11:30", time.Date(2025, 3, 10, 11, 30, 0, 0, loc)},
		{"2025-03-10 11:30", time.Date(2025, 3, 10, 11, 30, 0, 0, loc)},
	}

	for _, tt := range tests {
		got, err := ParseDateTime(tt.in, loc)
		if err != nil {
			t.Fatalf("ParseDateTime(%q) error = %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDateTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDateTime("next tuesday", loc); err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDayRangeFollowsLocation(t *testing.T) {
	loc := Location("America/Sao_Paulo")
	at := time.Date(2025, 6, 1, 23, 59, 0, 0, loc)

	start, end := DayRange(at)
	if start.Hour() != 0 || start.Day() != 1 {
		t.Errorf("start = %v", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("day length = %v", end.Sub(start))
	}
}

func TestLocationFallback(t *testing.T) {
	if Location("") != time.UTC {
		t.Error("empty timezone should fall back to UTC")
	}
	if Location("Nowhere/City") != time.UTC {
		t.Error("unknown timezone should fall back to UTC")
	}
}
