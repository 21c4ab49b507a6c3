package calendar

import (
	"testing"
	"time"

	"github.com/alphaforge/forge/internal/modules/refdata"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestNextExDate(t *testing.T) {
	quarterly := refdata.Dividend{Ticker: "AAPL", ExDay: 10, ExMonths: []int{2, 5, 8, 11}}

	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{"before first ex month", date(2026, 1, 15), date(2026, 2, 10)},
		{"on the ex date", date(2026, 2, 10), date(2026, 2, 10)},
		{"day after rolls to next quarter", date(2026, 2, 11), date(2026, 5, 10)},
		{"mid year", date(2026, 7, 1), date(2026, 8, 10)},
		{"past last ex month rolls to next year", date(2026, 11, 20), date(2027, 2, 10)},
		{"end of year rolls to next year", date(2026, 12, 31), date(2027, 2, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nextExDate(quarterly, tt.now)
			if !ok {
				t.Fatal("expected an ex date")
			}
			if !got.Equal(tt.expected) {
				t.Errorf("nextExDate = %s, want %s", got.Format("2006-01-02"), tt.expected.Format("2006-01-02"))
			}
		})
	}
}

func TestNextExDate_NoSchedule(t *testing.T) {
	none := refdata.Dividend{Ticker: "GROWTH"}
	if _, ok := nextExDate(none, date(2026, 6, 1)); ok {
		t.Error("expected no ex date for an empty schedule")
	}
}
