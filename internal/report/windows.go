package report

import (
	"fmt"
	"time"
)

// Working day bounds in local wall-clock hours
const (
	workdayStartHour = 9
	workdayEndHour   = 18
)

// TimeWindow represents one working day bounded in UTC epoch seconds
type TimeWindow struct {
	Date          string
	TimeFrom      int64
	TimeTill      int64
	ReadableStart string
}

// WorkingWindows produces one window per calendar day, walking backward from
// the anchor day, daysBack+1 windows in total. The anchor is "today" in the
// given zone, shifted back one day while the local clock has not reached the
// working day start. Bounds convert through the zone database, so windows
// straddling DST transitions stay correct.
func WorkingWindows(timezone string, daysBack int, now time.Time) ([]TimeWindow, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}

	local := now.In(loc)

	// Anchor at noon so stepping across DST days cannot skip a date
	anchor := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, loc)
	if local.Hour() < workdayStartHour {
		anchor = anchor.AddDate(0, 0, -1)
	}

	windows := make([]TimeWindow, 0, daysBack+1)
	for i := 0; i <= daysBack; i++ {
		day := anchor.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), workdayStartHour, 0, 0, 0, loc)
		end := time.Date(day.Year(), day.Month(), day.Day(), workdayEndHour, 0, 0, 0, loc)

		windows = append(windows, TimeWindow{
			Date:          start.Format("2006-01-02"),
			TimeFrom:      start.Unix(),
			TimeTill:      end.Unix(),
			ReadableStart: start.UTC().Format("2006-01-02 15:04:05 UTC"),
		})
	}

	return windows, nil
}
