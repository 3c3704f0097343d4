package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkingWindows tests window generation over the look-back period
func TestWorkingWindows(t *testing.T) {
	ekb, err := time.LoadLocation("Asia/Yekaterinburg")
	require.NoError(t, err)

	now := time.Date(2025, 7, 15, 12, 0, 0, 0, ekb)

	testCases := []struct {
		name     string
		daysBack int
		want     int
	}{
		{name: "today only", daysBack: 0, want: 1},
		{name: "one week", daysBack: 6, want: 7},
		{name: "default month", daysBack: 31, want: 32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			windows, err := WorkingWindows("Asia/Yekaterinburg", tc.daysBack, now)
			require.NoError(t, err)
			assert.Len(t, windows, tc.want)
		})
	}
}

// TestWorkingWindowsBounds tests that every window maps back to local
// working hours
func TestWorkingWindowsBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Yekaterinburg")
	require.NoError(t, err)

	now := time.Date(2025, 7, 15, 12, 0, 0, 0, loc)
	windows, err := WorkingWindows("Asia/Yekaterinburg", 10, now)
	require.NoError(t, err)

	for _, w := range windows {
		start := time.Unix(w.TimeFrom, 0).In(loc)
		end := time.Unix(w.TimeTill, 0).In(loc)

		assert.Equal(t, "09:00:00", start.Format("15:04:05"))
		assert.Equal(t, "18:00:00", end.Format("15:04:05"))
		assert.Equal(t, w.Date, start.Format("2006-01-02"))
	}

	// Yekaterinburg is UTC+5 year-round
	assert.Equal(t, "2025-07-15 04:00:00 UTC", windows[0].ReadableStart)
	assert.Equal(t, int64(9*3600), windows[0].TimeTill-windows[0].TimeFrom)
}

// TestWorkingWindowsDescending tests that windows walk backward day by day
func TestWorkingWindowsDescending(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Yekaterinburg")
	require.NoError(t, err)

	now := time.Date(2025, 7, 15, 12, 0, 0, 0, loc)
	windows, err := WorkingWindows("Asia/Yekaterinburg", 5, now)
	require.NoError(t, err)

	assert.Equal(t, "2025-07-15", windows[0].Date)
	assert.Equal(t, "2025-07-10", windows[5].Date)

	for i := 1; i < len(windows); i++ {
		assert.Greater(t, windows[i-1].Date, windows[i].Date)
		assert.Greater(t, windows[i-1].TimeFrom, windows[i].TimeFrom)
	}
}

// TestWorkingWindowsAnchorShift tests the early-morning anchor shift
func TestWorkingWindowsAnchorShift(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Yekaterinburg")
	require.NoError(t, err)

	testCases := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "before working hours",
			now:  time.Date(2025, 7, 15, 8, 30, 0, 0, loc),
			want: "2025-07-14",
		},
		{
			name: "working day start",
			now:  time.Date(2025, 7, 15, 9, 0, 0, 0, loc),
			want: "2025-07-15",
		},
		{
			name: "evening",
			now:  time.Date(2025, 7, 15, 23, 30, 0, 0, loc),
			want: "2025-07-15",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			windows, err := WorkingWindows("Asia/Yekaterinburg", 0, tc.now)
			require.NoError(t, err)
			require.Len(t, windows, 1)
			assert.Equal(t, tc.want, windows[0].Date)
		})
	}
}

// TestWorkingWindowsDST tests windows straddling a daylight saving switch
func TestWorkingWindowsDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is the US spring-forward date
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, ny)
	windows, err := WorkingWindows("America/New_York", 3, now)
	require.NoError(t, err)
	require.Len(t, windows, 4)

	for _, w := range windows {
		start := time.Unix(w.TimeFrom, 0).In(ny)
		assert.Equal(t, "09:00:00", start.Format("15:04:05"), "window %s", w.Date)
	}

	// Consecutive starts are 24h apart inside one offset and 23h apart
	// across the spring-forward boundary
	assert.Equal(t, int64(86400), windows[0].TimeFrom-windows[1].TimeFrom)
	assert.Equal(t, int64(82800), windows[1].TimeFrom-windows[2].TimeFrom)
	assert.Equal(t, int64(86400), windows[2].TimeFrom-windows[3].TimeFrom)
}

// TestWorkingWindowsUnknownTimezone tests the only failure mode
func TestWorkingWindowsUnknownTimezone(t *testing.T) {
	_, err := WorkingWindows("Not/AZone", 5, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}
