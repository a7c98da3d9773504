package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachly/classtrack/internal/model"
)

func TestWeekStart_AnchorsOnSunday(t *testing.T) {
	// 2024-05-01 is a Wednesday; its week starts on Sunday 2024-04-28.
	wed := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-04-28", WeekStart(wed).Format(model.DateLayout))

	sun := time.Date(2024, time.April, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-04-28", WeekStart(sun).Format(model.DateLayout), "anchor day maps to itself")

	sat := time.Date(2024, time.May, 4, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-04-28", WeekStart(sat).Format(model.DateLayout))
}

func TestMonthGrid_Always42Cells(t *testing.T) {
	today := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		year  int
		month time.Month
		first string
	}{
		{2024, time.May, "2024-04-28"},       // starts Wednesday
		{2021, time.February, "2021-01-31"},  // 28-day month starting Monday
		{2024, time.September, "2024-09-01"}, // starts exactly on the anchor
		{2024, time.December, "2024-12-01"},
	} {
		cells, skipped := MonthGrid(tc.year, tc.month, today, nil)
		require.Len(t, cells, GridCells, "%s %d", tc.month, tc.year)
		assert.Empty(t, skipped)
		assert.Equal(t, tc.first, cells[0].Date)

		// Consecutive dates, no gaps.
		prev, _ := ParseDate(cells[0].Date)
		for _, cell := range cells[1:] {
			day, err := ParseDate(cell.Date)
			require.NoError(t, err)
			assert.Equal(t, prev.AddDate(0, 0, 1), day)
			prev = day
		}
	}
}

func TestMonthGrid_FlagsCurrentMonthAndToday(t *testing.T) {
	today := time.Date(2024, time.May, 15, 9, 30, 0, 0, time.UTC)
	cells, _ := MonthGrid(2024, time.May, today, nil)

	todayCount := 0
	for _, cell := range cells {
		if cell.IsToday {
			todayCount++
			assert.Equal(t, "2024-05-15", cell.Date)
		}
		inMay := cell.Date >= "2024-05-01" && cell.Date <= "2024-05-31"
		assert.Equal(t, inMay, cell.IsCurrentMonth, "cell %s", cell.Date)
	}
	assert.Equal(t, 1, todayCount)
}

func TestMonthGrid_TodayOutsideGridIsNotFlagged(t *testing.T) {
	today := time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)
	cells, _ := MonthGrid(2024, time.May, today, nil)

	for _, cell := range cells {
		assert.False(t, cell.IsToday)
	}
}

func TestMonthGrid_BucketsClassesByExactDate(t *testing.T) {
	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	classes := []*model.ClassSchedule{
		{ID: 1, ClassDate: "2024-05-03", StartTime: "14:00", DurationMinutes: 50},
		{ID: 2, ClassDate: "2024-05-03", StartTime: "09:00", DurationMinutes: 50},
		{ID: 3, ClassDate: "2024-04-29", StartTime: "10:00", DurationMinutes: 50}, // previous-month cell
	}

	cells, skipped := MonthGrid(2024, time.May, today, classes)
	assert.Empty(t, skipped)

	byDate := make(map[string]CalendarCell, len(cells))
	for _, cell := range cells {
		require.NotNil(t, cell.Classes, "empty days map to an empty slice, never nil")
		byDate[cell.Date] = cell
	}

	day := byDate["2024-05-03"]
	require.Len(t, day.Classes, 2)
	assert.Equal(t, int64(2), day.Classes[0].ID, "ordered by start time")
	assert.Equal(t, int64(1), day.Classes[1].ID)

	assert.Len(t, byDate["2024-04-29"].Classes, 1)
	assert.Empty(t, byDate["2024-05-04"].Classes)
}

func TestMonthGrid_SkipsAndReportsMalformedDates(t *testing.T) {
	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	classes := []*model.ClassSchedule{
		{ID: 1, ClassDate: "2024-05-03", StartTime: "10:00", DurationMinutes: 50},
		{ID: 2, ClassDate: "not-a-date", StartTime: "10:00", DurationMinutes: 50},
	}

	cells, skipped := MonthGrid(2024, time.May, today, classes)

	require.Len(t, skipped, 1)
	assert.Equal(t, int64(2), skipped[0].ClassID)

	total := 0
	for _, cell := range cells {
		total += len(cell.Classes)
	}
	assert.Equal(t, 1, total, "the faulty record is dropped, the rest survive")
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "May 2024", MonthLabel(2024, time.May))
	assert.Equal(t, "January 2025", MonthLabel(2025, time.January))
}
