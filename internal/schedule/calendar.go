package schedule

import (
	"fmt"
	"time"

	"github.com/teachly/classtrack/internal/model"
)

// CalendarCell is one day of the month grid. Cells outside the requested
// month are still present so the grid tiles into full weeks.
type CalendarCell struct {
	Date           string                 `json:"date"`
	IsCurrentMonth bool                   `json:"is_current_month"`
	IsToday        bool                   `json:"is_today"`
	Classes        []*model.ClassSchedule `json:"classes"`
}

// SkippedClass reports a stored record an aggregation could not place. One
// bad record is dropped from the view, never allowed to abort it.
type SkippedClass struct {
	ClassID int64  `json:"class_id"`
	Reason  string `json:"reason"`
}

// GridCells is the fixed size of a month grid: 6 weeks of 7 days, regardless
// of month length or weekday alignment.
const GridCells = 6 * 7

// MonthGrid lays out year/month as 42 consecutive days starting at the
// WeekAnchor on or before the 1st. Classes land in the cell matching their
// exact date string; a day with no classes gets an empty slice, never nil.
// today flags the matching cell if it falls inside the grid.
func MonthGrid(year int, month time.Month, today time.Time, classes []*model.ClassSchedule) ([]CalendarCell, []SkippedClass) {
	byDate := make(map[string][]*model.ClassSchedule, len(classes))
	var skipped []SkippedClass
	for _, c := range classes {
		if _, err := ParseDate(c.ClassDate); err != nil {
			skipped = append(skipped, SkippedClass{ClassID: c.ID, Reason: fmt.Sprintf("malformed class_date %q", c.ClassDate)})
			continue
		}
		byDate[c.ClassDate] = append(byDate[c.ClassDate], c)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := WeekStart(first)
	todayKey := today.Format(model.DateLayout)

	cells := make([]CalendarCell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(model.DateLayout)
		dayClasses := byDate[key]
		if dayClasses == nil {
			dayClasses = []*model.ClassSchedule{}
		} else {
			sortClasses(dayClasses)
		}
		cells = append(cells, CalendarCell{
			Date:           key,
			IsCurrentMonth: day.Month() == month,
			IsToday:        key == todayKey,
			Classes:        dayClasses,
		})
	}
	return cells, skipped
}

// MonthLabel renders the human-readable month heading, e.g. "May 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}
