package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/teachly/classtrack/internal/model"
)

// WeekAnchor is the weekday every calendar week starts on. The month grid
// and the earnings buckets must use the same anchor, otherwise a highlighted
// day would land in a different week than its earnings.
const WeekAnchor = time.Sunday

// WeekStart returns midnight UTC of the WeekAnchor day on or before t.
func WeekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	back := (int(d.Weekday()) - int(WeekAnchor) + 7) % 7
	return d.AddDate(0, 0, -back)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, &model.ValidationError{Field: "class_date", Reason: fmt.Sprintf("%q is not a valid YYYY-MM-DD date", s)}
	}
	return t, nil
}

// MinuteOfDay parses an HH:MM time of day into minutes since midnight.
func MinuteOfDay(s string) (int, error) {
	t, err := time.Parse(model.TimeLayout, s)
	if err != nil {
		return 0, &model.ValidationError{Field: "start_time", Reason: fmt.Sprintf("%q is not a valid HH:MM time", s)}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// sortClasses orders classes chronologically: by date, then start time, then
// id as a tiebreaker. ISO date and HH:MM strings compare correctly as text.
func sortClasses(classes []*model.ClassSchedule) {
	sort.SliceStable(classes, func(i, j int) bool {
		if classes[i].ClassDate != classes[j].ClassDate {
			return classes[i].ClassDate < classes[j].ClassDate
		}
		if classes[i].StartTime != classes[j].StartTime {
			return classes[i].StartTime < classes[j].StartTime
		}
		return classes[i].ID < classes[j].ID
	})
}
