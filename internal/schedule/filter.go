package schedule

import "github.com/teachly/classtrack/internal/model"

// Matches reports whether c passes every constraint in spec. Unset fields
// constrain nothing; the date range is inclusive on both bounds.
func Matches(c *model.ClassSchedule, spec model.FilterSpec) bool {
	if spec.StudentID != nil && c.StudentID != *spec.StudentID {
		return false
	}
	if spec.Status != "" && c.Status != spec.Status {
		return false
	}
	if spec.DateFrom != "" && c.ClassDate < spec.DateFrom {
		return false
	}
	if spec.DateTo != "" && c.ClassDate > spec.DateTo {
		return false
	}
	return true
}

// ApplyFilter returns the classes passing spec, in chronological order. Both
// the calendar and the earnings views filter through here (directly or via
// the repository), so they always reflect the same active filter.
func ApplyFilter(classes []*model.ClassSchedule, spec model.FilterSpec) []*model.ClassSchedule {
	out := make([]*model.ClassSchedule, 0, len(classes))
	for _, c := range classes {
		if Matches(c, spec) {
			out = append(out, c)
		}
	}
	sortClasses(out)
	return out
}
