package schedule

import "github.com/teachly/classtrack/internal/model"

// CheckConflict validates that candidate does not overlap any other
// non-cancelled class on the same date. Intervals are half-open, so
// back-to-back classes are allowed. The first overlap found is returned as a
// ConflictError carrying the occupying record; existence is enough, the
// detector does not enumerate all conflicts.
//
// On edit the candidate carries its persisted id and is excluded from the
// pool by id. Existing records with an unparseable start time cannot occupy
// an interval and are ignored here; aggregations report them instead.
func CheckConflict(candidate *model.ClassSchedule, existing []*model.ClassSchedule) error {
	start, err := MinuteOfDay(candidate.StartTime)
	if err != nil {
		return err
	}
	if candidate.DurationMinutes <= 0 {
		return &model.ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	}
	end := start + candidate.DurationMinutes

	for _, other := range existing {
		if candidate.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if other.Status == model.StatusCancelled || other.ClassDate != candidate.ClassDate {
			continue
		}
		otherStart, err := MinuteOfDay(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd := otherStart + other.DurationMinutes
		if start < otherEnd && otherStart < end {
			return &model.ConflictError{With: other}
		}
	}
	return nil
}
