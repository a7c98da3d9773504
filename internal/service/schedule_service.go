package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/teachly/classtrack/internal/model"
	"github.com/teachly/classtrack/internal/schedule"
)

// ScheduleService owns every mutation of the class book: create, edit,
// delete, and the two status paths. Each mutation validates first, then runs
// the conflict check and the write inside a per-date critical section.
type ScheduleService struct {
	classes  ClassStore
	students StudentStore
	locks    *dateLocks
	logger   *zap.Logger
}

func NewScheduleService(classes ClassStore, students StudentStore, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		classes:  classes,
		students: students,
		locks:    newDateLocks(),
		logger:   logger,
	}
}

// ClassInput is the full payload the create/edit form submits. Status is
// deliberately absent: new classes start upcoming, and edits never touch
// status (see MarkStatus and ForceSetStatus).
type ClassInput struct {
	StudentID       int64
	ClassDate       string // YYYY-MM-DD
	StartTime       string // HH:MM
	DurationMinutes int
	Notes           string
}

func (in ClassInput) validate() error {
	if in.DurationMinutes <= 0 {
		return &model.ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	}
	if _, err := schedule.ParseDate(in.ClassDate); err != nil {
		return err
	}
	if _, err := schedule.MinuteOfDay(in.StartTime); err != nil {
		return err
	}
	return nil
}

// Create books a new class. It fails with a ConflictError, without writing
// anything, if the slot overlaps an existing non-cancelled class.
func (s *ScheduleService) Create(ctx context.Context, in ClassInput) (*model.ClassSchedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.students.GetByID(ctx, in.StudentID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(in.ClassDate)
	defer unlock()

	existing, err := s.classes.ListByDate(ctx, in.ClassDate)
	if err != nil {
		return nil, fmt.Errorf("list classes on %s: %w", in.ClassDate, err)
	}

	candidate := &model.ClassSchedule{
		StudentID:       in.StudentID,
		ClassDate:       in.ClassDate,
		StartTime:       in.StartTime,
		DurationMinutes: in.DurationMinutes,
		Status:          model.StatusUpcoming,
		Notes:           in.Notes,
	}
	if err := schedule.CheckConflict(candidate, existing); err != nil {
		return nil, err
	}

	if err := s.classes.Create(ctx, candidate); err != nil {
		return nil, err
	}

	s.logger.Info("class scheduled",
		zap.Int64("class_id", candidate.ID),
		zap.Int64("student_id", candidate.StudentID),
		zap.String("class_date", candidate.ClassDate),
		zap.String("start_time", candidate.StartTime),
		zap.Int("duration_minutes", candidate.DurationMinutes),
	)
	return candidate, nil
}

// lockClass acquires the per-date critical section for class id and returns
// the record as read inside it. The date has to be known before locking, so
// the fetch is retried until the record's date matches the lock held; a
// mutation squeezing into that window just makes us lock its new day
// instead. extra dates are locked alongside (an edit locks its target day
// too).
func (s *ScheduleService) lockClass(ctx context.Context, id int64, extra ...string) (*model.ClassSchedule, func(), error) {
	for {
		current, err := s.classes.GetByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		unlock := s.locks.lock(append([]string{current.ClassDate}, extra...)...)

		fresh, err := s.classes.GetByID(ctx, id)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if fresh.ClassDate == current.ClassDate {
			return fresh, unlock, nil
		}
		unlock()
	}
}

// Update replaces the schedulable fields of an existing class. Status stays
// exactly as persisted. Moving a class between dates locks both days.
func (s *ScheduleService) Update(ctx context.Context, id int64, in ClassInput) (*model.ClassSchedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.students.GetByID(ctx, in.StudentID); err != nil {
		return nil, err
	}

	current, unlock, err := s.lockClass(ctx, id, in.ClassDate)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.classes.ListByDate(ctx, in.ClassDate)
	if err != nil {
		return nil, fmt.Errorf("list classes on %s: %w", in.ClassDate, err)
	}

	updated := *current
	updated.StudentID = in.StudentID
	updated.ClassDate = in.ClassDate
	updated.StartTime = in.StartTime
	updated.DurationMinutes = in.DurationMinutes
	updated.Notes = in.Notes

	// The candidate excludes itself from the pool by id.
	if err := schedule.CheckConflict(&updated, existing); err != nil {
		return nil, err
	}

	if err := s.classes.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.logger.Info("class updated",
		zap.Int64("class_id", updated.ID),
		zap.String("class_date", updated.ClassDate),
		zap.String("start_time", updated.StartTime),
	)
	return &updated, nil
}

// Delete removes the class unconditionally.
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("class deleted", zap.Int64("class_id", id))
	return nil
}

// MarkStatus is the one-way transition action: upcoming→completed or
// upcoming→cancelled. A class already in a terminal state fails with a
// TransitionError.
func (s *ScheduleService) MarkStatus(ctx context.Context, id int64, to model.ClassStatus) (*model.ClassSchedule, error) {
	if !to.Valid() {
		return nil, &model.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", to)}
	}

	current, unlock, err := s.lockClass(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := schedule.Transition(current, to); err != nil {
		return nil, err
	}
	if err := s.classes.Update(ctx, current); err != nil {
		return nil, err
	}

	s.logger.Info("class status marked",
		zap.Int64("class_id", current.ID),
		zap.String("status", string(current.Status)),
	)
	return current, nil
}

// ForceSetStatus is the administrative override: it sets any status,
// including reverting a terminal one, bypassing the status machine. A class
// leaving cancelled re-occupies its slot, so the conflict check runs again
// before the write.
func (s *ScheduleService) ForceSetStatus(ctx context.Context, id int64, to model.ClassStatus) (*model.ClassSchedule, error) {
	if !to.Valid() {
		return nil, &model.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", to)}
	}

	current, unlock, err := s.lockClass(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if current.Status == model.StatusCancelled && to != model.StatusCancelled {
		existing, err := s.classes.ListByDate(ctx, current.ClassDate)
		if err != nil {
			return nil, fmt.Errorf("list classes on %s: %w", current.ClassDate, err)
		}
		revived := *current
		revived.Status = to
		if err := schedule.CheckConflict(&revived, existing); err != nil {
			return nil, err
		}
	}

	from := current.Status
	current.Status = to
	if err := s.classes.Update(ctx, current); err != nil {
		return nil, err
	}

	s.logger.Warn("class status forced",
		zap.Int64("class_id", current.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return current, nil
}

func (s *ScheduleService) Get(ctx context.Context, id int64) (*model.ClassSchedule, error) {
	return s.classes.GetByID(ctx, id)
}

// List is the filtered read path the collaborators use directly.
func (s *ScheduleService) List(ctx context.Context, spec model.FilterSpec) ([]*model.ClassSchedule, error) {
	return s.classes.ListByFilter(ctx, spec)
}
