package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teachly/classtrack/internal/model"
	"github.com/teachly/classtrack/internal/schedule"
)

// MonthView is what the calendar collaborator renders: a fixed 42-cell grid,
// a human-readable label, and how many classes in the month are completed.
type MonthView struct {
	Label          string                  `json:"label"`
	Cells          []schedule.CalendarCell `json:"cells"`
	CompletedCount int                     `json:"completed_count"`
	Skipped        []schedule.SkippedClass `json:"skipped,omitempty"`
}

// EarningsView is the weekly earnings collaborator's payload.
type EarningsView struct {
	Weeks   []schedule.WeekBucket   `json:"weeks"`
	Skipped []schedule.SkippedClass `json:"skipped,omitempty"`
}

// ReportService derives the calendar and earnings views. Every view is a
// pure aggregation over one ListByFilter snapshot, so reads never block each
// other and both views reflect the same active filter.
type ReportService struct {
	classes  ClassStore
	students StudentStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewReportService(classes ClassStore, students StudentStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		classes:  classes,
		students: students,
		logger:   logger,
		now:      time.Now,
	}
}

// MonthView builds the 6x7 grid for year/month over the filtered snapshot.
func (s *ReportService) MonthView(ctx context.Context, year int, month time.Month, spec model.FilterSpec) (*MonthView, error) {
	classes, err := s.classes.ListByFilter(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	cells, skipped := schedule.MonthGrid(year, month, s.now().UTC(), classes)
	s.reportSkipped("calendar", skipped)

	completed := 0
	monthPrefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	for _, c := range classes {
		if c.Status == model.StatusCompleted && strings.HasPrefix(c.ClassDate, monthPrefix) {
			completed++
		}
	}

	return &MonthView{
		Label:          schedule.MonthLabel(year, month),
		Cells:          cells,
		CompletedCount: completed,
		Skipped:        skipped,
	}, nil
}

// WeeklyEarnings builds the earnings buckets over the filtered snapshot,
// pricing each completed class against its student's current rate.
func (s *ReportService) WeeklyEarnings(ctx context.Context, spec model.FilterSpec) (*EarningsView, error) {
	classes, err := s.classes.ListByFilter(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	ids := make([]int64, 0)
	seen := make(map[int64]bool)
	for _, c := range classes {
		if c.Status == model.StatusCompleted && !seen[c.StudentID] {
			seen[c.StudentID] = true
			ids = append(ids, c.StudentID)
		}
	}

	students, err := s.students.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get students: %w", err)
	}
	byID := make(map[int64]*model.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}

	weeks, skipped := schedule.WeeklyEarnings(classes, byID)
	s.reportSkipped("weekly earnings", skipped)

	return &EarningsView{Weeks: weeks, Skipped: skipped}, nil
}

func (s *ReportService) reportSkipped(view string, skipped []schedule.SkippedClass) {
	for _, sk := range skipped {
		s.logger.Warn("skipped malformed class record",
			zap.String("view", view),
			zap.Int64("class_id", sk.ClassID),
			zap.String("reason", sk.Reason),
		)
	}
}
