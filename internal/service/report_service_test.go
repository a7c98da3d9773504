package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teachly/classtrack/internal/model"
	"github.com/teachly/classtrack/internal/repository/memory"
	"github.com/teachly/classtrack/internal/schedule"
)

func newReportFixture(t *testing.T) (*ReportService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewReportService(store.Classes(), store.Students(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func seedStudent(t *testing.T, store *memory.Store, name, price string, minutes int) *model.Student {
	t.Helper()
	p := decimal.RequireFromString(price)
	s := &model.Student{Name: name, PriceAmount: &p, DurationMinutes: &minutes}
	require.NoError(t, store.Students().Create(context.Background(), s))
	return s
}

func seedClass(t *testing.T, store *memory.Store, studentID int64, date, start string, minutes int, status model.ClassStatus) *model.ClassSchedule {
	t.Helper()
	c := &model.ClassSchedule{
		StudentID:       studentID,
		ClassDate:       date,
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          status,
	}
	require.NoError(t, store.Classes().Create(context.Background(), c))
	return c
}

func TestReportService_MonthView(t *testing.T) {
	svc, store := newReportFixture(t)
	ctx := context.Background()

	dana := seedStudent(t, store, "Dana", "50", 60)
	omar := seedStudent(t, store, "Omar", "30", 50)

	seedClass(t, store, dana.ID, "2024-05-01", "10:00", 50, model.StatusCompleted)
	seedClass(t, store, dana.ID, "2024-05-15", "10:00", 50, model.StatusUpcoming)
	seedClass(t, store, omar.ID, "2024-05-15", "12:00", 50, model.StatusCompleted)
	seedClass(t, store, omar.ID, "2024-04-20", "12:00", 50, model.StatusCompleted) // outside May

	view, err := svc.MonthView(ctx, 2024, time.May, model.FilterSpec{})
	require.NoError(t, err)

	assert.Equal(t, "May 2024", view.Label)
	assert.Len(t, view.Cells, schedule.GridCells)
	assert.Equal(t, 2, view.CompletedCount, "only completed classes inside May count")
	assert.Empty(t, view.Skipped)

	var today *schedule.CalendarCell
	for i := range view.Cells {
		if view.Cells[i].IsToday {
			today = &view.Cells[i]
		}
	}
	require.NotNil(t, today)
	assert.Equal(t, "2024-05-15", today.Date)
	assert.Len(t, today.Classes, 2)
}

func TestReportService_MonthViewHonorsFilter(t *testing.T) {
	svc, store := newReportFixture(t)
	ctx := context.Background()

	dana := seedStudent(t, store, "Dana", "50", 60)
	omar := seedStudent(t, store, "Omar", "30", 50)
	seedClass(t, store, dana.ID, "2024-05-01", "10:00", 50, model.StatusCompleted)
	seedClass(t, store, omar.ID, "2024-05-01", "12:00", 50, model.StatusCompleted)

	view, err := svc.MonthView(ctx, 2024, time.May, model.FilterSpec{StudentID: &dana.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, view.CompletedCount)
	for _, cell := range view.Cells {
		for _, c := range cell.Classes {
			assert.Equal(t, dana.ID, c.StudentID)
		}
	}
}

func TestReportService_WeeklyEarnings(t *testing.T) {
	svc, store := newReportFixture(t)
	ctx := context.Background()

	dana := seedStudent(t, store, "Dana", "50", 60)

	seedClass(t, store, dana.ID, "2024-05-01", "10:00", 25, model.StatusCompleted)
	seedClass(t, store, dana.ID, "2024-05-02", "10:00", 60, model.StatusCompleted)
	seedClass(t, store, dana.ID, "2024-05-08", "10:00", 60, model.StatusCompleted)
	seedClass(t, store, dana.ID, "2024-05-09", "10:00", 60, model.StatusUpcoming)

	view, err := svc.WeeklyEarnings(ctx, model.FilterSpec{})
	require.NoError(t, err)
	require.Len(t, view.Weeks, 2)

	assert.Equal(t, "2024-04-28", view.Weeks[0].WeekStart)
	assert.True(t, view.Weeks[0].TotalEarnings.Equal(decimal.RequireFromString("70.83")),
		"got %s", view.Weeks[0].TotalEarnings)
	assert.True(t, view.Weeks[1].TotalEarnings.Equal(decimal.RequireFromString("50")))
}

func TestReportService_FilteredEarningsMatchManualSum(t *testing.T) {
	svc, store := newReportFixture(t)
	ctx := context.Background()

	dana := seedStudent(t, store, "Dana", "50", 60)
	omar := seedStudent(t, store, "Omar", "30", 50)

	inRange := []*model.ClassSchedule{
		seedClass(t, store, dana.ID, "2024-05-01", "10:00", 25, model.StatusCompleted),
		seedClass(t, store, omar.ID, "2024-05-10", "10:00", 50, model.StatusCompleted),
		seedClass(t, store, dana.ID, "2024-05-31", "10:00", 60, model.StatusCompleted),
	}
	// Outside the filter: wrong status or wrong dates.
	seedClass(t, store, dana.ID, "2024-05-12", "10:00", 50, model.StatusUpcoming)
	seedClass(t, store, omar.ID, "2024-04-30", "10:00", 50, model.StatusCompleted)
	seedClass(t, store, omar.ID, "2024-06-01", "10:00", 50, model.StatusCompleted)

	spec := model.FilterSpec{
		Status:   model.StatusCompleted,
		DateFrom: "2024-05-01",
		DateTo:   "2024-05-31",
	}
	view, err := svc.WeeklyEarnings(ctx, spec)
	require.NoError(t, err)

	students := map[int64]*model.Student{dana.ID: dana, omar.ID: omar}
	manual := decimal.Zero
	for _, c := range inRange {
		manual = manual.Add(schedule.Cost(c, students[c.StudentID]))
	}

	total := decimal.Zero
	classCount := 0
	for _, w := range view.Weeks {
		require.NotEmpty(t, w.Classes, "no zero-filled weeks")
		total = total.Add(w.TotalEarnings)
		classCount += len(w.Classes)
	}
	assert.Equal(t, len(inRange), classCount)
	assert.True(t, total.Equal(manual), "total %s, manual %s", total, manual)
}

func TestReportService_SkippedRecordsDoNotAbortViews(t *testing.T) {
	svc, store := newReportFixture(t)
	ctx := context.Background()

	dana := seedStudent(t, store, "Dana", "50", 60)
	seedClass(t, store, dana.ID, "2024-05-01", "10:00", 50, model.StatusCompleted)
	seedClass(t, store, dana.ID, "bogus", "10:00", 50, model.StatusCompleted)

	month, err := svc.MonthView(ctx, 2024, time.May, model.FilterSpec{})
	require.NoError(t, err)
	assert.Len(t, month.Skipped, 1)

	earnings, err := svc.WeeklyEarnings(ctx, model.FilterSpec{})
	require.NoError(t, err)
	assert.Len(t, earnings.Skipped, 1)
	require.Len(t, earnings.Weeks, 1)
}
