package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teachly/classtrack/internal/model"
)

func mixedClasses() []*model.ClassSchedule {
	mk := func(id, studentID int64, date string, status model.ClassStatus) *model.ClassSchedule {
		return &model.ClassSchedule{ID: id, StudentID: studentID, ClassDate: date, StartTime: "10:00", DurationMinutes: 50, Status: status}
	}
	return []*model.ClassSchedule{
		mk(1, 1, "2024-04-30", model.StatusCompleted),
		mk(2, 1, "2024-05-01", model.StatusCompleted),
		mk(3, 2, "2024-05-10", model.StatusCompleted),
		mk(4, 1, "2024-05-15", model.StatusUpcoming),
		mk(5, 2, "2024-05-20", model.StatusCancelled),
		mk(6, 1, "2024-05-31", model.StatusCompleted),
		mk(7, 2, "2024-06-01", model.StatusCompleted),
	}
}

func TestApplyFilter_EmptySpecPassesEverything(t *testing.T) {
	out := ApplyFilter(mixedClasses(), model.FilterSpec{})
	assert.Len(t, out, 7)
}

func TestApplyFilter_CompletedWithinMay(t *testing.T) {
	spec := model.FilterSpec{
		Status:   model.StatusCompleted,
		DateFrom: "2024-05-01",
		DateTo:   "2024-05-31",
	}

	out := ApplyFilter(mixedClasses(), spec)

	ids := make([]int64, 0, len(out))
	for _, c := range out {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int64{2, 3, 6}, ids, "bounds are inclusive, status exact")
}

func TestApplyFilter_ByStudent(t *testing.T) {
	studentID := int64(2)
	out := ApplyFilter(mixedClasses(), model.FilterSpec{StudentID: &studentID})

	assert.Len(t, out, 3)
	for _, c := range out {
		assert.Equal(t, studentID, c.StudentID)
	}
}

func TestApplyFilter_OpenEndedRange(t *testing.T) {
	out := ApplyFilter(mixedClasses(), model.FilterSpec{DateFrom: "2024-05-20"})
	assert.Len(t, out, 3)

	out = ApplyFilter(mixedClasses(), model.FilterSpec{DateTo: "2024-04-30"})
	assert.Len(t, out, 1)
}

func TestApplyFilter_ReturnsChronologicalOrder(t *testing.T) {
	classes := []*model.ClassSchedule{
		{ID: 1, ClassDate: "2024-05-02", StartTime: "09:00", DurationMinutes: 50},
		{ID: 2, ClassDate: "2024-05-01", StartTime: "15:00", DurationMinutes: 50},
		{ID: 3, ClassDate: "2024-05-01", StartTime: "08:00", DurationMinutes: 50},
	}

	out := ApplyFilter(classes, model.FilterSpec{})

	assert.Equal(t, int64(3), out[0].ID)
	assert.Equal(t, int64(2), out[1].ID)
	assert.Equal(t, int64(1), out[2].ID)
}
