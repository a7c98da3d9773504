package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachly/classtrack/internal/model"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(model.StatusUpcoming, model.StatusCompleted))
	assert.True(t, CanTransition(model.StatusUpcoming, model.StatusCancelled))

	assert.False(t, CanTransition(model.StatusUpcoming, model.StatusUpcoming))
	assert.False(t, CanTransition(model.StatusCompleted, model.StatusCancelled))
	assert.False(t, CanTransition(model.StatusCompleted, model.StatusUpcoming))
	assert.False(t, CanTransition(model.StatusCancelled, model.StatusCompleted))
	assert.False(t, CanTransition(model.StatusCancelled, model.StatusUpcoming))
}

func TestTransition_SucceedsExactlyOnce(t *testing.T) {
	c := &model.ClassSchedule{ID: 1, Status: model.StatusUpcoming}

	require.NoError(t, Transition(c, model.StatusCompleted))
	assert.Equal(t, model.StatusCompleted, c.Status)

	err := Transition(c, model.StatusCancelled)
	var transition *model.TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, model.StatusCompleted, transition.From)
	assert.Equal(t, model.StatusCompleted, c.Status, "failed transition must not move the status")
}

func TestTransition_CancelIsTerminalToo(t *testing.T) {
	c := &model.ClassSchedule{ID: 2, Status: model.StatusUpcoming}

	require.NoError(t, Transition(c, model.StatusCancelled))
	assert.Error(t, Transition(c, model.StatusCompleted))
	assert.Equal(t, model.StatusCancelled, c.Status)
}
