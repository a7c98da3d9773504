package schedule

import "github.com/teachly/classtrack/internal/model"

// CanTransition reports whether the mark-status action permits from→to.
// Only an upcoming class may move, and only into a terminal state.
func CanTransition(from, to model.ClassStatus) bool {
	return from == model.StatusUpcoming && to.Terminal()
}

// Transition applies the status machine to c. A forbidden move returns a
// TransitionError and leaves c untouched.
func Transition(c *model.ClassSchedule, to model.ClassStatus) error {
	if !CanTransition(c.Status, to) {
		return &model.TransitionError{From: c.Status, To: to}
	}
	c.Status = to
	return nil
}
