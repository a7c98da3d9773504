package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/teachly/classtrack/internal/model"
)

// Cost returns the billable amount for one class, derived from the student's
// current rate: price_amount / reference duration, times the class's actual
// duration, rounded half-up to the cent. Students without a usable rate (or
// a missing student record) cost zero.
//
// The rate is read live, not frozen at booking time, so editing a student's
// price re-prices their history on the next aggregation.
func Cost(c *model.ClassSchedule, s *model.Student) decimal.Decimal {
	if !s.HasRate() {
		return decimal.Zero
	}
	minutes := decimal.NewFromInt(int64(c.DurationMinutes))
	reference := decimal.NewFromInt(int64(*s.DurationMinutes))
	return s.PriceAmount.Mul(minutes).Div(reference).Round(2)
}
