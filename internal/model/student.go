package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student is a registry entry the engine reads billing data from. A student
// without a rate pair is schedulable but bills nothing.
type Student struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	PriceAmount     *decimal.Decimal `json:"price_amount"`
	DurationMinutes *int             `json:"duration_minutes"`
	CreatedAt       time.Time        `json:"created_at"`
}

// HasRate reports whether the student carries a usable billing rate. A zero
// reference duration is treated as no rate at all.
func (s *Student) HasRate() bool {
	return s != nil && s.PriceAmount != nil && s.DurationMinutes != nil && *s.DurationMinutes > 0
}
