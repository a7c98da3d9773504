package schedule

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/teachly/classtrack/internal/model"
)

// WeekBucket is one earnings-bearing week: an inclusive WeekAnchor-aligned
// 7-day span, the completed classes inside it in chronological order, and
// their summed cost. Buckets are derived fresh per call, never stored.
type WeekBucket struct {
	WeekStart     string                 `json:"week_start"`
	WeekEnd       string                 `json:"week_end"`
	Classes       []*model.ClassSchedule `json:"classes"`
	TotalEarnings decimal.Decimal        `json:"total_earnings"`
}

// WeeklyEarnings partitions completed classes into calendar-aligned weeks
// and totals their cost against each owning student's current rate. Weeks
// with no completed class are omitted, not zero-filled. Buckets come back
// sorted ascending by week start. Records whose stored date or start time no
// longer parses are skipped and reported.
func WeeklyEarnings(classes []*model.ClassSchedule, students map[int64]*model.Student) ([]WeekBucket, []SkippedClass) {
	buckets := make(map[string]*WeekBucket)
	var skipped []SkippedClass

	for _, c := range classes {
		if c.Status != model.StatusCompleted {
			continue
		}
		day, err := ParseDate(c.ClassDate)
		if err != nil {
			skipped = append(skipped, SkippedClass{ClassID: c.ID, Reason: fmt.Sprintf("malformed class_date %q", c.ClassDate)})
			continue
		}
		if _, err := MinuteOfDay(c.StartTime); err != nil {
			skipped = append(skipped, SkippedClass{ClassID: c.ID, Reason: fmt.Sprintf("malformed start_time %q", c.StartTime)})
			continue
		}

		weekStart := WeekStart(day)
		key := weekStart.Format(model.DateLayout)
		b := buckets[key]
		if b == nil {
			b = &WeekBucket{
				WeekStart:     key,
				WeekEnd:       weekStart.AddDate(0, 0, 6).Format(model.DateLayout),
				TotalEarnings: decimal.Zero,
			}
			buckets[key] = b
		}
		b.Classes = append(b.Classes, c)
		b.TotalEarnings = b.TotalEarnings.Add(Cost(c, students[c.StudentID]))
	}

	out := make([]WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		sortClasses(b.Classes)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out, skipped
}

// ClampWeekIndex keeps the caller-maintained week cursor inside [0, n-1].
// Moves past either end are a no-op rather than a wraparound; an empty
// bucket list pins the cursor at 0.
func ClampWeekIndex(idx, n int) int {
	if n <= 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
