package service

import (
	"context"

	"github.com/teachly/classtrack/internal/model"
)

// ClassStore is the schedule repository the services write through. The
// postgres implementation lives in internal/repository, the test double in
// internal/repository/memory.
type ClassStore interface {
	Create(ctx context.Context, c *model.ClassSchedule) error
	Update(ctx context.Context, c *model.ClassSchedule) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.ClassSchedule, error)
	ListByDate(ctx context.Context, date string) ([]*model.ClassSchedule, error)
	ListByFilter(ctx context.Context, spec model.FilterSpec) ([]*model.ClassSchedule, error)
}

// StudentStore is the student registry. The engine reads rates from it; the
// CRUD side exists for the owning product.
type StudentStore interface {
	Create(ctx context.Context, s *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*model.Student, error)
	List(ctx context.Context) ([]*model.Student, error)
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int64) error
}
