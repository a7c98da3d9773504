package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/teachly/classtrack/internal/model"
)

// StudentService manages the student registry. The scheduling engine only
// ever reads it; mutation exists for the owning product's roster screens.
type StudentService struct {
	students StudentStore
	logger   *zap.Logger
}

func NewStudentService(students StudentStore, logger *zap.Logger) *StudentService {
	return &StudentService{students: students, logger: logger}
}

// StudentInput carries a student payload. Price and duration travel
// together; setting only half of the pair leaves the student unbillable.
type StudentInput struct {
	Name            string
	PriceAmount     *decimal.Decimal
	DurationMinutes *int
}

func (in StudentInput) validate() error {
	if in.Name == "" {
		return &model.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.PriceAmount != nil && in.PriceAmount.IsNegative() {
		return &model.ValidationError{Field: "price_amount", Reason: "must not be negative"}
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return &model.ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	}
	return nil
}

func (s *StudentService) Create(ctx context.Context, in StudentInput) (*model.Student, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	student := &model.Student{
		Name:            in.Name,
		PriceAmount:     in.PriceAmount,
		DurationMinutes: in.DurationMinutes,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student created", zap.Int64("student_id", student.ID), zap.String("name", student.Name))
	return student, nil
}

func (s *StudentService) Get(ctx context.Context, id int64) (*model.Student, error) {
	return s.students.GetByID(ctx, id)
}

func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	return s.students.List(ctx)
}

// Update rewrites name and rate. Costs are always derived from the current
// rate, so this re-prices the student's history on the next aggregation.
func (s *StudentService) Update(ctx context.Context, id int64, in StudentInput) (*model.Student, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	student.Name = in.Name
	student.PriceAmount = in.PriceAmount
	student.DurationMinutes = in.DurationMinutes

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student updated", zap.Int64("student_id", student.ID))
	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}
