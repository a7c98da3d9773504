package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/teachly/classtrack/internal/model"
	"github.com/teachly/classtrack/internal/repository/base"
)

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

// price_amount is numeric in the database; selecting it as text keeps the
// decimal exact on the way out.
const studentColumns = `id, name, price_amount::text, duration_minutes, created_at`

func scanStudent(row pgx.Row) (*model.Student, error) {
	var (
		s     model.Student
		price *string
	)
	if err := row.Scan(&s.ID, &s.Name, &price, &s.DurationMinutes, &s.CreatedAt); err != nil {
		return nil, err
	}
	if price != nil {
		d, err := decimal.NewFromString(*price)
		if err != nil {
			return nil, fmt.Errorf("parse price_amount: %w", err)
		}
		s.PriceAmount = &d
	}
	return &s, nil
}

func priceArg(s *model.Student) *string {
	if s.PriceAmount == nil {
		return nil
	}
	v := s.PriceAmount.String()
	return &v
}

// Create inserts the student and fills in the generated id and created_at.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	query := `
		INSERT INTO students (name, price_amount, duration_minutes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, s.Name, priceArg(s), s.DurationMinutes).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	s, err := scanStudent(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNoRows(err) {
			return nil, fmt.Errorf("student %d: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}
	return s, nil
}

// GetByIDs fetches the given students in one round trip. Missing ids are
// simply absent from the result.
func (r *StudentRepository) GetByIDs(ctx context.Context, ids []int64) ([]*model.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ANY($1) ORDER BY name, id`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get students by ids: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY name, id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

func collectStudents(rows pgx.Rows) ([]*model.Student, error) {
	var students []*model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	query := `
		UPDATE students
		SET name = $1, price_amount = $2, duration_minutes = $3
		WHERE id = $4
	`

	affected, err := r.ExecAffected(ctx, query, s.Name, priceArg(s), s.DurationMinutes, s.ID)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("student %d: %w", s.ID, model.ErrNotFound)
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("student %d: %w", id, model.ErrNotFound)
	}
	return nil
}
