package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teachly/classtrack/internal/model"
	"github.com/teachly/classtrack/internal/repository/base"
)

type ClassRepository struct {
	*base.Repository
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{Repository: base.NewRepository(pool)}
}

const classColumns = `id, student_id, class_date, start_time, duration_minutes, status, notes, created_at, updated_at`

func scanClass(row pgx.Row) (*model.ClassSchedule, error) {
	var c model.ClassSchedule
	err := row.Scan(
		&c.ID,
		&c.StudentID,
		&c.ClassDate,
		&c.StartTime,
		&c.DurationMinutes,
		&c.Status,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the class and fills in the generated id and timestamps.
func (r *ClassRepository) Create(ctx context.Context, c *model.ClassSchedule) error {
	query := `
		INSERT INTO class_schedules (student_id, class_date, start_time, duration_minutes, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		c.StudentID,
		c.ClassDate,
		c.StartTime,
		c.DurationMinutes,
		c.Status,
		c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*model.ClassSchedule, error) {
	query := `SELECT ` + classColumns + ` FROM class_schedules WHERE id = $1`

	c, err := scanClass(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNoRows(err) {
			return nil, fmt.Errorf("class %d: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("get class by id: %w", err)
	}
	return c, nil
}

// Update writes the full record. The caller decides what the status field
// holds; the repository persists exactly what it is given.
func (r *ClassRepository) Update(ctx context.Context, c *model.ClassSchedule) error {
	query := `
		UPDATE class_schedules
		SET student_id = $1, class_date = $2, start_time = $3, duration_minutes = $4, status = $5, notes = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		c.StudentID,
		c.ClassDate,
		c.StartTime,
		c.DurationMinutes,
		c.Status,
		c.Notes,
		c.ID,
	).Scan(&c.UpdatedAt)

	if err != nil {
		if base.IsNoRows(err) {
			return fmt.Errorf("class %d: %w", c.ID, model.ErrNotFound)
		}
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}

// Delete removes the record unconditionally; it disappears from every future
// aggregation.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM class_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("class %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// ListByDate returns every class on the given date, cancelled included; the
// conflict detector does its own status filtering.
func (r *ClassRepository) ListByDate(ctx context.Context, date string) ([]*model.ClassSchedule, error) {
	query := `SELECT ` + classColumns + ` FROM class_schedules WHERE class_date = $1 ORDER BY start_time, id`

	rows, err := r.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list classes by date: %w", err)
	}
	defer rows.Close()

	return collectClasses(rows)
}

// ListByFilter is the single read path behind every aggregation. The filter
// is pushed into SQL; dates are zero-padded ISO strings, so text comparison
// gives correct inclusive range semantics.
func (r *ClassRepository) ListByFilter(ctx context.Context, spec model.FilterSpec) ([]*model.ClassSchedule, error) {
	query := `SELECT ` + classColumns + ` FROM class_schedules WHERE 1=1`
	args := []any{}
	arg := 1

	if spec.StudentID != nil {
		query += fmt.Sprintf(" AND student_id = $%d", arg)
		args = append(args, *spec.StudentID)
		arg++
	}
	if spec.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", arg)
		args = append(args, spec.Status)
		arg++
	}
	if spec.DateFrom != "" {
		query += fmt.Sprintf(" AND class_date >= $%d", arg)
		args = append(args, spec.DateFrom)
		arg++
	}
	if spec.DateTo != "" {
		query += fmt.Sprintf(" AND class_date <= $%d", arg)
		args = append(args, spec.DateTo)
		arg++
	}

	query += " ORDER BY class_date, start_time, id"

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list classes by filter: %w", err)
	}
	defer rows.Close()

	return collectClasses(rows)
}

func collectClasses(rows pgx.Rows) ([]*model.ClassSchedule, error) {
	var classes []*model.ClassSchedule
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
