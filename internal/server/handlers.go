package server

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/teachly/classtrack/internal/model"
	"github.com/teachly/classtrack/internal/service"
)

type classRequest struct {
	StudentID       int64  `json:"student_id" validate:"required"`
	ClassDate       string `json:"class_date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1"`
	Notes           string `json:"notes"`
}

func (r classRequest) toInput() service.ClassInput {
	return service.ClassInput{
		StudentID:       r.StudentID,
		ClassDate:       r.ClassDate,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}
}

type markStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}

type forceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=upcoming completed cancelled"`
}

type studentRequest struct {
	Name            string           `json:"name" validate:"required"`
	PriceAmount     *decimal.Decimal `json:"price_amount"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,min=1"`
}

func (r studentRequest) toInput() service.StudentInput {
	return service.StudentInput{
		Name:            r.Name,
		PriceAmount:     r.PriceAmount,
		DurationMinutes: r.DurationMinutes,
	}
}

func (s *Server) handleCreateStudent(c *fiber.Ctx) error {
	var req studentRequest
	if err := s.parseBody(c, &req); err != nil {
		return s.writeError(c, err)
	}

	student, err := s.students.Create(c.Context(), req.toInput())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(student)
}

func (s *Server) handleListStudents(c *fiber.Ctx) error {
	students, err := s.students.List(c.Context())
	if err != nil {
		return s.writeError(c, err)
	}
	if students == nil {
		students = []*model.Student{}
	}
	return c.JSON(students)
}

func (s *Server) handleGetStudent(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	student, err := s.students.Get(c.Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(student)
}

func (s *Server) handleUpdateStudent(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req studentRequest
	if err := s.parseBody(c, &req); err != nil {
		return s.writeError(c, err)
	}

	student, err := s.students.Update(c.Context(), id, req.toInput())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(student)
}

func (s *Server) handleDeleteStudent(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	if err := s.students.Delete(c.Context(), id); err != nil {
		return s.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleCreateClass(c *fiber.Ctx) error {
	var req classRequest
	if err := s.parseBody(c, &req); err != nil {
		return s.writeError(c, err)
	}

	class, err := s.schedule.Create(c.Context(), req.toInput())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(class)
}

func (s *Server) handleListClasses(c *fiber.Ctx) error {
	spec, err := filterFromQuery(c)
	if err != nil {
		return s.writeError(c, err)
	}
	classes, err := s.schedule.List(c.Context(), spec)
	if err != nil {
		return s.writeError(c, err)
	}
	if classes == nil {
		classes = []*model.ClassSchedule{}
	}
	return c.JSON(classes)
}

func (s *Server) handleGetClass(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	class, err := s.schedule.Get(c.Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(class)
}

func (s *Server) handleUpdateClass(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req classRequest
	if err := s.parseBody(c, &req); err != nil {
		return s.writeError(c, err)
	}

	class, err := s.schedule.Update(c.Context(), id, req.toInput())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(class)
}

func (s *Server) handleDeleteClass(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	if err := s.schedule.Delete(c.Context(), id); err != nil {
		return s.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleMarkStatus(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req markStatusRequest
	if err := s.parseBody(c, &req); err != nil {
		return s.writeError(c, err)
	}

	class, err := s.schedule.MarkStatus(c.Context(), id, model.ClassStatus(req.Status))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(class)
}

func (s *Server) handleForceStatus(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req forceStatusRequest
	if err := s.parseBody(c, &req); err != nil {
		return s.writeError(c, err)
	}

	class, err := s.schedule.ForceSetStatus(c.Context(), id, model.ClassStatus(req.Status))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(class)
}

func (s *Server) handleMonthView(c *fiber.Ctx) error {
	month, err := time.Parse("2006-01", c.Params("month"))
	if err != nil {
		return s.writeError(c, &model.ValidationError{Field: "month", Reason: "must be YYYY-MM"})
	}
	spec, err := filterFromQuery(c)
	if err != nil {
		return s.writeError(c, err)
	}

	view, err := s.reports.MonthView(c.Context(), month.Year(), month.Month(), spec)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(view)
}

func (s *Server) handleWeeklyEarnings(c *fiber.Ctx) error {
	spec, err := filterFromQuery(c)
	if err != nil {
		return s.writeError(c, err)
	}

	view, err := s.reports.WeeklyEarnings(c.Context(), spec)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(view)
}

func (s *Server) parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &model.ValidationError{Field: "body", Reason: err.Error()}
	}
	if err := s.validate.Struct(out); err != nil {
		return &model.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

func idParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &model.ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}

// filterFromQuery builds a FilterSpec from the query string. "all" and the
// empty string both mean "no constraint".
func filterFromQuery(c *fiber.Ctx) (model.FilterSpec, error) {
	var spec model.FilterSpec

	if v := c.Query("student_id"); v != "" && v != model.FilterAll {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return spec, &model.ValidationError{Field: "student_id", Reason: "must be an integer or \"all\""}
		}
		spec.StudentID = &id
	}
	if v := c.Query("status"); v != "" && v != model.FilterAll {
		status := model.ClassStatus(v)
		if !status.Valid() {
			return spec, &model.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", v)}
		}
		spec.Status = status
	}
	if v := c.Query("date_from"); v != "" {
		if _, err := time.Parse(model.DateLayout, v); err != nil {
			return spec, &model.ValidationError{Field: "date_from", Reason: "must be YYYY-MM-DD"}
		}
		spec.DateFrom = v
	}
	if v := c.Query("date_to"); v != "" {
		if _, err := time.Parse(model.DateLayout, v); err != nil {
			return spec, &model.ValidationError{Field: "date_to", Reason: "must be YYYY-MM-DD"}
		}
		spec.DateTo = v
	}
	return spec, nil
}

func (s *Server) writeError(c *fiber.Ctx, err error) error {
	var (
		validationErr *model.ValidationError
		conflictErr   *model.ConflictError
		transitionErr *model.TransitionError
	)

	switch {
	case errors.Is(err, model.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":         conflictErr.Error(),
			"conflict_with": conflictErr.With,
		})
	case errors.As(err, &transitionErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": transitionErr.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
