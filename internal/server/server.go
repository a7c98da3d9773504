package server

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teachly/classtrack/internal/service"
)

// Server is the HTTP boundary the calendar, form, and status collaborators
// talk to. It translates payloads and query filters, delegates to the
// services, and maps domain errors onto status codes.
type Server struct {
	app      *fiber.App
	schedule *service.ScheduleService
	reports  *service.ReportService
	students *service.StudentService
	validate *validator.Validate
	logger   *zap.Logger
}

func New(
	scheduleSvc *service.ScheduleService,
	reportSvc *service.ReportService,
	studentSvc *service.StudentService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		schedule: scheduleSvc,
		reports:  reportSvc,
		students: studentSvc,
		validate: validator.New(),
		logger:   logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "classtrack",
		DisableStartupMessage: true,
	})
	app.Use(s.requestLogger())
	s.registerRoutes(app)

	s.app = app
	return s
}

func (s *Server) registerRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/students", s.handleListStudents)
	api.Post("/students", s.handleCreateStudent)
	api.Get("/students/:id", s.handleGetStudent)
	api.Put("/students/:id", s.handleUpdateStudent)
	api.Delete("/students/:id", s.handleDeleteStudent)

	api.Get("/classes", s.handleListClasses)
	api.Post("/classes", s.handleCreateClass)
	api.Get("/classes/:id", s.handleGetClass)
	api.Put("/classes/:id", s.handleUpdateClass)
	api.Delete("/classes/:id", s.handleDeleteClass)
	api.Post("/classes/:id/status", s.handleMarkStatus)
	api.Post("/classes/:id/force-status", s.handleForceStatus)

	api.Get("/calendar/:month", s.handleMonthView)
	api.Get("/earnings/weekly", s.handleWeeklyEarnings)
}

// Listen starts serving on addr. Blocks until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()
		c.Locals("request_id", requestID)

		start := time.Now()
		err := c.Next()

		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}
