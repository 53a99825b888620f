// Package api wires the fiber application: middleware, the error handler and
// every JSON route.
package api

import (
	"log/slog"
	"strings"

	"budget-backend/internal/apperr"
	"budget-backend/internal/audit"
	"budget-backend/internal/auth"
	"budget-backend/internal/budget"
	"budget-backend/internal/config"
	"budget-backend/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

type Options struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      *gorm.DB
	Service *budget.Service
	Audit   *audit.Log

	// Views renders the web pages; nil serves the JSON API only.
	Views       fiber.Views
	ViewsLayout string
}

// NewApp builds the fiber app with middleware and the JSON API mounted.
func NewApp(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "budget-backend",
		DisableStartupMessage: true,
		Views:                 opts.Views,
		ViewsLayout:           opts.ViewsLayout,
		ErrorHandler:          ErrorHandler(opts.Logger, opts.Views != nil),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logging.Middleware(opts.Logger))

	// CORS origins arrive comma separated
	origins := strings.Split(opts.Config.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	RegisterRoutes(app, opts)
	return app
}

// RegisterRoutes mounts the JSON API. Writes pass through the bearer-token
// guard, which is a no-op without a configured secret.
func RegisterRoutes(app *fiber.App, opts Options) {
	svc := opts.Service
	guard := auth.Guard(opts.Config.JWTSecret)

	app.Get("/health", HealthHandler(opts.DB))
	app.Get("/auth/me", auth.MeHandler(opts.Config.JWTSecret))

	// Events
	app.Get("/events", ListEventsHandler(svc))
	app.Post("/events", guard, CreateEventHandler(svc))
	app.Put("/events/:id", guard, UpdateEventHandler(svc))
	app.Delete("/events/:id", guard, DeleteEventHandler(svc))

	// Expense categories
	app.Get("/expense-categories", ListExpenseCategoriesHandler(svc))
	app.Post("/expense-categories", guard, CreateExpenseCategoryHandler(svc))
	app.Put("/expense-categories/:id", guard, UpdateExpenseCategoryHandler(svc))
	app.Delete("/expense-categories/:id", guard, DeleteExpenseCategoryHandler(svc))

	// Budget items
	app.Get("/budget-items", ListBudgetItemsHandler(svc))
	app.Post("/budget-items", guard, CreateBudgetItemHandler(svc))
	app.Get("/budget-items/:id", GetBudgetItemHandler(svc))
	app.Put("/budget-items/:id", guard, UpdateBudgetItemHandler(svc))
	app.Delete("/budget-items/:id", guard, DeleteBudgetItemHandler(svc))

	// Monthly amounts and finalization
	app.Get("/budget-items/:id/budgets", ListBudgetMonthsHandler(svc))
	app.Put("/budget-items/:id/budgets", guard, UpsertBudgetMonthsHandler(svc))
	app.Get("/budget-items/:id/actuals", ListActualMonthsHandler(svc))
	app.Put("/budget-items/:id/actuals", guard, UpsertActualMonthsHandler(svc))
	app.Post("/budget-items/:id/finalize-actual", guard, FinalizeActualHandler(svc))
	app.Post("/budget-items/:id/unfinalize-actual", guard, UnfinalizeActualHandler(svc))
	app.Get("/budget-items/:id/reconciliation", ReconciliationHandler(svc))

	// Reports
	app.Get("/reports/event-summary", EventSummaryHandler(svc))
	app.Get("/reports/event-summary.xlsx", EventSummaryWorkbookHandler(svc))

	// Audit trail
	app.Get("/audit-logs", audit.ListAuditLogsHandler(opts.Audit))
}

// ErrorHandler answers API errors as {"message": ...}. When pages are
// rendered, failures of page routes get the error template instead.
func ErrorHandler(logger *slog.Logger, pages bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := apperr.Status(err)
		message := apperr.Message(err)
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
			message = fe.Message
		}

		if status >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "request failed",
				slog.String("request_id", logging.RequestID(c)),
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
		}

		if pages && isPagePath(c.Path()) {
			return c.Status(status).Render("error", fiber.Map{
				"Title":   "Error",
				"Status":  status,
				"Message": message,
			})
		}
		return c.Status(status).JSON(fiber.Map{"message": message})
	}
}

func isPagePath(path string) bool {
	return path == "/" || strings.HasPrefix(path, "/ui/")
}
