// Package web serves the server-rendered page and its form actions. Every
// form posts to /ui/... and redirects back to / (post/redirect/get).
package web

import (
	"io/fs"
	"log/slog"
	"net/http"

	"budget-backend/internal/budget"
	appweb "budget-backend/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

func Register(app *fiber.App, svc *budget.Service, logger *slog.Logger) error {
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return err
	}
	app.Use("/static", filesystem.New(filesystem.Config{Root: http.FS(static)}))

	app.Get("/", IndexHandler(svc))

	f := &forms{svc: svc, logger: logger}
	ui := app.Group("/ui")
	ui.Post("/expense-categories", f.createCategory)
	ui.Post("/expense-categories/:id/update", f.updateCategory)
	ui.Post("/expense-categories/:id/delete", f.deleteCategory)
	ui.Post("/budget-items", f.createItem)
	ui.Post("/budget-items/:id/update", f.updateItem)
	ui.Post("/budget-items/:id/delete", f.deleteItem)
	ui.Post("/budget-items/:id/budgets", f.saveBudgets)
	ui.Post("/budget-items/:id/actuals", f.saveActuals)
	ui.Post("/budget-items/:id/finalize", f.finalize)
	ui.Post("/budget-items/:id/unfinalize", f.unfinalize)
	return nil
}
