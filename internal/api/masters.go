package api

import (
	"budget-backend/internal/budget"

	"github.com/gofiber/fiber/v2"
)

// ===== Events =====

// GET /events
func ListEventsHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := svc.ListEvents(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(budget.NewEventResponses(events))
	}
}

// POST /events
func CreateEventHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body budget.CreateEventInput
		if err := parseBody(c, &body); err != nil {
			return err
		}
		event, err := svc.CreateEvent(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(budget.NewEventResponse(*event))
	}
}

// PUT /events/:id
func UpdateEventHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body budget.UpdateEventInput
		if err := parseBody(c, &body); err != nil {
			return err
		}
		event, err := svc.UpdateEvent(c.UserContext(), c.Params("id"), body)
		if err != nil {
			return err
		}
		return c.JSON(budget.NewEventResponse(*event))
	}
}

// DELETE /events/:id
func DeleteEventHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		event, err := svc.DeleteEvent(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(budget.NewEventResponse(*event))
	}
}

// ===== Expense categories =====

// GET /expense-categories
func ListExpenseCategoriesHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := svc.ListExpenseCategories(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(budget.NewExpenseCategoryResponses(categories))
	}
}

// POST /expense-categories
func CreateExpenseCategoryHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body budget.CreateExpenseCategoryInput
		if err := parseBody(c, &body); err != nil {
			return err
		}
		category, err := svc.CreateExpenseCategory(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(budget.NewExpenseCategoryResponse(*category))
	}
}

// PUT /expense-categories/:id
func UpdateExpenseCategoryHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body budget.UpdateExpenseCategoryInput
		if err := parseBody(c, &body); err != nil {
			return err
		}
		category, err := svc.UpdateExpenseCategory(c.UserContext(), c.Params("id"), body)
		if err != nil {
			return err
		}
		return c.JSON(budget.NewExpenseCategoryResponse(*category))
	}
}

// DELETE /expense-categories/:id
// Responds with the soft-deleted row.
func DeleteExpenseCategoryHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category, err := svc.DeleteExpenseCategory(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(budget.NewExpenseCategoryResponse(*category))
	}
}
