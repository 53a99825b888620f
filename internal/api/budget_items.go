package api

import (
	"budget-backend/internal/budget"

	"github.com/gofiber/fiber/v2"
)

// GET /budget-items?fiscalYear=2026&eventCode=1Q&expenseCategoryCode=TRAVEL
func ListBudgetItemsHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fiscalYear, err := queryInt(c, "fiscalYear")
		if err != nil {
			return err
		}

		items, err := svc.ListBudgetItems(c.UserContext(), budget.BudgetItemQuery{
			FiscalYear:          fiscalYear,
			EventCode:           c.Query("eventCode"),
			ExpenseCategoryCode: c.Query("expenseCategoryCode"),
		})
		if err != nil {
			return err
		}
		return c.JSON(budget.NewBudgetItemResponses(items))
	}
}

// GET /budget-items/:id
func GetBudgetItemHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := svc.GetBudgetItem(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(budget.NewBudgetItemResponse(*item))
	}
}

// POST /budget-items
func CreateBudgetItemHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body budget.CreateBudgetItemInput
		if err := parseBody(c, &body); err != nil {
			return err
		}
		item, err := svc.CreateBudgetItem(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(budget.NewBudgetItemResponse(*item))
	}
}

// PUT /budget-items/:id
func UpdateBudgetItemHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body budget.UpdateBudgetItemInput
		if err := parseBody(c, &body); err != nil {
			return err
		}
		item, err := svc.UpdateBudgetItem(c.UserContext(), c.Params("id"), body)
		if err != nil {
			return err
		}
		return c.JSON(budget.NewBudgetItemResponse(*item))
	}
}

// DELETE /budget-items/:id
func DeleteBudgetItemHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := svc.DeleteBudgetItem(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(budget.NewBudgetItemResponse(*item))
	}
}

// ===== Monthly amounts =====

// GET /budget-items/:id/budgets
func ListBudgetMonthsHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := svc.ListBudgetMonths(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(budget.NewBudgetMonthResponses(rows))
	}
}

// PUT /budget-items/:id/budgets
// Body: {"months":[{"fiscalMonth":1,"budgetAmount":1000}, ...]} covering 1-12.
func UpsertBudgetMonthsHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body budget.UpsertBudgetMonthsInput
		if err := parseBody(c, &body); err != nil {
			return err
		}
		rows, err := svc.UpsertBudgetMonths(c.UserContext(), c.Params("id"), body)
		if err != nil {
			return err
		}
		return c.JSON(budget.NewBudgetMonthResponses(rows))
	}
}

// GET /budget-items/:id/actuals
func ListActualMonthsHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := svc.ListActualMonths(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(budget.NewActualMonthResponses(rows))
	}
}

// PUT /budget-items/:id/actuals
// 409 while the item's actuals are finalized.
func UpsertActualMonthsHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body budget.UpsertActualMonthsInput
		if err := parseBody(c, &body); err != nil {
			return err
		}
		rows, err := svc.UpsertActualMonths(c.UserContext(), c.Params("id"), body)
		if err != nil {
			return err
		}
		return c.JSON(budget.NewActualMonthResponses(rows))
	}
}

// POST /budget-items/:id/finalize-actual
func FinalizeActualHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := svc.FinalizeActual(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(budget.NewBudgetItemResponse(*item))
	}
}

// POST /budget-items/:id/unfinalize-actual
func UnfinalizeActualHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := svc.UnfinalizeActual(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(budget.NewBudgetItemResponse(*item))
	}
}

// GET /budget-items/:id/reconciliation
func ReconciliationHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Reconcile(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}
