package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"budget-backend/internal/apperr"
	"budget-backend/internal/audit"
	"budget-backend/internal/budget"
	"budget-backend/internal/logging"
	"budget-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const webActor = "web"

type forms struct {
	svc    *budget.Service
	logger *slog.Logger
}

// done redirects back to the page, keeping the selected year and event and
// carrying either the success message or the error.
func (f *forms) done(c *fiber.Ctx, err error, success string) error {
	q := url.Values{}
	q.Set("fiscalYear", c.FormValue("fiscalYear"))
	q.Set("eventCode", c.FormValue("eventCode"))

	if err != nil {
		if apperr.Status(err) >= fiber.StatusInternalServerError {
			f.logger.ErrorContext(c.UserContext(), "form action failed",
				slog.String("request_id", logging.RequestID(c)),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
		}
		q.Set("error", apperr.Message(err))
	} else {
		q.Set("message", success)
	}
	return c.Redirect("/?"+q.Encode(), fiber.StatusSeeOther)
}

// actorContext marks changes made through the page.
func actorContext(c *fiber.Ctx) context.Context {
	return audit.WithActor(c.UserContext(), webActor)
}

func optional(c *fiber.Ctx, key string) *string {
	v := c.FormValue(key)
	if v == "" {
		return nil
	}
	return &v
}

// monthAmounts reads <prefix>_1 ... <prefix>_12; blank cells count as zero.
func monthAmounts(c *fiber.Ctx, prefix string) ([]int64, error) {
	amounts := make([]int64, 0, models.LastFiscalMonth)
	for m := models.FirstFiscalMonth; m <= models.LastFiscalMonth; m++ {
		key := fmt.Sprintf("%s_%d", prefix, m)
		raw := strings.TrimSpace(c.FormValue(key))
		if raw == "" {
			amounts = append(amounts, 0)
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return nil, apperr.Validation("%s must be a non-negative integer", key)
		}
		amounts = append(amounts, v)
	}
	return amounts, nil
}

// ===== Expense categories =====

// POST /ui/expense-categories
func (f *forms) createCategory(c *fiber.Ctx) error {
	_, err := f.svc.CreateExpenseCategory(actorContext(c), budget.CreateExpenseCategoryInput{
		Code: c.FormValue("expenseCategoryCode"),
		Name: c.FormValue("expenseCategoryName"),
	})
	return f.done(c, err, "Expense category created")
}

// POST /ui/expense-categories/:id/update
func (f *forms) updateCategory(c *fiber.Ctx) error {
	_, err := f.svc.UpdateExpenseCategory(actorContext(c), c.Params("id"), budget.UpdateExpenseCategoryInput{
		Code: optional(c, "expenseCategoryCode"),
		Name: optional(c, "expenseCategoryName"),
	})
	return f.done(c, err, "Expense category updated")
}

// POST /ui/expense-categories/:id/delete
func (f *forms) deleteCategory(c *fiber.Ctx) error {
	_, err := f.svc.DeleteExpenseCategory(actorContext(c), c.Params("id"))
	return f.done(c, err, "Expense category deleted")
}

// ===== Budget items =====

// POST /ui/budget-items
func (f *forms) createItem(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.FormValue("fiscalYear"))
	if err != nil {
		return f.done(c, apperr.Validation("fiscalYear must be an integer"), "")
	}
	_, err = f.svc.CreateBudgetItem(actorContext(c), budget.CreateBudgetItemInput{
		FiscalYear:        year,
		Code:              c.FormValue("budgetItemCode"),
		Name:              c.FormValue("budgetItemName"),
		EventID:           c.FormValue("eventId"),
		ExpenseCategoryID: c.FormValue("expenseCategoryId"),
	})
	return f.done(c, err, "Budget item created")
}

// POST /ui/budget-items/:id/update
func (f *forms) updateItem(c *fiber.Ctx) error {
	_, err := f.svc.UpdateBudgetItem(actorContext(c), c.Params("id"), budget.UpdateBudgetItemInput{
		Code:              optional(c, "budgetItemCode"),
		Name:              optional(c, "budgetItemName"),
		ExpenseCategoryID: optional(c, "expenseCategoryId"),
	})
	return f.done(c, err, "Budget item updated")
}

// POST /ui/budget-items/:id/delete
func (f *forms) deleteItem(c *fiber.Ctx) error {
	_, err := f.svc.DeleteBudgetItem(actorContext(c), c.Params("id"))
	return f.done(c, err, "Budget item deleted")
}

// POST /ui/budget-items/:id/budgets
func (f *forms) saveBudgets(c *fiber.Ctx) error {
	amounts, err := monthAmounts(c, "budget")
	if err != nil {
		return f.done(c, err, "")
	}
	var in budget.UpsertBudgetMonthsInput
	for i, v := range amounts {
		amount := v
		in.Months = append(in.Months, budget.BudgetMonthInput{FiscalMonth: i + 1, BudgetAmount: &amount})
	}
	_, err = f.svc.UpsertBudgetMonths(actorContext(c), c.Params("id"), in)
	return f.done(c, err, "Budget amounts saved")
}

// POST /ui/budget-items/:id/actuals
func (f *forms) saveActuals(c *fiber.Ctx) error {
	amounts, err := monthAmounts(c, "actual")
	if err != nil {
		return f.done(c, err, "")
	}
	var in budget.UpsertActualMonthsInput
	for i, v := range amounts {
		amount := v
		in.Months = append(in.Months, budget.ActualMonthInput{FiscalMonth: i + 1, ActualAmount: &amount})
	}
	_, err = f.svc.UpsertActualMonths(actorContext(c), c.Params("id"), in)
	return f.done(c, err, "Actual amounts saved")
}

// POST /ui/budget-items/:id/finalize
func (f *forms) finalize(c *fiber.Ctx) error {
	_, err := f.svc.FinalizeActual(actorContext(c), c.Params("id"))
	return f.done(c, err, "Actual amounts finalized")
}

// POST /ui/budget-items/:id/unfinalize
func (f *forms) unfinalize(c *fiber.Ctx) error {
	_, err := f.svc.UnfinalizeActual(actorContext(c), c.Params("id"))
	return f.done(c, err, "Actual amounts reopened")
}
