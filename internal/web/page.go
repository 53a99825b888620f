package web

import (
	"context"
	"strconv"
	"strings"
	"time"

	"budget-backend/internal/apperr"
	"budget-backend/internal/budget"
	"budget-backend/internal/models"
	"budget-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

type MonthCell struct {
	Month  int
	Budget int64
	Actual int64
}

type ItemView struct {
	budget.BudgetItemResponse
	Months      []MonthCell
	BudgetTotal int64
	ActualTotal int64
	Annual      int64
}

type PageData struct {
	Title      string
	FiscalYear int
	EventCode  string
	EventID    string
	Events     []budget.EventResponse
	Categories []budget.ExpenseCategoryResponse
	Summary    *report.EventSummary
	MaxAmount  int64
	Items      []ItemView
	Message    string
	Error      string
}

// GET /?fiscalYear=2026&eventCode=1Q
func IndexHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := loadPage(c.UserContext(), svc, c.Query("fiscalYear"), c.Query("eventCode"))
		if err != nil {
			return err
		}
		if msg := c.Query("message"); msg != "" {
			data.Message = msg
		}
		if msg := c.Query("error"); msg != "" {
			data.Error = msg
		}
		return c.Render("index", data)
	}
}

func loadPage(ctx context.Context, svc *budget.Service, yearParam, eventCode string) (*PageData, error) {
	data := &PageData{Title: "Expense Budget Manager", FiscalYear: time.Now().Year()}
	if y, err := strconv.Atoi(strings.TrimSpace(yearParam)); err == nil {
		data.FiscalYear = y
	}

	var (
		events     []models.Event
		categories []models.ExpenseCategory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = svc.ListEvents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = svc.ListExpenseCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data.Events = budget.NewEventResponses(events)
	data.Categories = budget.NewExpenseCategoryResponses(categories)

	data.EventCode = strings.TrimSpace(eventCode)
	if data.EventCode == "" && len(events) > 0 {
		data.EventCode = events[0].Code
	}
	for _, e := range events {
		if e.Code == data.EventCode {
			data.EventID = e.ID
		}
	}
	if data.EventCode == "" {
		return data, nil
	}

	var (
		summary report.EventSummary
		items   []models.BudgetItem
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = svc.EventSummary(gctx, budget.EventSummaryQuery{FiscalYear: data.FiscalYear, EventCode: data.EventCode})
		return err
	})
	g.Go(func() error {
		var err error
		items, err = svc.ListBudgetItems(gctx, budget.BudgetItemQuery{FiscalYear: &data.FiscalYear, EventCode: data.EventCode})
		return err
	})
	if err := g.Wait(); err != nil {
		// an out of range year still renders the page, with the message
		if apperr.Status(err) >= fiber.StatusInternalServerError {
			return nil, err
		}
		data.Error = apperr.Message(err)
		return data, nil
	}

	data.Summary = &summary
	for _, s := range summary.Series {
		if s.Amount > data.MaxAmount {
			data.MaxAmount = s.Amount
		}
	}
	for _, item := range items {
		data.Items = append(data.Items, newItemView(item))
	}
	return data, nil
}

func newItemView(item models.BudgetItem) ItemView {
	rec := report.ReconcileItem(item)
	view := ItemView{
		BudgetItemResponse: budget.NewBudgetItemResponse(item),
		BudgetTotal:        rec.BudgetTotal,
		ActualTotal:        rec.ActualTotal,
		Annual:             rec.AnnualAmount,
	}
	for _, m := range rec.Months {
		cell := MonthCell{Month: m.FiscalMonth}
		if m.BudgetAmount != nil {
			cell.Budget = *m.BudgetAmount
		}
		if m.ActualAmount != nil {
			cell.Actual = *m.ActualAmount
		}
		view.Months = append(view.Months, cell)
	}
	return view
}
