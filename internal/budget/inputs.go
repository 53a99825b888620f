package budget

import (
	"strings"

	"budget-backend/internal/store"
)

// ===== Events =====

type CreateEventInput struct {
	Code  string `json:"eventCode" validate:"notblank,max=50"`
	Name  string `json:"eventName" validate:"notblank,max=100"`
	Order int    `json:"eventOrder" validate:"min=0,max=9999"`
}

type UpdateEventInput struct {
	Code  *string `json:"eventCode" validate:"omitnil,notblank,max=50"`
	Name  *string `json:"eventName" validate:"omitnil,notblank,max=100"`
	Order *int    `json:"eventOrder" validate:"omitnil,min=0,max=9999"`
}

func (in *CreateEventInput) normalize() {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
}

func (in *UpdateEventInput) normalize() {
	trimPtr(in.Code)
	trimPtr(in.Name)
}

func (in UpdateEventInput) empty() bool {
	return in.Code == nil && in.Name == nil && in.Order == nil
}

// ===== Expense categories =====

type CreateExpenseCategoryInput struct {
	Code string `json:"expenseCategoryCode" validate:"notblank,max=50"`
	Name string `json:"expenseCategoryName" validate:"notblank,max=100"`
}

type UpdateExpenseCategoryInput struct {
	Code *string `json:"expenseCategoryCode" validate:"omitnil,notblank,max=50"`
	Name *string `json:"expenseCategoryName" validate:"omitnil,notblank,max=100"`
}

func (in *CreateExpenseCategoryInput) normalize() {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
}

func (in *UpdateExpenseCategoryInput) normalize() {
	trimPtr(in.Code)
	trimPtr(in.Name)
}

func (in UpdateExpenseCategoryInput) empty() bool {
	return in.Code == nil && in.Name == nil
}

// ===== Budget items =====

type BudgetItemQuery struct {
	FiscalYear          *int   `json:"fiscalYear" validate:"omitnil,min=2000,max=2100"`
	EventCode           string `json:"eventCode" validate:"max=50"`
	ExpenseCategoryCode string `json:"expenseCategoryCode" validate:"max=50"`
}

func (q BudgetItemQuery) filter() store.BudgetItemFilter {
	return store.BudgetItemFilter{
		FiscalYear:          q.FiscalYear,
		EventCode:           strings.TrimSpace(q.EventCode),
		ExpenseCategoryCode: strings.TrimSpace(q.ExpenseCategoryCode),
	}
}

type CreateBudgetItemInput struct {
	FiscalYear        int    `json:"fiscalYear" validate:"required,min=2000,max=2100"`
	Code              string `json:"budgetItemCode" validate:"notblank,max=50"`
	Name              string `json:"budgetItemName" validate:"notblank,max=100"`
	EventID           string `json:"eventId" validate:"required,uuid"`
	ExpenseCategoryID string `json:"expenseCategoryId" validate:"required,uuid"`
}

type UpdateBudgetItemInput struct {
	FiscalYear        *int    `json:"fiscalYear" validate:"omitnil,min=2000,max=2100"`
	Code              *string `json:"budgetItemCode" validate:"omitnil,notblank,max=50"`
	Name              *string `json:"budgetItemName" validate:"omitnil,notblank,max=100"`
	EventID           *string `json:"eventId" validate:"omitnil,uuid"`
	ExpenseCategoryID *string `json:"expenseCategoryId" validate:"omitnil,uuid"`
}

func (in *CreateBudgetItemInput) normalize() {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.EventID = strings.TrimSpace(in.EventID)
	in.ExpenseCategoryID = strings.TrimSpace(in.ExpenseCategoryID)
}

func (in *UpdateBudgetItemInput) normalize() {
	trimPtr(in.Code)
	trimPtr(in.Name)
	trimPtr(in.EventID)
	trimPtr(in.ExpenseCategoryID)
}

func (in UpdateBudgetItemInput) empty() bool {
	return in.FiscalYear == nil && in.Code == nil && in.Name == nil &&
		in.EventID == nil && in.ExpenseCategoryID == nil
}

// ===== Monthly rows =====

type BudgetMonthInput struct {
	FiscalMonth  int    `json:"fiscalMonth" validate:"required,min=1,max=12"`
	BudgetAmount *int64 `json:"budgetAmount" validate:"required,min=0,max=999999999999"`
}

type UpsertBudgetMonthsInput struct {
	Months []BudgetMonthInput `json:"months" validate:"required,dive"`
}

func (in UpsertBudgetMonthsInput) rows() []store.MonthAmount {
	rows := make([]store.MonthAmount, 0, len(in.Months))
	for _, m := range in.Months {
		rows = append(rows, store.MonthAmount{FiscalMonth: m.FiscalMonth, Amount: *m.BudgetAmount})
	}
	return rows
}

type ActualMonthInput struct {
	FiscalMonth  int    `json:"fiscalMonth" validate:"required,min=1,max=12"`
	ActualAmount *int64 `json:"actualAmount" validate:"required,min=0,max=999999999999"`
}

type UpsertActualMonthsInput struct {
	Months []ActualMonthInput `json:"months" validate:"required,dive"`
}

func (in UpsertActualMonthsInput) rows() []store.MonthAmount {
	rows := make([]store.MonthAmount, 0, len(in.Months))
	for _, m := range in.Months {
		rows = append(rows, store.MonthAmount{FiscalMonth: m.FiscalMonth, Amount: *m.ActualAmount})
	}
	return rows
}

func monthsOf(rows []store.MonthAmount) []int {
	months := make([]int, 0, len(rows))
	for _, r := range rows {
		months = append(months, r.FiscalMonth)
	}
	return months
}

// ===== Reports =====

type EventSummaryQuery struct {
	FiscalYear int    `json:"fiscalYear" validate:"required,min=2000,max=2100"`
	EventCode  string `json:"eventCode" validate:"notblank,max=50"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
