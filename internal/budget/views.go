package budget

import (
	"time"

	"budget-backend/internal/models"
	"budget-backend/internal/store"
)

type EventResponse struct {
	ID        string `json:"eventId"`
	Code      string `json:"eventCode"`
	Name      string `json:"eventName"`
	Order     int    `json:"eventOrder"`
	DelFlg    bool   `json:"delFlg"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ExpenseCategoryResponse struct {
	ID        string `json:"expenseCategoryId"`
	Code      string `json:"expenseCategoryCode"`
	Name      string `json:"expenseCategoryName"`
	DelFlg    bool   `json:"delFlg"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type BudgetMonthResponse struct {
	FiscalMonth  int   `json:"fiscalMonth"`
	BudgetAmount int64 `json:"budgetAmount"`
}

type ActualMonthResponse struct {
	FiscalMonth  int   `json:"fiscalMonth"`
	ActualAmount int64 `json:"actualAmount"`
}

type BudgetItemResponse struct {
	ID                 string                   `json:"budgetItemId"`
	FiscalYear         int                      `json:"fiscalYear"`
	Code               string                   `json:"budgetItemCode"`
	Name               string                   `json:"budgetItemName"`
	EventID            string                   `json:"eventId"`
	ExpenseCategoryID  string                   `json:"expenseCategoryId"`
	ActualFinalizedFlg bool                     `json:"actualFinalizedFlg"`
	ActualFinalizedAt  *string                  `json:"actualFinalizedAt"`
	DelFlg             bool                     `json:"delFlg"`
	CreatedAt          string                   `json:"createdAt"`
	UpdatedAt          string                   `json:"updatedAt"`
	Event              *EventResponse           `json:"event,omitempty"`
	ExpenseCategory    *ExpenseCategoryResponse `json:"expenseCategory,omitempty"`
	BudgetMonthlies    []BudgetMonthResponse    `json:"budgetMonthlies"`
	ActualMonthlies    []ActualMonthResponse    `json:"actualMonthlies"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func NewEventResponse(e models.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Code:      e.Code,
		Name:      e.Name,
		Order:     e.Order,
		DelFlg:    e.DelFlg,
		CreatedAt: formatTime(e.CreatedAt),
		UpdatedAt: formatTime(e.UpdatedAt),
	}
}

func NewEventResponses(events []models.Event) []EventResponse {
	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, NewEventResponse(e))
	}
	return resp
}

func NewExpenseCategoryResponse(c models.ExpenseCategory) ExpenseCategoryResponse {
	return ExpenseCategoryResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		DelFlg:    c.DelFlg,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func NewExpenseCategoryResponses(categories []models.ExpenseCategory) []ExpenseCategoryResponse {
	resp := make([]ExpenseCategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, NewExpenseCategoryResponse(c))
	}
	return resp
}

// NewBudgetItemResponse embeds the references only when they were loaded.
func NewBudgetItemResponse(item models.BudgetItem) BudgetItemResponse {
	resp := BudgetItemResponse{
		ID:                 item.ID,
		FiscalYear:         item.FiscalYear,
		Code:               item.Code,
		Name:               item.Name,
		EventID:            item.EventID,
		ExpenseCategoryID:  item.ExpenseCategoryID,
		ActualFinalizedFlg: item.ActualFinalizedFlg,
		DelFlg:             item.DelFlg,
		CreatedAt:          formatTime(item.CreatedAt),
		UpdatedAt:          formatTime(item.UpdatedAt),
		BudgetMonthlies:    make([]BudgetMonthResponse, 0, len(item.BudgetMonthlies)),
		ActualMonthlies:    make([]ActualMonthResponse, 0, len(item.ActualMonthlies)),
	}
	if item.ActualFinalizedAt != nil {
		at := formatTime(*item.ActualFinalizedAt)
		resp.ActualFinalizedAt = &at
	}
	if item.Event.ID != "" {
		ev := NewEventResponse(item.Event)
		resp.Event = &ev
	}
	if item.ExpenseCategory.ID != "" {
		cat := NewExpenseCategoryResponse(item.ExpenseCategory)
		resp.ExpenseCategory = &cat
	}
	for _, m := range item.BudgetMonthlies {
		resp.BudgetMonthlies = append(resp.BudgetMonthlies, BudgetMonthResponse{FiscalMonth: m.FiscalMonth, BudgetAmount: m.BudgetAmount})
	}
	for _, m := range item.ActualMonthlies {
		resp.ActualMonthlies = append(resp.ActualMonthlies, ActualMonthResponse{FiscalMonth: m.FiscalMonth, ActualAmount: m.ActualAmount})
	}
	return resp
}

func NewBudgetItemResponses(items []models.BudgetItem) []BudgetItemResponse {
	resp := make([]BudgetItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, NewBudgetItemResponse(item))
	}
	return resp
}

func NewBudgetMonthResponses(rows []store.MonthAmount) []BudgetMonthResponse {
	resp := make([]BudgetMonthResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, BudgetMonthResponse{FiscalMonth: r.FiscalMonth, BudgetAmount: r.Amount})
	}
	return resp
}

func NewActualMonthResponses(rows []store.MonthAmount) []ActualMonthResponse {
	resp := make([]ActualMonthResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, ActualMonthResponse{FiscalMonth: r.FiscalMonth, ActualAmount: r.Amount})
	}
	return resp
}
