// Package report rolls monthly budget and actual rows up into annual amounts.
// For every month the actual amount wins over the budget amount; a month with
// neither contributes zero.
package report

import (
	"sort"

	"budget-backend/internal/models"
)

type Source string

const (
	SourceActual Source = "actual"
	SourceBudget Source = "budget"
	SourceNone   Source = "none"
)

// MonthBreakdown shows how one month's effective amount was chosen.
type MonthBreakdown struct {
	FiscalMonth  int    `json:"fiscalMonth"`
	BudgetAmount *int64 `json:"budgetAmount"`
	ActualAmount *int64 `json:"actualAmount"`
	Amount       int64  `json:"amount"`
	Source       Source `json:"source"`
}

type ItemReconciliation struct {
	BudgetItemID        string           `json:"budgetItemId"`
	BudgetItemCode      string           `json:"budgetItemCode"`
	BudgetItemName      string           `json:"budgetItemName"`
	ExpenseCategoryCode string           `json:"expenseCategoryCode"`
	ActualFinalizedFlg  bool             `json:"actualFinalizedFlg"`
	Months              []MonthBreakdown `json:"months"`
	BudgetTotal         int64            `json:"budgetTotal"`
	ActualTotal         int64            `json:"actualTotal"`
	AnnualAmount        int64            `json:"annualAmount"`
}

type CategoryAmount struct {
	ExpenseCategoryCode string `json:"expenseCategoryCode"`
	ExpenseCategoryName string `json:"expenseCategoryName"`
	Amount              int64  `json:"amount"`
}

type EventSummary struct {
	FiscalYear int              `json:"fiscalYear"`
	EventCode  string           `json:"eventCode"`
	Series     []CategoryAmount `json:"series"`
}

// ReconcileMonths returns the twelve months of an item in order.
func ReconcileMonths(budget, actual map[int]int64) []MonthBreakdown {
	months := make([]MonthBreakdown, 0, models.LastFiscalMonth)
	for m := models.FirstFiscalMonth; m <= models.LastFiscalMonth; m++ {
		row := MonthBreakdown{FiscalMonth: m, Source: SourceNone}
		if v, ok := budget[m]; ok {
			row.BudgetAmount = &v
			row.Amount = v
			row.Source = SourceBudget
		}
		if v, ok := actual[m]; ok {
			row.ActualAmount = &v
			row.Amount = v
			row.Source = SourceActual
		}
		months = append(months, row)
	}
	return months
}

// AnnualAmount is the sum over months 1-12 of actual, else budget, else zero.
func AnnualAmount(budget, actual map[int]int64) int64 {
	var total int64
	for _, m := range ReconcileMonths(budget, actual) {
		total += m.Amount
	}
	return total
}

// MonthAmounts indexes the active monthly rows of an item by month.
func MonthAmounts(item models.BudgetItem) (budget, actual map[int]int64) {
	budget = make(map[int]int64, len(item.BudgetMonthlies))
	for _, row := range item.BudgetMonthlies {
		if !row.DelFlg {
			budget[row.FiscalMonth] = row.BudgetAmount
		}
	}
	actual = make(map[int]int64, len(item.ActualMonthlies))
	for _, row := range item.ActualMonthlies {
		if !row.DelFlg {
			actual[row.FiscalMonth] = row.ActualAmount
		}
	}
	return budget, actual
}

func ReconcileItem(item models.BudgetItem) ItemReconciliation {
	budget, actual := MonthAmounts(item)
	rec := ItemReconciliation{
		BudgetItemID:        item.ID,
		BudgetItemCode:      item.Code,
		BudgetItemName:      item.Name,
		ExpenseCategoryCode: item.ExpenseCategory.Code,
		ActualFinalizedFlg:  item.ActualFinalizedFlg,
		Months:              ReconcileMonths(budget, actual),
	}
	for _, m := range rec.Months {
		if m.BudgetAmount != nil {
			rec.BudgetTotal += *m.BudgetAmount
		}
		if m.ActualAmount != nil {
			rec.ActualTotal += *m.ActualAmount
		}
		rec.AnnualAmount += m.Amount
	}
	return rec
}

// SummarizeByCategory groups items by expense category code and sums their
// annual amounts. Series are ordered by category code; categories without
// items do not appear. Callers pass the items already filtered by year and
// event.
func SummarizeByCategory(fiscalYear int, eventCode string, items []models.BudgetItem) EventSummary {
	byCode := make(map[string]*CategoryAmount)
	named := make(map[string]bool)
	for _, item := range items {
		code := item.ExpenseCategory.Code
		entry, ok := byCode[code]
		if !ok {
			entry = &CategoryAmount{ExpenseCategoryCode: code, ExpenseCategoryName: item.ExpenseCategory.Name}
			byCode[code] = entry
			named[code] = !item.ExpenseCategory.DelFlg
		} else if !named[code] && !item.ExpenseCategory.DelFlg {
			// a reused code shows the active category's name
			entry.ExpenseCategoryName = item.ExpenseCategory.Name
			named[code] = true
		}
		entry.Amount += AnnualAmount(MonthAmounts(item))
	}

	series := make([]CategoryAmount, 0, len(byCode))
	for _, entry := range byCode {
		series = append(series, *entry)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].ExpenseCategoryCode < series[j].ExpenseCategoryCode
	})

	return EventSummary{FiscalYear: fiscalYear, EventCode: eventCode, Series: series}
}

// Total is the sum of every series amount.
func (s EventSummary) Total() int64 {
	var total int64
	for _, c := range s.Series {
		total += c.Amount
	}
	return total
}
