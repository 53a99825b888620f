package report

import (
	"bytes"
	"testing"

	"budget-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func item(code, category string, budget, actual map[int]int64) models.BudgetItem {
	it := models.BudgetItem{
		ID:              "id-" + code,
		Code:            code,
		Name:            "Item " + code,
		ExpenseCategory: models.ExpenseCategory{Code: category, Name: category + " name"},
	}
	for m, v := range budget {
		it.BudgetMonthlies = append(it.BudgetMonthlies, models.BudgetMonthly{FiscalMonth: m, BudgetAmount: v})
	}
	for m, v := range actual {
		it.ActualMonthlies = append(it.ActualMonthlies, models.ActualMonthly{FiscalMonth: m, ActualAmount: v})
	}
	return it
}

func TestAnnualAmountPrefersActual(t *testing.T) {
	budget := map[int]int64{1: 1000, 2: 2000}
	actual := map[int]int64{1: 1500}

	assert.EqualValues(t, 3500, AnnualAmount(budget, actual))
	assert.EqualValues(t, 0, AnnualAmount(nil, nil))
}

func TestReconcileMonthsSources(t *testing.T) {
	months := ReconcileMonths(map[int]int64{1: 1000, 2: 2000}, map[int]int64{1: 1500, 3: 0})
	require.Len(t, months, 12)

	assert.Equal(t, SourceActual, months[0].Source)
	assert.EqualValues(t, 1500, months[0].Amount)
	require.NotNil(t, months[0].BudgetAmount)
	assert.EqualValues(t, 1000, *months[0].BudgetAmount)

	assert.Equal(t, SourceBudget, months[1].Source)
	assert.Nil(t, months[1].ActualAmount)

	// a zero actual still overrides
	assert.Equal(t, SourceActual, months[2].Source)
	assert.EqualValues(t, 0, months[2].Amount)

	assert.Equal(t, SourceNone, months[11].Source)
	assert.Equal(t, 12, months[11].FiscalMonth)
}

func TestReconcileItemTotals(t *testing.T) {
	rec := ReconcileItem(item("B-1", "AD", map[int]int64{1: 1000, 2: 2000}, map[int]int64{1: 1500}))

	assert.EqualValues(t, 3000, rec.BudgetTotal)
	assert.EqualValues(t, 1500, rec.ActualTotal)
	assert.EqualValues(t, 3500, rec.AnnualAmount)
	assert.Equal(t, "AD", rec.ExpenseCategoryCode)
}

func TestMonthAmountsSkipsDeletedRows(t *testing.T) {
	it := item("B-1", "AD", map[int]int64{1: 1000}, nil)
	it.BudgetMonthlies = append(it.BudgetMonthlies, models.BudgetMonthly{FiscalMonth: 2, BudgetAmount: 999, DelFlg: true})

	budget, actual := MonthAmounts(it)
	assert.Equal(t, map[int]int64{1: 1000}, budget)
	assert.Empty(t, actual)
}

func TestSummarizeByCategory(t *testing.T) {
	items := []models.BudgetItem{
		item("B-3", "TRAVEL", map[int]int64{1: 100}, nil),
		item("B-1", "AD", map[int]int64{1: 1000, 2: 2000}, map[int]int64{1: 1500}),
		item("B-2", "AD", map[int]int64{12: 500}, nil),
		item("B-4", "MEAL", nil, map[int]int64{6: 40}),
	}

	summary := SummarizeByCategory(2026, "1Q", items)

	assert.Equal(t, 2026, summary.FiscalYear)
	assert.Equal(t, "1Q", summary.EventCode)
	assert.Equal(t, []CategoryAmount{
		{ExpenseCategoryCode: "AD", ExpenseCategoryName: "AD name", Amount: 4000},
		{ExpenseCategoryCode: "MEAL", ExpenseCategoryName: "MEAL name", Amount: 40},
		{ExpenseCategoryCode: "TRAVEL", ExpenseCategoryName: "TRAVEL name", Amount: 100},
	}, summary.Series)
	assert.EqualValues(t, 4140, summary.Total())
}

func TestSummarizeUsesActiveCategoryNameForReusedCode(t *testing.T) {
	old := item("B-1", "AD", map[int]int64{1: 100}, nil)
	old.ExpenseCategory.Name = "Advertising (old)"
	old.ExpenseCategory.DelFlg = true
	current := item("B-2", "AD", map[int]int64{1: 50}, nil)
	current.ExpenseCategory.Name = "Advertising"

	summary := SummarizeByCategory(2026, "1Q", []models.BudgetItem{old, current})

	require.Len(t, summary.Series, 1)
	assert.Equal(t, "Advertising", summary.Series[0].ExpenseCategoryName)
	assert.EqualValues(t, 150, summary.Series[0].Amount)
}

func TestSummarizeWithoutItemsHasEmptySeries(t *testing.T) {
	summary := SummarizeByCategory(2026, "UNKNOWN", nil)
	assert.NotNil(t, summary.Series)
	assert.Empty(t, summary.Series)
}

func TestWriteSummaryWorkbook(t *testing.T) {
	items := []models.BudgetItem{
		item("B-1", "AD", map[int]int64{1: 1000, 2: 2000}, map[int]int64{1: 1500}),
		item("B-2", "MEAL", map[int]int64{3: 70}, nil),
	}
	summary := SummarizeByCategory(2026, "1Q", items)
	recs := []ItemReconciliation{ReconcileItem(items[0]), ReconcileItem(items[1])}

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryWorkbook(&buf, summary, recs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "1Q", rows[1][1])
	assert.Equal(t, "AD", rows[4][0])
	assert.Equal(t, "MEAL", rows[5][0])
	assert.Equal(t, "Total", rows[6][0])

	raw, err := f.GetCellValue(summarySheet, "C7", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "3570", raw)

	itemRows, err := f.GetRows(itemsSheet)
	require.NoError(t, err)
	require.Len(t, itemRows, 3)
	assert.Equal(t, "Annual", itemRows[0][15])
	assert.Equal(t, "B-2", itemRows[2][0])
}
