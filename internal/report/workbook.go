package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	itemsSheet   = "Items"
)

// WriteSummaryWorkbook renders the event summary and its per-item monthly
// breakdown as an xlsx workbook.
func WriteSummaryWorkbook(w io.Writer, summary EventSummary, items []ItemReconciliation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	amountFmt := "#,##0"
	amount, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		return err
	}

	if err := writeSummarySheet(f, summary, bold, amount); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeItemsSheet(f, items, bold, amount); err != nil {
		return fmt.Errorf("items sheet: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}

func writeSummarySheet(f *excelize.File, summary EventSummary, bold, amount int) error {
	rows := [][]any{
		{"Fiscal year", summary.FiscalYear},
		{"Event", summary.EventCode},
		{},
		{"Category code", "Category name", "Amount"},
	}
	for _, c := range summary.Series {
		rows = append(rows, []any{c.ExpenseCategoryCode, c.ExpenseCategoryName, c.Amount})
	}
	rows = append(rows, []any{"Total", "", summary.Total()})

	if err := setRows(f, summarySheet, rows); err != nil {
		return err
	}

	last := len(rows)
	if err := f.SetCellStyle(summarySheet, "A4", "C4", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", last), fmt.Sprintf("C%d", last), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "C5", fmt.Sprintf("C%d", last), amount); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "C", 20)
}

func writeItemsSheet(f *excelize.File, items []ItemReconciliation, bold, amount int) error {
	header := []any{"Item code", "Item name", "Category"}
	for m := 1; m <= 12; m++ {
		header = append(header, fmt.Sprintf("M%d", m))
	}
	header = append(header, "Annual")

	rows := [][]any{header}
	for _, item := range items {
		row := []any{item.BudgetItemCode, item.BudgetItemName, item.ExpenseCategoryCode}
		for _, m := range item.Months {
			row = append(row, m.Amount)
		}
		row = append(row, item.AnnualAmount)
		rows = append(rows, row)
	}

	if err := setRows(f, itemsSheet, rows); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(itemsSheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}
	if len(rows) > 1 {
		if err := f.SetCellStyle(itemsSheet, "D2", fmt.Sprintf("%s%d", lastCol, len(rows)), amount); err != nil {
			return err
		}
	}
	return f.SetColWidth(itemsSheet, "A", "C", 18)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
