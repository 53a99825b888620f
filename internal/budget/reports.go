package budget

import (
	"context"
	"strings"

	"budget-backend/internal/report"
	"budget-backend/internal/store"
)

// Reconcile shows month by month which amount an item contributes.
func (s *Service) Reconcile(ctx context.Context, itemID string) (report.ItemReconciliation, error) {
	item, err := s.store.BudgetItems.GetActive(ctx, itemID)
	if err != nil {
		return report.ItemReconciliation{}, err
	}
	return report.ReconcileItem(*item), nil
}

// EventSummary totals the annual amounts of the active items of one fiscal
// year and event per expense category. An unknown event yields no series.
func (s *Service) EventSummary(ctx context.Context, q EventSummaryQuery) (report.EventSummary, error) {
	summary, _, err := s.EventSummaryDetail(ctx, q)
	return summary, err
}

// EventSummaryDetail is EventSummary plus the per-item breakdown behind it.
func (s *Service) EventSummaryDetail(ctx context.Context, q EventSummaryQuery) (report.EventSummary, []report.ItemReconciliation, error) {
	q.EventCode = strings.TrimSpace(q.EventCode)
	if err := s.validate.Struct(q); err != nil {
		return report.EventSummary{}, nil, err
	}

	items, err := s.store.BudgetItems.List(ctx, store.BudgetItemFilter{
		FiscalYear: &q.FiscalYear,
		EventCode:  q.EventCode,
	})
	if err != nil {
		return report.EventSummary{}, nil, err
	}

	recs := make([]report.ItemReconciliation, 0, len(items))
	for _, item := range items {
		recs = append(recs, report.ReconcileItem(item))
	}
	return report.SummarizeByCategory(q.FiscalYear, q.EventCode, items), recs, nil
}
