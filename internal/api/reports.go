package api

import (
	"bytes"
	"fmt"

	"budget-backend/internal/apperr"
	"budget-backend/internal/budget"
	"budget-backend/internal/report"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func summaryQuery(c *fiber.Ctx) (budget.EventSummaryQuery, error) {
	fiscalYear, err := queryInt(c, "fiscalYear")
	if err != nil {
		return budget.EventSummaryQuery{}, err
	}
	if fiscalYear == nil {
		return budget.EventSummaryQuery{}, apperr.Validation("fiscalYear is required")
	}
	return budget.EventSummaryQuery{FiscalYear: *fiscalYear, EventCode: c.Query("eventCode")}, nil
}

// GET /reports/event-summary?fiscalYear=2026&eventCode=1Q
func EventSummaryHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := summaryQuery(c)
		if err != nil {
			return err
		}
		summary, err := svc.EventSummary(c.UserContext(), q)
		if err != nil {
			return err
		}
		return c.JSON(summary)
	}
}

// GET /reports/event-summary.xlsx?fiscalYear=2026&eventCode=1Q
func EventSummaryWorkbookHandler(svc *budget.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := summaryQuery(c)
		if err != nil {
			return err
		}
		summary, items, err := svc.EventSummaryDetail(c.UserContext(), q)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := report.WriteSummaryWorkbook(&buf, summary, items); err != nil {
			return fmt.Errorf("render event summary workbook: %w", err)
		}

		c.Attachment(fmt.Sprintf("event-summary-%d-%s.xlsx", summary.FiscalYear, summary.EventCode))
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Send(buf.Bytes())
	}
}
