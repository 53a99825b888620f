package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"budget-backend/internal/audit"
	"budget-backend/internal/auth"
	"budget-backend/internal/budget"
	"budget-backend/internal/config"
	"budget-backend/internal/logging"
	"budget-backend/internal/store"
	"budget-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T, secret string) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	logger := logging.NewWithWriter(io.Discard, "error", "text")
	auditLog := audit.NewLog(db)

	app := NewApp(Options{
		Config:  &config.Config{CORSOrigins: "*", JWTSecret: secret},
		Logger:  logger,
		DB:      db,
		Service: budget.NewService(store.New(db), auditLog, logger),
		Audit:   auditLog,
	})
	return &testServer{app: app, db: db}
}

// do sends a JSON request and decodes the JSON response into out when given.
func (s *testServer) do(t *testing.T, method, path string, body any, out any, headers ...string) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errorBody struct {
	Message string `json:"message"`
}

func (s *testServer) seed(t *testing.T) (eventID, categoryID string) {
	t.Helper()
	var event budget.EventResponse
	require.Equal(t, fiber.StatusCreated, s.do(t, fiber.MethodPost, "/events",
		fiber.Map{"eventCode": "1Q", "eventName": "First quarter", "eventOrder": 1}, &event))
	var category budget.ExpenseCategoryResponse
	require.Equal(t, fiber.StatusCreated, s.do(t, fiber.MethodPost, "/expense-categories",
		fiber.Map{"expenseCategoryCode": "TRAVEL", "expenseCategoryName": "Travel"}, &category))
	return event.ID, category.ID
}

func months(key string, amount func(m int) int64) fiber.Map {
	rows := make([]fiber.Map, 0, 12)
	for m := 1; m <= 12; m++ {
		rows = append(rows, fiber.Map{"fiscalMonth": m, key: amount(m)})
	}
	return fiber.Map{"months": rows}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")

	var body map[string]bool
	assert.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodGet, "/health", nil, &body))
	assert.True(t, body["ok"])

	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	var failure errorBody
	assert.Equal(t, fiber.StatusInternalServerError, s.do(t, fiber.MethodGet, "/health", nil, &failure))
	assert.Equal(t, "internal server error", failure.Message)
}

func TestExpenseCategoryStatusContract(t *testing.T) {
	s := newTestServer(t, "")
	_, categoryID := s.seed(t)

	var conflict errorBody
	assert.Equal(t, fiber.StatusConflict, s.do(t, fiber.MethodPost, "/expense-categories",
		fiber.Map{"expenseCategoryCode": "TRAVEL", "expenseCategoryName": "Again"}, &conflict))
	assert.Equal(t, "expenseCategoryCode already exists", conflict.Message)

	var invalid errorBody
	assert.Equal(t, fiber.StatusBadRequest, s.do(t, fiber.MethodPost, "/expense-categories",
		fiber.Map{"expenseCategoryCode": "MEAL"}, &invalid))
	assert.Equal(t, "expenseCategoryName is required", invalid.Message)

	assert.Equal(t, fiber.StatusBadRequest, s.do(t, fiber.MethodPut, "/expense-categories/"+categoryID, fiber.Map{}, nil))
	assert.Equal(t, fiber.StatusNotFound, s.do(t, fiber.MethodPut, "/expense-categories/missing",
		fiber.Map{"expenseCategoryName": "x"}, nil))

	var updated budget.ExpenseCategoryResponse
	assert.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodPut, "/expense-categories/"+categoryID,
		fiber.Map{"expenseCategoryName": "Travel costs"}, &updated))
	assert.Equal(t, "TRAVEL", updated.Code)
	assert.Equal(t, "Travel costs", updated.Name)

	var deleted budget.ExpenseCategoryResponse
	assert.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodDelete, "/expense-categories/"+categoryID, nil, &deleted))
	assert.True(t, deleted.DelFlg)
	assert.Equal(t, fiber.StatusNotFound, s.do(t, fiber.MethodDelete, "/expense-categories/"+categoryID, nil, nil))

	var list []budget.ExpenseCategoryResponse
	assert.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodGet, "/expense-categories", nil, &list))
	assert.Empty(t, list)
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(fiber.MethodPost, "/expense-categories", bytes.NewBufferString("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBudgetItemLifecycle(t *testing.T) {
	s := newTestServer(t, "")
	eventID, categoryID := s.seed(t)

	assert.Equal(t, fiber.StatusNotFound, s.do(t, fiber.MethodPost, "/budget-items", fiber.Map{
		"fiscalYear": 2026, "budgetItemCode": "B-001", "budgetItemName": "Trip",
		"eventId": "5b0c7a52-3d0e-4a39-9d0b-6f3f0c1d2e4a", "expenseCategoryId": categoryID,
	}, nil))

	var item budget.BudgetItemResponse
	require.Equal(t, fiber.StatusCreated, s.do(t, fiber.MethodPost, "/budget-items", fiber.Map{
		"fiscalYear": 2026, "budgetItemCode": "B-001", "budgetItemName": "Trip",
		"eventId": eventID, "expenseCategoryId": categoryID,
	}, &item))
	require.NotNil(t, item.Event)
	assert.Equal(t, "1Q", item.Event.Code)
	assert.Empty(t, item.BudgetMonthlies)

	base := "/budget-items/" + item.ID
	var budgets []budget.BudgetMonthResponse
	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodPut, base+"/budgets", months("budgetAmount", func(m int) int64 {
		if m <= 2 {
			return int64(m) * 1000
		}
		return 0
	}), &budgets))
	assert.Len(t, budgets, 12)

	var finalized budget.BudgetItemResponse
	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodPost, base+"/finalize-actual", nil, &finalized))
	assert.True(t, finalized.ActualFinalizedFlg)
	assert.NotNil(t, finalized.ActualFinalizedAt)

	actuals := months("actualAmount", func(m int) int64 {
		if m == 1 {
			return 1500
		}
		return 0
	})
	var locked errorBody
	assert.Equal(t, fiber.StatusConflict, s.do(t, fiber.MethodPut, base+"/actuals", actuals, &locked))
	assert.Equal(t, "actual amounts of budget item B-001 are finalized", locked.Message)

	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodPost, base+"/unfinalize-actual", nil, nil))
	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodPut, base+"/actuals", actuals, nil))

	var fetched budget.BudgetItemResponse
	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodGet, base, nil, &fetched))
	assert.Len(t, fetched.BudgetMonthlies, 12)
	assert.Len(t, fetched.ActualMonthlies, 12)
	assert.Nil(t, fetched.ActualFinalizedAt)

	var summary struct {
		FiscalYear int    `json:"fiscalYear"`
		EventCode  string `json:"eventCode"`
		Series     []struct {
			Code   string `json:"expenseCategoryCode"`
			Name   string `json:"expenseCategoryName"`
			Amount int64  `json:"amount"`
		} `json:"series"`
	}
	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodGet, "/reports/event-summary?fiscalYear=2026&eventCode=1Q", nil, &summary))
	assert.Equal(t, 2026, summary.FiscalYear)
	require.Len(t, summary.Series, 1)
	assert.Equal(t, "TRAVEL", summary.Series[0].Code)
	// actual rows exist for every month, so only the January actual counts
	assert.EqualValues(t, 1500, summary.Series[0].Amount)

	var filtered []budget.BudgetItemResponse
	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodGet, "/budget-items?fiscalYear=2025", nil, &filtered))
	assert.Empty(t, filtered)
	assert.Equal(t, fiber.StatusBadRequest, s.do(t, fiber.MethodGet, "/budget-items?fiscalYear=abc", nil, nil))

	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodDelete, base, nil, nil))
	assert.Equal(t, fiber.StatusNotFound, s.do(t, fiber.MethodGet, base, nil, nil))
	assert.Equal(t, fiber.StatusNotFound, s.do(t, fiber.MethodGet, base+"/budgets", nil, nil))
}

func TestIncompleteMonthsAreRejected(t *testing.T) {
	s := newTestServer(t, "")
	eventID, categoryID := s.seed(t)

	var item budget.BudgetItemResponse
	require.Equal(t, fiber.StatusCreated, s.do(t, fiber.MethodPost, "/budget-items", fiber.Map{
		"fiscalYear": 2026, "budgetItemCode": "B-001", "budgetItemName": "Trip",
		"eventId": eventID, "expenseCategoryId": categoryID,
	}, &item))

	body := fiber.Map{"months": []fiber.Map{{"fiscalMonth": 1, "budgetAmount": 100}}}
	var invalid errorBody
	assert.Equal(t, fiber.StatusBadRequest, s.do(t, fiber.MethodPut, "/budget-items/"+item.ID+"/budgets", body, &invalid))
	assert.Contains(t, invalid.Message, "missing 2, 3")

	fractional := fiber.Map{"months": []fiber.Map{{"fiscalMonth": 1, "budgetAmount": 1.5}}}
	assert.Equal(t, fiber.StatusBadRequest, s.do(t, fiber.MethodPut, "/budget-items/"+item.ID+"/budgets", fractional, nil))
}

func TestEventSummaryWorkbook(t *testing.T) {
	s := newTestServer(t, "")
	s.seed(t)

	req := httptest.NewRequest(fiber.MethodGet, "/reports/event-summary.xlsx?fiscalYear=2026&eventCode=1Q", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "event-summary-2026-1Q.xlsx")

	assert.Equal(t, fiber.StatusBadRequest, s.do(t, fiber.MethodGet, "/reports/event-summary?eventCode=1Q", nil, nil))
}

func TestAuditLogEndpoint(t *testing.T) {
	s := newTestServer(t, "")
	_, categoryID := s.seed(t)

	var logs []audit.AuditLogResponse
	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodGet,
		fmt.Sprintf("/audit-logs?entityType=%s&entityId=%s", audit.EntityExpenseCategory, categoryID), nil, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "create", string(logs[0].Action))
	assert.JSONEq(t, "null", string(logs[0].Before))
}

func TestWriteGuard(t *testing.T) {
	s := newTestServer(t, testSecret)
	body := fiber.Map{"expenseCategoryCode": "MEAL", "expenseCategoryName": "Meals"}

	var denied errorBody
	assert.Equal(t, fiber.StatusUnauthorized, s.do(t, fiber.MethodPost, "/expense-categories", body, &denied))
	assert.Equal(t, "missing Authorization header", denied.Message)

	assert.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodGet, "/expense-categories", nil, nil))

	token, err := auth.GenerateToken(testSecret, "alice", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, s.do(t, fiber.MethodPost, "/expense-categories", body, nil,
		fiber.HeaderAuthorization, "Bearer "+token))

	var logs []audit.AuditLogResponse
	require.Equal(t, fiber.StatusOK, s.do(t, fiber.MethodGet, "/audit-logs?entityType=expense_category", nil, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "api:alice", logs[0].Actor)
}
