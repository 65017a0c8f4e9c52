package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/spendwatch/internal/operator"
	"github.com/carson-networks/spendwatch/internal/service"
)

// mockBackend is a hand-written testify mock for service.StorageBackend.
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) GetLimits(ctx context.Context, userID string) (*service.LimitSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LimitSet), args.Error(1)
}

func (m *mockBackend) GetSummary(ctx context.Context, userID string) (*service.SummaryAggregate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SummaryAggregate), args.Error(1)
}

func (m *mockBackend) IncrementSummary(ctx context.Context, userID string, amount decimal.Decimal, direction service.Direction) error {
	return m.Called(ctx, userID, amount, direction).Error(0)
}

func (m *mockBackend) AppendTransaction(ctx context.Context, tx *service.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockBackend) QueryTransactions(ctx context.Context, userID string, filter service.TransactionFilter) ([]service.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.Transaction), args.Error(1)
}

func (m *mockBackend) UpsertLimit(ctx context.Context, userID string, period service.Period, limit decimal.Decimal) error {
	return m.Called(ctx, userID, period, limit).Error(0)
}

func (m *mockBackend) InsertPending(ctx context.Context, item *service.PendingItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockBackend) ListPending(ctx context.Context, userID string) ([]service.PendingItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PendingItem), args.Error(1)
}

func (m *mockBackend) DeletePending(ctx context.Context, userID string, pendingID uuid.UUID) error {
	return m.Called(ctx, userID, pendingID).Error(0)
}

// newTestAPI wires the handler through a real operator delegator so requests
// exercise the same queue path production traffic takes.
func newTestAPI(t *testing.T, store *mockBackend) humatest.TestAPI {
	t.Helper()

	svc := service.NewService(store, nil)
	delegator := operator.NewOperatorDelegator(svc, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	_, api := humatest.New(t)
	NewProcessNotificationHandler(delegator).Register(api)
	return api
}

func notificationBody(message string) map[string]any {
	return map[string]any{
		"userID":          "user-1",
		"timestamp":       "2025-06-14T13:45:00Z",
		"applicationName": "com.bank.alerts",
		"senderName":      "HDFCBK",
		"rawMessage":      message,
	}
}

func TestProcessNotification_Success(t *testing.T) {
	store := &mockBackend{}
	store.On("GetLimits", mock.Anything, "user-1").Return(nil, nil)
	store.On("GetSummary", mock.Anything, "user-1").
		Return(&service.SummaryAggregate{UserID: "user-1"}, nil)
	store.On("QueryTransactions", mock.Anything, "user-1", mock.Anything).Return(nil, nil)
	store.On("AppendTransaction", mock.Anything, mock.Anything).Return(nil)
	store.On("IncrementSummary", mock.Anything, "user-1", mock.Anything, service.DirectionOut).
		Return(nil)

	api := newTestAPI(t, store)
	resp := api.Post("/v1/intake/process", notificationBody("paid rs 120 to chaiwala"))

	assert.Equal(t, http.StatusOK, resp.Code)

	var body ProcessNotificationResponseBody
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "chaiwala", body.Transaction.Counterparty)
	assert.Equal(t, "expense", body.Transaction.PaymentType)
	assert.Equal(t, "120", body.Transaction.Amount)
	assert.Equal(t, service.NoAlerts, body.AlertMessage)
	assert.Equal(t, service.PersistenceOK, body.PersistenceStatus)
	assert.Equal(t, 2025, body.Transaction.Timestamp.Year)
	assert.Equal(t, 13, body.Transaction.Timestamp.Hour)
}

func TestProcessNotification_BlankUserID(t *testing.T) {
	store := &mockBackend{}
	api := newTestAPI(t, store)

	body := notificationBody("paid rs 120 to chaiwala")
	body["userID"] = "  "
	resp := api.Post("/v1/intake/process", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	store.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
}

func TestProcessNotification_UnparseableMessage(t *testing.T) {
	store := &mockBackend{}
	api := newTestAPI(t, store)

	resp := api.Post("/v1/intake/process", notificationBody("your OTP is 445566"))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	store.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
}

func TestProcessNotification_PersistenceFailureStillOK(t *testing.T) {
	store := &mockBackend{}
	store.On("GetLimits", mock.Anything, "user-1").Return(nil, nil)
	store.On("GetSummary", mock.Anything, "user-1").
		Return(&service.SummaryAggregate{UserID: "user-1"}, nil)
	store.On("QueryTransactions", mock.Anything, "user-1", mock.Anything).Return(nil, nil)
	store.On("AppendTransaction", mock.Anything, mock.Anything).
		Return(assert.AnError)

	api := newTestAPI(t, store)
	resp := api.Post("/v1/intake/process", notificationBody("paid rs 120 to chaiwala"))

	assert.Equal(t, http.StatusOK, resp.Code)

	var body ProcessNotificationResponseBody
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Contains(t, body.PersistenceStatus, "append failed")
}
