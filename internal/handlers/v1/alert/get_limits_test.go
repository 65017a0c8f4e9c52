package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/spendwatch/internal/service"
)

func decimalFrom(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// mockLimitReader is a hand-written testify mock for limitReader.
type mockLimitReader struct {
	mock.Mock
}

func (m *mockLimitReader) GetLimits(ctx context.Context, userID string) (*service.LimitSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LimitSet), args.Error(1)
}

func (m *mockLimitReader) CheckAlerts(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func TestGetLimits_Success(t *testing.T) {
	svc := &mockLimitReader{}
	svc.On("GetLimits", mock.Anything, "user-1").Return(&service.LimitSet{
		UserID:  "user-1",
		Daily:   decimalFrom("500"),
		Monthly: decimalFrom("10000"),
	}, nil)

	_, api := humatest.New(t)
	NewGetLimitsHandler(svc).Register(api)

	resp := api.Get("/v1/limits/user-1")

	assert.Equal(t, http.StatusOK, resp.Code)

	var body GetLimitsResponseBody
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body.UserID)
	assert.Equal(t, "500", body.Daily)
	assert.Equal(t, "0", body.Weekly)
	assert.Equal(t, "10000", body.Monthly)
}

func TestGetLimits_StoreError(t *testing.T) {
	svc := &mockLimitReader{}
	svc.On("GetLimits", mock.Anything, "user-1").Return(nil, assert.AnError)

	_, api := humatest.New(t)
	NewGetLimitsHandler(svc).Register(api)

	resp := api.Get("/v1/limits/user-1")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestCheckAlerts_Success(t *testing.T) {
	svc := &mockLimitReader{}
	svc.On("CheckAlerts", mock.Anything, "user-1").
		Return("Daily limit exceeded", nil)

	_, api := humatest.New(t)
	NewCheckAlertsHandler(svc).Register(api)

	resp := api.Get("/v1/alerts/user-1")

	assert.Equal(t, http.StatusOK, resp.Code)

	var body CheckAlertsResponseBody
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Daily limit exceeded", body.AlertMessage)
}
