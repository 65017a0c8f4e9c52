package prediction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwatch/internal/service"
)

// trendReader is the interface for spending trend series.
type trendReader interface {
	DailySpendingTrend(ctx context.Context, userID string) ([]service.TrendPoint, error)
	MonthlySpendingTrend(ctx context.Context, userID string) ([]service.TrendPoint, error)
}

// TrendPointPayload is one bucket of a trend series.
type TrendPointPayload struct {
	Bucket string `json:"bucket"`
	Amount string `json:"amount"`
}

// SpendingTrendInput is the Huma input for a trend series.
type SpendingTrendInput struct {
	UserID string `path:"userID" doc:"User to read the trend for"`
}

// SpendingTrendResponseBody is a trend series, oldest bucket first.
type SpendingTrendResponseBody struct {
	Trend []TrendPointPayload `json:"trend"`
}

// SpendingTrendOutput is the Huma output for a trend series.
type SpendingTrendOutput struct {
	Body SpendingTrendResponseBody
}

// DailyTrendHandler handles GET /v1/trends/{userID}/daily.
type DailyTrendHandler struct {
	Trends trendReader
}

// NewDailyTrendHandler creates a new DailyTrendHandler.
func NewDailyTrendHandler(trends trendReader) *DailyTrendHandler {
	return &DailyTrendHandler{Trends: trends}
}

// Register registers the daily trend endpoint with the Huma API.
func (h *DailyTrendHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "daily-spending-trend",
		Method:      http.MethodGet,
		Path:        "/v1/trends/{userID}/daily",
		Summary:     "Daily spending trend",
		Description: "Returns per-day expense totals for the last seven days.",
		Tags:        []string{"Prediction"},
	}, h.handle)
}

func (h *DailyTrendHandler) handle(ctx context.Context, input *SpendingTrendInput) (*SpendingTrendOutput, error) {
	points, err := h.Trends.DailySpendingTrend(ctx, input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to read daily trend", err)
	}
	return &SpendingTrendOutput{Body: toTrendBody(points)}, nil
}

// MonthlyTrendHandler handles GET /v1/trends/{userID}/monthly.
type MonthlyTrendHandler struct {
	Trends trendReader
}

// NewMonthlyTrendHandler creates a new MonthlyTrendHandler.
func NewMonthlyTrendHandler(trends trendReader) *MonthlyTrendHandler {
	return &MonthlyTrendHandler{Trends: trends}
}

// Register registers the monthly trend endpoint with the Huma API.
func (h *MonthlyTrendHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "monthly-spending-trend",
		Method:      http.MethodGet,
		Path:        "/v1/trends/{userID}/monthly",
		Summary:     "Monthly spending trend",
		Description: "Returns per-month expense totals for the last twelve months.",
		Tags:        []string{"Prediction"},
	}, h.handle)
}

func (h *MonthlyTrendHandler) handle(ctx context.Context, input *SpendingTrendInput) (*SpendingTrendOutput, error) {
	points, err := h.Trends.MonthlySpendingTrend(ctx, input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to read monthly trend", err)
	}
	return &SpendingTrendOutput{Body: toTrendBody(points)}, nil
}

func toTrendBody(points []service.TrendPoint) SpendingTrendResponseBody {
	body := SpendingTrendResponseBody{
		Trend: make([]TrendPointPayload, len(points)),
	}
	for i, point := range points {
		body.Trend[i] = TrendPointPayload{
			Bucket: point.Bucket,
			Amount: point.Amount.StringFixed(2),
		}
	}
	return body
}
