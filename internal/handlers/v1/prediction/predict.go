package prediction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwatch/internal/service"
)

// predictor is the interface for spending and cashflow projections.
type predictor interface {
	PredictSpending(ctx context.Context, userID string, timeframe service.Period) (*service.SpendingPrediction, error)
	PredictCashflow(ctx context.Context, userID string, timeframe service.Period) (*service.CashflowPrediction, error)
}

// PredictSpendingInput is the Huma input for a spending projection.
type PredictSpendingInput struct {
	UserID    string `path:"userID" doc:"User to predict for"`
	Timeframe string `query:"timeframe" enum:"daily,weekly,monthly" default:"monthly" doc:"Projection window"`
}

// PredictSpendingResponseBody is the projected expense plus trend.
type PredictSpendingResponseBody struct {
	PredictedExpense string `json:"predictedExpense"`
	TrendPercent     string `json:"trendPercent"`
}

// PredictSpendingOutput is the Huma output for a spending projection.
type PredictSpendingOutput struct {
	Body PredictSpendingResponseBody
}

// PredictSpendingHandler handles GET /v1/prediction/{userID}/spending.
type PredictSpendingHandler struct {
	Predictor predictor
}

// NewPredictSpendingHandler creates a new PredictSpendingHandler.
func NewPredictSpendingHandler(p predictor) *PredictSpendingHandler {
	return &PredictSpendingHandler{Predictor: p}
}

// Register registers the spending prediction endpoint with the Huma API.
func (h *PredictSpendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "predict-spending",
		Method:      http.MethodGet,
		Path:        "/v1/prediction/{userID}/spending",
		Summary:     "Predict spending",
		Description: "Projects future expenses from the last 90 days of history.",
		Tags:        []string{"Prediction"},
	}, h.handle)
}

func (h *PredictSpendingHandler) handle(ctx context.Context, input *PredictSpendingInput) (*PredictSpendingOutput, error) {
	prediction, err := h.Predictor.PredictSpending(ctx, input.UserID, service.Period(input.Timeframe))
	if err != nil {
		return nil, mapPredictionError(err, "failed to predict spending")
	}

	return &PredictSpendingOutput{
		Body: PredictSpendingResponseBody{
			PredictedExpense: prediction.PredictedExpense.StringFixed(2),
			TrendPercent:     prediction.TrendPercent.StringFixed(2),
		},
	}, nil
}

// PredictCashflowInput is the Huma input for a cashflow projection.
type PredictCashflowInput struct {
	UserID    string `path:"userID" doc:"User to predict for"`
	Timeframe string `query:"timeframe" enum:"daily,weekly,monthly" default:"monthly" doc:"Projection window"`
}

// PredictCashflowResponseBody is the projected net cashflow.
type PredictCashflowResponseBody struct {
	PredictedCashflow string `json:"predictedCashflow"`
}

// PredictCashflowOutput is the Huma output for a cashflow projection.
type PredictCashflowOutput struct {
	Body PredictCashflowResponseBody
}

// PredictCashflowHandler handles GET /v1/prediction/{userID}/cashflow.
type PredictCashflowHandler struct {
	Predictor predictor
}

// NewPredictCashflowHandler creates a new PredictCashflowHandler.
func NewPredictCashflowHandler(p predictor) *PredictCashflowHandler {
	return &PredictCashflowHandler{Predictor: p}
}

// Register registers the cashflow prediction endpoint with the Huma API.
func (h *PredictCashflowHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "predict-cashflow",
		Method:      http.MethodGet,
		Path:        "/v1/prediction/{userID}/cashflow",
		Summary:     "Predict cashflow",
		Description: "Projects net in-minus-out from the last 90 days of history.",
		Tags:        []string{"Prediction"},
	}, h.handle)
}

func (h *PredictCashflowHandler) handle(ctx context.Context, input *PredictCashflowInput) (*PredictCashflowOutput, error) {
	prediction, err := h.Predictor.PredictCashflow(ctx, input.UserID, service.Period(input.Timeframe))
	if err != nil {
		return nil, mapPredictionError(err, "failed to predict cashflow")
	}

	return &PredictCashflowOutput{
		Body: PredictCashflowResponseBody{
			PredictedCashflow: prediction.PredictedCashflow.StringFixed(2),
		},
	}, nil
}

func mapPredictionError(err error, fallback string) error {
	if errors.Is(err, service.ErrInsufficientData) {
		return huma.NewError(http.StatusConflict, service.ErrInsufficientData.Error())
	}
	var invalidInput *service.InvalidInputError
	if errors.As(err, &invalidInput) {
		return huma.NewError(http.StatusBadRequest, invalidInput.Error())
	}
	return huma.NewError(http.StatusInternalServerError, fallback, err)
}
