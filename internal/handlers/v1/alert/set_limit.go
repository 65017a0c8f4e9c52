package alert

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwatch/internal/operator"
	"github.com/carson-networks/spendwatch/internal/operator/actions"
	"github.com/carson-networks/spendwatch/internal/service"
)

// SetLimitBody is the request body for configuring a spend threshold.
type SetLimitBody struct {
	UserID string `json:"userID" required:"true" doc:"User the limit applies to"`
	Period string `json:"period" required:"true" enum:"daily,weekly,monthly,yearly" doc:"Aggregation period"`
	Limit  string `json:"limit" required:"true" doc:"Decimal threshold, 0 clears the limit"`
}

// SetLimitInput is the Huma input for configuring a spend threshold.
type SetLimitInput struct {
	Body SetLimitBody
}

// SetLimitOutput is the Huma output for configuring a spend threshold.
type SetLimitOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// SetLimitHandler handles PUT /v1/limits.
type SetLimitHandler struct {
	Operator *operator.OperatorDelegator
}

// NewSetLimitHandler creates a new SetLimitHandler.
func NewSetLimitHandler(op *operator.OperatorDelegator) *SetLimitHandler {
	return &SetLimitHandler{Operator: op}
}

// Register registers the set limit endpoint with the Huma API.
func (h *SetLimitHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-limit",
		Method:      http.MethodPut,
		Path:        "/v1/limits",
		Summary:     "Set spend limit",
		Description: "Configures the spend threshold for one period.",
		Tags:        []string{"Alerts"},
	}, h.handle)
}

func (h *SetLimitHandler) handle(ctx context.Context, input *SetLimitInput) (*SetLimitOutput, error) {
	limit, err := decimal.NewFromString(input.Body.Limit)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid limit", err)
	}

	action := &actions.SetLimit{
		UserID: input.Body.UserID,
		Period: service.Period(input.Body.Period),
		Limit:  limit,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		var invalidInput *service.InvalidInputError
		if errors.As(err, &invalidInput) {
			return nil, huma.NewError(http.StatusBadRequest, invalidInput.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to set limit", err)
	}

	return &SetLimitOutput{Status: http.StatusOK}, nil
}
