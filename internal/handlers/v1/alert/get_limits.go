package alert

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwatch/internal/service"
)

// limitReader is the interface for reading configured limits.
type limitReader interface {
	GetLimits(ctx context.Context, userID string) (*service.LimitSet, error)
	CheckAlerts(ctx context.Context, userID string) (string, error)
}

// GetLimitsInput is the Huma input for reading a user's limits.
type GetLimitsInput struct {
	UserID string `path:"userID" doc:"User to read limits for"`
}

// GetLimitsResponseBody is the response body with the configured thresholds.
type GetLimitsResponseBody struct {
	UserID  string `json:"userID"`
	Daily   string `json:"daily"`
	Weekly  string `json:"weekly"`
	Monthly string `json:"monthly"`
	Yearly  string `json:"yearly"`
}

// GetLimitsOutput is the Huma output for reading a user's limits.
type GetLimitsOutput struct {
	Body GetLimitsResponseBody
}

// GetLimitsHandler handles GET /v1/limits/{userID}.
type GetLimitsHandler struct {
	LimitService limitReader
}

// NewGetLimitsHandler creates a new GetLimitsHandler.
func NewGetLimitsHandler(svc limitReader) *GetLimitsHandler {
	return &GetLimitsHandler{LimitService: svc}
}

// Register registers the get limits endpoint with the Huma API.
func (h *GetLimitsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-limits",
		Method:      http.MethodGet,
		Path:        "/v1/limits/{userID}",
		Summary:     "Get spend limits",
		Description: "Returns the configured spend thresholds for a user.",
		Tags:        []string{"Alerts"},
	}, h.handle)
}

func (h *GetLimitsHandler) handle(ctx context.Context, input *GetLimitsInput) (*GetLimitsOutput, error) {
	limits, err := h.LimitService.GetLimits(ctx, input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get limits", err)
	}

	return &GetLimitsOutput{
		Body: GetLimitsResponseBody{
			UserID:  limits.UserID,
			Daily:   limits.Daily.String(),
			Weekly:  limits.Weekly.String(),
			Monthly: limits.Monthly.String(),
			Yearly:  limits.Yearly.String(),
		},
	}, nil
}

// CheckAlertsInput is the Huma input for an on-demand alert check.
type CheckAlertsInput struct {
	UserID string `path:"userID" doc:"User to check alerts for"`
}

// CheckAlertsResponseBody carries the tiered alert text.
type CheckAlertsResponseBody struct {
	AlertMessage string `json:"alertMessage"`
}

// CheckAlertsOutput is the Huma output for an on-demand alert check.
type CheckAlertsOutput struct {
	Body CheckAlertsResponseBody
}

// CheckAlertsHandler handles GET /v1/alerts/{userID}.
type CheckAlertsHandler struct {
	LimitService limitReader
}

// NewCheckAlertsHandler creates a new CheckAlertsHandler.
func NewCheckAlertsHandler(svc limitReader) *CheckAlertsHandler {
	return &CheckAlertsHandler{LimitService: svc}
}

// Register registers the check alerts endpoint with the Huma API.
func (h *CheckAlertsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "check-alerts",
		Method:      http.MethodGet,
		Path:        "/v1/alerts/{userID}",
		Summary:     "Check alerts",
		Description: "Evaluates the configured thresholds against the current aggregates.",
		Tags:        []string{"Alerts"},
	}, h.handle)
}

func (h *CheckAlertsHandler) handle(ctx context.Context, input *CheckAlertsInput) (*CheckAlertsOutput, error) {
	message, err := h.LimitService.CheckAlerts(ctx, input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to check alerts", err)
	}

	return &CheckAlertsOutput{Body: CheckAlertsResponseBody{AlertMessage: message}}, nil
}
