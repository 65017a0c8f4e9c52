package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwatch/internal/service"
)

// summaryReader is the interface for reading rolling aggregates.
type summaryReader interface {
	GetSummary(ctx context.Context, userID string) (*service.SummaryAggregate, error)
}

// GetSummaryInput is the Huma input for reading a user's aggregates.
type GetSummaryInput struct {
	UserID string `path:"userID" doc:"User to read the summary for"`
}

// PeriodSumsPayload is the in/out/cashflow triple for one period.
type PeriodSumsPayload struct {
	In       string `json:"in"`
	Out      string `json:"out"`
	Cashflow string `json:"cashflow"`
}

// GetSummaryResponseBody is the response body with the rolling aggregates.
type GetSummaryResponseBody struct {
	UserID  string            `json:"userID"`
	Daily   PeriodSumsPayload `json:"daily"`
	Weekly  PeriodSumsPayload `json:"weekly"`
	Monthly PeriodSumsPayload `json:"monthly"`
	Yearly  PeriodSumsPayload `json:"yearly"`
}

// GetSummaryOutput is the Huma output for reading a user's aggregates.
type GetSummaryOutput struct {
	Body GetSummaryResponseBody
}

// GetSummaryHandler handles GET /v1/summary/{userID}.
type GetSummaryHandler struct {
	Store summaryReader
}

// NewGetSummaryHandler creates a new GetSummaryHandler.
func NewGetSummaryHandler(store summaryReader) *GetSummaryHandler {
	return &GetSummaryHandler{Store: store}
}

// Register registers the summary endpoint with the Huma API.
func (h *GetSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/v1/summary/{userID}",
		Summary:     "Get summary",
		Description: "Returns the rolling per-period income and spend aggregates.",
		Tags:        []string{"Summary"},
	}, h.handle)
}

func (h *GetSummaryHandler) handle(ctx context.Context, input *GetSummaryInput) (*GetSummaryOutput, error) {
	summary, err := h.Store.GetSummary(ctx, input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get summary", err)
	}

	return &GetSummaryOutput{
		Body: GetSummaryResponseBody{
			UserID: summary.UserID,
			Daily: PeriodSumsPayload{
				In:       summary.DayIn.String(),
				Out:      summary.DayOut.String(),
				Cashflow: summary.Cashflow(service.PeriodDaily).String(),
			},
			Weekly: PeriodSumsPayload{
				In:       summary.WeekIn.String(),
				Out:      summary.WeekOut.String(),
				Cashflow: summary.Cashflow(service.PeriodWeekly).String(),
			},
			Monthly: PeriodSumsPayload{
				In:       summary.MonthIn.String(),
				Out:      summary.MonthOut.String(),
				Cashflow: summary.Cashflow(service.PeriodMonthly).String(),
			},
			Yearly: PeriodSumsPayload{
				In:       summary.YearIn.String(),
				Out:      summary.YearOut.String(),
				Cashflow: summary.Cashflow(service.PeriodYearly).String(),
			},
		},
	}, nil
}
