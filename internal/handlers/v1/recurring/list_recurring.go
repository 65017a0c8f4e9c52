package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwatch/internal/logging"
	"github.com/carson-networks/spendwatch/internal/service"
)

// recurringDetector is the interface for recurring payment detection.
type recurringDetector interface {
	Detect(ctx context.Context, userID string) ([]service.RecurringCandidate, error)
}

// RecurringCandidatePayload is one detected repeating payment.
type RecurringCandidatePayload struct {
	Counterparty     string `json:"counterparty"`
	MedianAmount     string `json:"medianAmount"`
	Frequency        string `json:"frequency"`
	TransactionCount int    `json:"transactionCount"`
}

// ListRecurringInput is the Huma input for listing recurring payments.
type ListRecurringInput struct {
	UserID string `path:"userID" doc:"User to analyze"`
}

// ListRecurringResponseBody is the response body for listing recurring payments.
type ListRecurringResponseBody struct {
	Recurring []RecurringCandidatePayload `json:"recurring"`
}

// ListRecurringOutput is the Huma output for listing recurring payments.
type ListRecurringOutput struct {
	Body ListRecurringResponseBody
}

// ListRecurringHandler handles GET /v1/recurring/{userID}.
type ListRecurringHandler struct {
	Detector recurringDetector
}

// NewListRecurringHandler creates a new ListRecurringHandler.
func NewListRecurringHandler(detector recurringDetector) *ListRecurringHandler {
	return &ListRecurringHandler{Detector: detector}
}

// Register registers the recurring payments endpoint with the Huma API.
func (h *ListRecurringHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-recurring",
		Method:      http.MethodGet,
		Path:        "/v1/recurring/{userID}",
		Summary:     "List recurring payments",
		Description: "Detects repeating payment patterns in the user's expense history.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func (h *ListRecurringHandler) handle(ctx context.Context, input *ListRecurringInput) (*ListRecurringOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("detectRecurringMs")
	}
	candidates, err := h.Detector.Detect(ctx, input.UserID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to detect recurring payments", err)
	}

	resp := ListRecurringResponseBody{
		Recurring: make([]RecurringCandidatePayload, len(candidates)),
	}
	for i, candidate := range candidates {
		resp.Recurring[i] = RecurringCandidatePayload{
			Counterparty:     candidate.Counterparty,
			MedianAmount:     candidate.MedianAmount.StringFixed(2),
			Frequency:        candidate.Frequency,
			TransactionCount: candidate.TransactionCount,
		}
	}

	return &ListRecurringOutput{Body: resp}, nil
}
