package transactions

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwatch/internal/logging"
	"github.com/carson-networks/spendwatch/internal/service"
)

// transactionLister is the interface for reading the transaction log.
type transactionLister interface {
	List(ctx context.Context, userID string, filter service.TransactionFilter) ([]service.Transaction, error)
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	UserID       string `path:"userID" doc:"User to list transactions for"`
	Type         string `query:"type" doc:"Filter by payment type, income or expense"`
	Since        string `query:"since" doc:"RFC 3339 lower bound on creation time"`
	Until        string `query:"until" doc:"RFC 3339 upper bound (exclusive) on creation time"`
	Counterparty string `query:"counterparty" doc:"Exact counterparty match"`
}

// TimestampPayload is the coarse transaction time on the wire.
type TimestampPayload struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	Hour  int `json:"hour"`
}

// TransactionPayload is one transaction record on the wire.
type TransactionPayload struct {
	ID            string           `json:"id"`
	Timestamp     TimestampPayload `json:"timestamp"`
	Counterparty  string           `json:"counterparty"`
	PaymentMethod string           `json:"paymentMethod"`
	PaymentType   string           `json:"paymentType"`
	Amount        string           `json:"amount"`
	Category      string           `json:"category"`
	Message       string           `json:"message"`
	Anomaly       bool             `json:"anomaly"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []TransactionPayload `json:"transactions" doc:"Matching transactions, oldest first"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// ListTransactionsHandler handles GET /v1/transactions/{userID}.
type ListTransactionsHandler struct {
	History transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(history transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{History: history}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/{userID}",
		Summary:     "List transactions",
		Description: "Returns a user's transactions, optionally filtered by type, time range and counterparty.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseFilter(input *ListTransactionsInput) (service.TransactionFilter, error) {
	var filter service.TransactionFilter

	switch input.Type {
	case "":
	case string(service.TypeIncome), string(service.TypeExpense):
		paymentType := service.PaymentType(input.Type)
		filter.PaymentType = &paymentType
	default:
		return filter, huma.NewError(http.StatusBadRequest, "type must be income or expense")
	}
	if input.Since != "" {
		since, err := time.Parse(time.RFC3339, input.Since)
		if err != nil {
			return filter, huma.NewError(http.StatusBadRequest, "invalid since", err)
		}
		filter.Since = &since
	}
	if input.Until != "" {
		until, err := time.Parse(time.RFC3339, input.Until)
		if err != nil {
			return filter, huma.NewError(http.StatusBadRequest, "invalid until", err)
		}
		filter.Until = &until
	}
	if input.Counterparty != "" {
		filter.Counterparty = &input.Counterparty
	}

	return filter, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	filter, err := parseFilter(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	records, err := h.History.List(ctx, input.UserID, filter)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list transactions", err)
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]TransactionPayload, len(records)),
	}
	for i := range records {
		resp.Transactions[i] = toPayload(&records[i])
	}
	return &ListTransactionsOutput{Body: resp}, nil
}

func toPayload(tx *service.Transaction) TransactionPayload {
	return TransactionPayload{
		ID: tx.ID.String(),
		Timestamp: TimestampPayload{
			Year:  tx.Timestamp.Year,
			Month: tx.Timestamp.Month,
			Day:   tx.Timestamp.Day,
			Hour:  tx.Timestamp.Hour,
		},
		Counterparty:  tx.Counterparty,
		PaymentMethod: string(tx.PaymentMethod),
		PaymentType:   string(tx.PaymentType),
		Amount:        tx.Amount.String(),
		Category:      tx.Category,
		Message:       tx.Message,
		Anomaly:       tx.Anomaly,
	}
}
