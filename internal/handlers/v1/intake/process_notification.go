package intake

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwatch/internal/logging"
	"github.com/carson-networks/spendwatch/internal/operator"
	"github.com/carson-networks/spendwatch/internal/operator/actions"
	"github.com/carson-networks/spendwatch/internal/parser"
	"github.com/carson-networks/spendwatch/internal/service"
)

// ProcessNotificationBody is the raw notification payload from the mobile client.
type ProcessNotificationBody struct {
	UserID          string `json:"userID" required:"true" doc:"Owner of the notification"`
	Timestamp       string `json:"timestamp" required:"true" doc:"ISO 8601 notification time"`
	ApplicationName string `json:"applicationName" required:"true" doc:"App that raised the notification"`
	SenderName      string `json:"senderName,omitempty" doc:"Notification sender, if known"`
	RawMessage      string `json:"rawMessage" required:"true" doc:"Exact notification text"`
}

// ProcessNotificationInput is the Huma input for processing a notification.
type ProcessNotificationInput struct {
	Body ProcessNotificationBody
}

// TimestampPayload is the coarse transaction time on the wire.
type TimestampPayload struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	Hour  int `json:"hour"`
}

// TransactionPayload is the canonical transaction record shape at the boundary.
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

// ProcessNotificationResponseBody is the consolidated pipeline result.
type ProcessNotificationResponseBody struct {
	Transaction       TransactionPayload `json:"transaction"`
	AlertMessage      string             `json:"alertMessage"`
	AnomalyMessage    string             `json:"anomalyMessage"`
	PersistenceStatus string             `json:"persistenceStatus"`
}

// ProcessNotificationOutput is the Huma output for processing a notification.
type ProcessNotificationOutput struct {
	Body ProcessNotificationResponseBody
}

// ProcessNotificationHandler handles POST /v1/intake/process.
type ProcessNotificationHandler struct {
	Operator *operator.OperatorDelegator
}

// NewProcessNotificationHandler creates a new ProcessNotificationHandler.
func NewProcessNotificationHandler(op *operator.OperatorDelegator) *ProcessNotificationHandler {
	return &ProcessNotificationHandler{Operator: op}
}

// Register registers the intake endpoint with the Huma API.
func (h *ProcessNotificationHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "process-notification",
		Method:      http.MethodPost,
		Path:        "/v1/intake/process",
		Summary:     "Process notification",
		Description: "Parses a raw payment notification and runs it through the analytics pipeline.",
		Tags:        []string{"Intake"},
	}, h.handle)
}

func (h *ProcessNotificationHandler) handle(ctx context.Context, input *ProcessNotificationInput) (*ProcessNotificationOutput, error) {
	logData := logging.GetLogData(ctx)

	action := &actions.ProcessIntake{
		Input: parser.Input{
			UserID:          input.Body.UserID,
			Timestamp:       input.Body.Timestamp,
			ApplicationName: input.Body.ApplicationName,
			SenderName:      input.Body.SenderName,
			RawMessage:      input.Body.RawMessage,
		},
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		var invalidInput *service.InvalidInputError
		if errors.As(err, &invalidInput) {
			return nil, huma.NewError(http.StatusBadRequest, invalidInput.Error())
		}
		var parseErr *service.ParseError
		if errors.As(err, &parseErr) {
			return nil, huma.NewError(http.StatusUnprocessableEntity, "message could not be parsed", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to process notification", err)
	}

	result := action.Result
	if logData != nil {
		logData.AddData("anomaly", result.Transaction.Anomaly)
		logData.AddData("persistenceStatus", result.PersistenceStatus)
	}

	return &ProcessNotificationOutput{
		Body: ProcessNotificationResponseBody{
			Transaction:       toPayload(result.Transaction),
			AlertMessage:      result.AlertMessage,
			AnomalyMessage:    result.AnomalyMessage,
			PersistenceStatus: result.PersistenceStatus,
		},
	}, nil
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
