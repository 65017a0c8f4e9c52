package pending

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwatch/internal/operator"
	"github.com/carson-networks/spendwatch/internal/operator/actions"
	"github.com/carson-networks/spendwatch/internal/service"
)

// pendingLister is the interface for reading pending items.
type pendingLister interface {
	List(ctx context.Context, userID string) ([]service.PendingItem, error)
}

// PendingItemPayload is one payable or receivable on the wire.
type PendingItemPayload struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type" enum:"payable,receivable"`
	PersonName  string `json:"personName"`
	CreatedAt   string `json:"createdAt"`
}

// CreatePendingBody is the request body for adding a pending item.
type CreatePendingBody struct {
	UserID      string `json:"userID" required:"true" doc:"Owner of the pending item"`
	Description string `json:"description" required:"true" doc:"What the amount is for"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount"`
	Type        string `json:"type" required:"true" enum:"payable,receivable" doc:"payable = user owes, receivable = user is owed"`
	PersonName  string `json:"personName" required:"true" doc:"The other party"`
}

// CreatePendingInput is the Huma input for adding a pending item.
type CreatePendingInput struct {
	Body CreatePendingBody
}

// CreatePendingOutput is the Huma output for adding a pending item.
type CreatePendingOutput struct {
	Body PendingItemPayload
}

// CreatePendingHandler handles POST /v1/pending.
type CreatePendingHandler struct {
	Operator *operator.OperatorDelegator
}

// NewCreatePendingHandler creates a new CreatePendingHandler.
func NewCreatePendingHandler(op *operator.OperatorDelegator) *CreatePendingHandler {
	return &CreatePendingHandler{Operator: op}
}

// Register registers the create pending endpoint with the Huma API.
func (h *CreatePendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-pending",
		Method:      http.MethodPost,
		Path:        "/v1/pending",
		Summary:     "Add pending item",
		Description: "Records a payable or receivable the user wants to track.",
		Tags:        []string{"Pending"},
	}, h.handle)
}

func (h *CreatePendingHandler) handle(ctx context.Context, input *CreatePendingInput) (*CreatePendingOutput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	action := &actions.AddPending{
		Item: service.PendingItem{
			UserID:     input.Body.UserID,
			Reason:     input.Body.Description,
			Amount:     amount,
			Payable:    input.Body.Type == "payable",
			PersonName: input.Body.PersonName,
		},
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		var invalidInput *service.InvalidInputError
		if errors.As(err, &invalidInput) {
			return nil, huma.NewError(http.StatusBadRequest, invalidInput.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to add pending item", err)
	}

	return &CreatePendingOutput{Body: toPayload(action.Created)}, nil
}

// ListPendingInput is the Huma input for listing pending items.
type ListPendingInput struct {
	UserID string `path:"userID" doc:"User to list pending items for"`
}

// ListPendingResponseBody is the response body for listing pending items.
type ListPendingResponseBody struct {
	Pending []PendingItemPayload `json:"pending"`
}

// ListPendingOutput is the Huma output for listing pending items.
type ListPendingOutput struct {
	Body ListPendingResponseBody
}

// ListPendingHandler handles GET /v1/pending/{userID}.
type ListPendingHandler struct {
	PendingService pendingLister
}

// NewListPendingHandler creates a new ListPendingHandler.
func NewListPendingHandler(svc pendingLister) *ListPendingHandler {
	return &ListPendingHandler{PendingService: svc}
}

// Register registers the list pending endpoint with the Huma API.
func (h *ListPendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-pending",
		Method:      http.MethodGet,
		Path:        "/v1/pending/{userID}",
		Summary:     "List pending items",
		Description: "Returns all tracked payables and receivables for a user.",
		Tags:        []string{"Pending"},
	}, h.handle)
}

func (h *ListPendingHandler) handle(ctx context.Context, input *ListPendingInput) (*ListPendingOutput, error) {
	items, err := h.PendingService.List(ctx, input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list pending items", err)
	}

	resp := ListPendingResponseBody{
		Pending: make([]PendingItemPayload, len(items)),
	}
	for i := range items {
		resp.Pending[i] = toPayload(&items[i])
	}
	return &ListPendingOutput{Body: resp}, nil
}

// DeletePendingInput is the Huma input for deleting a pending item.
type DeletePendingInput struct {
	UserID    string `path:"userID" doc:"Owner of the pending item"`
	PendingID string `path:"pendingID" doc:"Pending item UUID"`
}

// DeletePendingOutput is the Huma output for deleting a pending item.
type DeletePendingOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// DeletePendingHandler handles DELETE /v1/pending/{userID}/{pendingID}.
type DeletePendingHandler struct {
	Operator *operator.OperatorDelegator
}

// NewDeletePendingHandler creates a new DeletePendingHandler.
func NewDeletePendingHandler(op *operator.OperatorDelegator) *DeletePendingHandler {
	return &DeletePendingHandler{Operator: op}
}

// Register registers the delete pending endpoint with the Huma API.
func (h *DeletePendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-pending",
		Method:      http.MethodDelete,
		Path:        "/v1/pending/{userID}/{pendingID}",
		Summary:     "Delete pending item",
		Description: "Removes one tracked payable or receivable.",
		Tags:        []string{"Pending"},
	}, h.handle)
}

func (h *DeletePendingHandler) handle(ctx context.Context, input *DeletePendingInput) (*DeletePendingOutput, error) {
	pendingID, err := uuid.FromString(input.PendingID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid pendingID", err)
	}

	action := &actions.DeletePending{
		UserID:    input.UserID,
		PendingID: pendingID,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to delete pending item", err)
	}

	return &DeletePendingOutput{Status: http.StatusOK}, nil
}

func toPayload(item *service.PendingItem) PendingItemPayload {
	itemType := "receivable"
	if item.Payable {
		itemType = "payable"
	}
	return PendingItemPayload{
		ID:          item.ID.String(),
		Description: item.Reason,
		Amount:      item.Amount.String(),
		Type:        itemType,
		PersonName:  item.PersonName,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}
