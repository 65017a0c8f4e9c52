package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwatch/internal/service"
)

// AddPending records a payable or receivable. Created is populated before the
// operator signals completion.
type AddPending struct {
	Item    service.PendingItem
	Created *service.PendingItem
	IAction
}

func (a *AddPending) Perform(ctx context.Context, svc *service.Service) error {
	created, err := svc.Pending.Add(ctx, a.Item)
	if err != nil {
		return err
	}
	a.Created = created
	return nil
}

// DeletePending removes one pending item for a user.
type DeletePending struct {
	UserID    string
	PendingID uuid.UUID
	IAction
}

func (a *DeletePending) Perform(ctx context.Context, svc *service.Service) error {
	return svc.Pending.Delete(ctx, a.UserID, a.PendingID)
}
