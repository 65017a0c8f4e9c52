package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwatch/internal/service"
)

// SetLimit configures one period threshold for a user.
type SetLimit struct {
	UserID string
	Period service.Period
	Limit  decimal.Decimal
	IAction
}

func (a *SetLimit) Perform(ctx context.Context, svc *service.Service) error {
	return svc.Limits.SetLimit(ctx, a.UserID, a.Period, a.Limit)
}
