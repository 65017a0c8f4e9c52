package actions

import (
	"context"

	"github.com/carson-networks/spendwatch/internal/parser"
	"github.com/carson-networks/spendwatch/internal/service"
)

// ProcessIntake runs one raw notification through the intake pipeline.
// Result is populated before the operator signals completion, so the caller
// may read it once Process returns.
type ProcessIntake struct {
	Input  parser.Input
	Result *service.ProcessResult
	IAction
}

func (a *ProcessIntake) Perform(ctx context.Context, svc *service.Service) error {
	result, err := svc.Intake.Process(ctx, a.Input)
	if err != nil {
		return err
	}
	a.Result = result
	return nil
}
