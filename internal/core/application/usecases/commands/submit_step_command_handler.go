package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
)

// SubmitStepCommandHandler records a verification step. Progress is
// reported back to the driver with the result.
type SubmitStepCommandHandler struct {
	rt Runtime
}

func NewSubmitStepCommandHandler(rt Runtime) SubmitStepCommandHandler {
	return SubmitStepCommandHandler{rt: rt}
}

// StepOutcome is the step result together with the progress of the sequence
// the step belongs to.
type StepOutcome struct {
	Result   delivery.StepResult
	Progress delivery.Progress
}

// Handle submits the step. A rejected submission returns the result with its
// reason and the error; nothing is persisted then. An idempotent
// resubmission is accepted without a write.
func (h SubmitStepCommandHandler) Handle(ctx context.Context, cmd SubmitStepCommand) (StepOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return StepOutcome{}, err
	}

	var outcome StepOutcome
	keys := []string{ports.DeliveryLockKey(cmd.DeliveryID().String())}
	err := h.rt.run(ctx, keys, func(uow UoW, now time.Time, _ lockFunc) ([]kernel.Event, error) {
		deliveries := uow.DeliveryRepository()

		d, err := deliveries.Get(ctx, cmd.DeliveryID())
		if err != nil {
			return nil, err
		}

		result, err := d.SubmitStep(cmd.Actor(), cmd.Step(), cmd.Value(), now)
		outcome = StepOutcome{Result: result, Progress: d.Proof().Progress(cmd.Step().Sequence())}
		if err != nil {
			return nil, err
		}

		if len(d.DomainEvents()) == 0 {
			return nil, nil
		}

		if err = deliveries.Update(ctx, d); err != nil {
			return nil, err
		}

		return d.DomainEvents(), nil
	})

	return outcome, err
}
