package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
)

// ReviewProofCommandHandler records the proof review. A rejection blocks
// further progress until the driver resubmits the rejected step.
type ReviewProofCommandHandler struct {
	rt Runtime
}

func NewReviewProofCommandHandler(rt Runtime) ReviewProofCommandHandler {
	return ReviewProofCommandHandler{rt: rt}
}

func (h ReviewProofCommandHandler) Handle(ctx context.Context, cmd ReviewProofCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateDelivery(ctx, h.rt, cmd.DeliveryID(), func(d *delivery.Delivery, now time.Time) error {
		if cmd.IsApproval() {
			return d.ApproveProof(cmd.Actor(), now)
		}
		return d.RejectProof(cmd.Actor(), cmd.Step(), cmd.Reason(), now)
	})
}
