package commands_test

import (
	"errors"
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceDeliveryCommand(t *testing.T) {
	t.Run("should accept normal targets", func(t *testing.T) {
		for _, target := range []delivery.Status{
			delivery.AwaitingPickup, delivery.InTransit, delivery.AwaitingBuyerConfirmation, delivery.Delivered,
		} {
			cmd, err := commands.NewAdvanceDeliveryCommand(kernel.NewUUID(), target, admin(t))
			require.NoError(t, err)
			assert.Equal(t, target, cmd.Target())
		}
	})

	t.Run("should reject dispute statuses", func(t *testing.T) {
		for _, target := range []delivery.Status{delivery.Disputed, delivery.Refunded, delivery.Assigned} {
			_, err := commands.NewAdvanceDeliveryCommand(kernel.NewUUID(), target, admin(t))
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should reject a zero actor", func(t *testing.T) {
		_, err := commands.NewAdvanceDeliveryCommand(kernel.NewUUID(), delivery.InTransit, delivery.Actor{})
		require.Error(t, err)
	})
}

func TestAdvanceDeliveryCommandHandler_Handle(t *testing.T) {
	t.Run("should start transit after complete pickup", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		drv, v := newFleet(t)
		d := awaitingPickup(t, drv, v)
		for i, value := range []string{"1234", "media://goods/1", "media://id/1", "media://selfie/1"} {
			_, err := d.SubmitStep(delivery.DriverActor(drv.ID()), delivery.PickupSteps()[i], value, now)
			require.NoError(t, err)
		}
		d.ClearDomainEvents()

		cmd, err := commands.NewAdvanceDeliveryCommand(d.ID(), delivery.InTransit, delivery.DriverActor(drv.ID()))
		require.NoError(t, err)

		e.expectTx(ctx)
		e.deliveries.On("Get", ctx, d.ID()).Return(d, nil).Once()
		e.deliveries.On("Update", ctx, d).Return(nil).Once()
		e.publisher.On("Publish", ctx, mock.MatchedBy(func(events []kernel.Event) bool {
			return len(events) == 1 && events[0].EventType() == delivery.EventTypeStatusChanged
		})).Return(nil).Once()

		require.NoError(t, commands.NewAdvanceDeliveryCommandHandler(e.rt).Handle(ctx, cmd))

		e.assertExpectations(t)
		assert.Equal(t, delivery.InTransit, d.Status())
	})

	t.Run("should refuse transit with incomplete pickup", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		drv, v := newFleet(t)
		d := awaitingPickup(t, drv, v)

		cmd, err := commands.NewAdvanceDeliveryCommand(d.ID(), delivery.InTransit, delivery.DriverActor(drv.ID()))
		require.NoError(t, err)

		e.expectFailedTx(ctx)
		e.deliveries.On("Get", ctx, d.ID()).Return(d, nil).Once()

		err = commands.NewAdvanceDeliveryCommandHandler(e.rt).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
		assert.Equal(t, delivery.AwaitingPickup, d.Status())
		e.assertExpectations(t)
	})

	t.Run("should surface integrity faults from the repository", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		id := kernel.NewUUID()
		cmd, err := commands.NewAdvanceDeliveryCommand(id, delivery.Delivered, buyerActor(t))
		require.NoError(t, err)

		fault := errs.NewDataIntegrityError("delivery", id.String(), errors.New("timeline is empty"))
		e.expectFailedTx(ctx)
		e.deliveries.On("Get", ctx, id).Return(nil, fault).Once()

		err = commands.NewAdvanceDeliveryCommandHandler(e.rt).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrDataIntegrity)
		e.assertExpectations(t)
	})
}

func TestSubmitStepCommandHandler_Handle(t *testing.T) {
	t.Run("should record the step and report progress", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		drv, v := newFleet(t)
		d := awaitingPickup(t, drv, v)

		cmd, err := commands.NewSubmitStepCommand(d.ID(), delivery.StepPickupCode, "4821", delivery.DriverActor(drv.ID()))
		require.NoError(t, err)

		e.expectTx(ctx)
		e.deliveries.On("Get", ctx, d.ID()).Return(d, nil).Once()
		e.deliveries.On("Update", ctx, d).Return(nil).Once()
		e.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		outcome, err := commands.NewSubmitStepCommandHandler(e.rt).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, outcome.Result.Accepted)
		assert.Equal(t, "1/4", outcome.Progress.String())
		e.assertExpectations(t)
	})

	t.Run("should not write an idempotent resubmission", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		drv, v := newFleet(t)
		d := awaitingPickup(t, drv, v)
		_, err := d.SubmitStep(delivery.DriverActor(drv.ID()), delivery.StepPickupCode, "4821", now)
		require.NoError(t, err)
		d.ClearDomainEvents()

		cmd, err := commands.NewSubmitStepCommand(d.ID(), delivery.StepPickupCode, "4821", delivery.DriverActor(drv.ID()))
		require.NoError(t, err)

		e.expectTx(ctx)
		e.deliveries.On("Get", ctx, d.ID()).Return(d, nil).Once()

		outcome, err := commands.NewSubmitStepCommandHandler(e.rt).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, outcome.Result.Accepted)
		assert.Equal(t, delivery.ReasonAlreadyCompleted, outcome.Result.Reason)
		e.deliveries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		e.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("should reject a malformed pickup code with its reason", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		drv, v := newFleet(t)
		d := awaitingPickup(t, drv, v)

		cmd, err := commands.NewSubmitStepCommand(d.ID(), delivery.StepPickupCode, "12a4", delivery.DriverActor(drv.ID()))
		require.NoError(t, err)

		e.expectFailedTx(ctx)
		e.deliveries.On("Get", ctx, d.ID()).Return(d, nil).Once()

		outcome, err := commands.NewSubmitStepCommandHandler(e.rt).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, outcome.Result.Accepted)
		assert.NotEmpty(t, outcome.Result.Reason)
		assert.Equal(t, "0/4", outcome.Progress.String())
		e.assertExpectations(t)
	})
}

func TestDisputeCommandHandlers(t *testing.T) {
	t.Run("should raise and resolve a dispute", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		drv, v := newFleet(t)
		d := inTransit(t, drv, v)

		raise, err := commands.NewRaiseDisputeCommand(d.ID(), "parcel damaged", buyerActor(t))
		require.NoError(t, err)

		e.factory.On("Create").Return(e.uow).Twice()
		e.uow.On("Begin", ctx).Return(nil).Twice()
		e.uow.On("Commit", ctx).Return(nil).Twice()
		e.uow.On("Rollback", ctx).Return(nil).Twice()
		e.deliveries.On("Get", ctx, d.ID()).Return(d, nil).Twice()
		e.deliveries.On("Update", ctx, d).Return(nil).Twice()
		e.publisher.On("Publish", ctx, mock.Anything).Return(nil).Twice()

		require.NoError(t, commands.NewRaiseDisputeCommandHandler(e.rt).Handle(ctx, raise))
		assert.Equal(t, delivery.Disputed, d.Status())
		assert.True(t, d.IsActive())
		d.ClearDomainEvents()

		merchant, err := delivery.NewActor(delivery.RoleMerchant, "Spice Store")
		require.NoError(t, err)
		resolve, err := commands.NewResolveDisputeCommand(d.ID(), delivery.Refunded, "refund issued", merchant)
		require.NoError(t, err)

		require.NoError(t, commands.NewResolveDisputeCommandHandler(e.rt).Handle(ctx, resolve))
		assert.Equal(t, delivery.Refunded, d.Status())
		assert.Len(t, d.PastDisputes(), 1)
		e.assertExpectations(t)
	})

	t.Run("should refuse a dispute before transit", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		drv, v := newFleet(t)
		d := awaitingPickup(t, drv, v)

		raise, err := commands.NewRaiseDisputeCommand(d.ID(), "late", buyerActor(t))
		require.NoError(t, err)

		e.expectFailedTx(ctx)
		e.deliveries.On("Get", ctx, d.ID()).Return(d, nil).Once()

		err = commands.NewRaiseDisputeCommandHandler(e.rt).Handle(ctx, raise)

		require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
		e.assertExpectations(t)
	})
}

func TestReviewProofCommandHandler_Handle(t *testing.T) {
	t.Run("should reject a photo and block transit", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		drv, v := newFleet(t)
		d := awaitingPickup(t, drv, v)
		for i, value := range []string{"1234", "media://goods/1", "media://id/1", "media://selfie/1"} {
			_, err := d.SubmitStep(delivery.DriverActor(drv.ID()), delivery.PickupSteps()[i], value, now)
			require.NoError(t, err)
		}
		d.ClearDomainEvents()

		cmd, err := commands.NewRejectProofCommand(d.ID(), delivery.StepGoodsPhoto, "blurry", admin(t))
		require.NoError(t, err)
		assert.False(t, cmd.IsApproval())

		e.expectTx(ctx)
		e.deliveries.On("Get", ctx, d.ID()).Return(d, nil).Once()
		e.deliveries.On("Update", ctx, d).Return(nil).Once()
		e.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		require.NoError(t, commands.NewReviewProofCommandHandler(e.rt).Handle(ctx, cmd))

		assert.True(t, d.Proof().IsRejected())
		require.ErrorIs(t, d.StartTransit(delivery.DriverActor(drv.ID()), now), errs.ErrProofRejected)
		e.assertExpectations(t)
	})

	t.Run("should not let drivers review", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv()
		drv, v := newFleet(t)
		d := awaitingPickup(t, drv, v)

		cmd, err := commands.NewApproveProofCommand(d.ID(), delivery.DriverActor(drv.ID()))
		require.NoError(t, err)

		e.expectFailedTx(ctx)
		e.deliveries.On("Get", ctx, d.ID()).Return(d, nil).Once()

		err = commands.NewReviewProofCommandHandler(e.rt).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrActorNotAllowed)
	})
}
