package delivery_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDelivery(t *testing.T) {
	t.Run("should start assigned without a driver", func(t *testing.T) {
		d := newDelivery(t)

		require.NoError(t, d.Validate())
		assert.Equal(t, delivery.Assigned, d.Status())
		assert.Nil(t, d.Driver())
		assert.Nil(t, d.Vehicle())
		assert.True(t, d.IsActive())
		assert.False(t, d.HasExpectedPickupCode())
		assert.Equal(t, "120.50 INR", d.Payout().String())
		assert.Equal(t, delivery.Progress{Sequence: delivery.SequencePickup, Completed: 0, Total: 4}, d.Progress())

		entries := d.Timeline().Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, delivery.Assigned, entries[0].Status())
		assert.Equal(t, t0, entries[0].At())
		assert.Equal(t, "delivery created", entries[0].Note())
		assert.Equal(t, "system:orders", entries[0].Actor())

		assert.Equal(t, []string{delivery.EventTypeCreated}, eventTypes(d))
	})

	t.Run("should require an order id", func(t *testing.T) {
		payout, _ := kernel.NewMoney(100, "INR")
		d, err := delivery.NewDelivery(kernel.NewUUID(), "  ",
			newParty(t, "M", "+919800000001", 1, 1), newParty(t, "B", "+919800000002", 1, 1),
			payout, "", t0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, d)
		assert.Contains(t, err.Error(), "order id")
	})

	t.Run("should join every field error", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.UUID{}, "ORD-1", kernel.Party{}, kernel.Party{}, kernel.Money{}, "", t0)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "merchant")
		assert.Contains(t, err.Error(), "buyer")
		assert.Contains(t, err.Error(), "payout")
	})

	t.Run("should reject a malformed expected pickup code", func(t *testing.T) {
		payout, _ := kernel.NewMoney(100, "INR")
		_, err := delivery.NewDelivery(kernel.NewUUID(), "ORD-1",
			newParty(t, "M", "+919800000001", 1, 1), newParty(t, "B", "+919800000002", 1, 1),
			payout, "12a4", t0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var d delivery.Delivery
		require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDelivery_AssignDriver(t *testing.T) {
	t.Run("should attach a driver without a vehicle while assigned", func(t *testing.T) {
		d := newDelivery(t)
		d.ClearDomainEvents()
		driver := kernel.NewUUID()

		require.NoError(t, d.AssignDriver(admin(t), driver, nil, at(1)))

		require.NotNil(t, d.Driver())
		assert.True(t, d.Driver().IsEqual(driver))
		assert.Nil(t, d.Vehicle())
		assert.Equal(t, delivery.Assigned, d.Status())
		assert.Equal(t, 1, d.Timeline().Len())

		events := d.DomainEvents()
		require.Len(t, events, 1)
		assigned, ok := events[0].(delivery.DriverAssigned)
		require.True(t, ok)
		assert.True(t, assigned.DriverID.IsEqual(driver))
		assert.Nil(t, assigned.PreviousDriverID)
		assert.False(t, assigned.PickupReset)
	})

	t.Run("should be a no-op for the same driver and vehicle", func(t *testing.T) {
		f := assigned(t)
		before := f.d.UpdatedAt()

		vehicle := f.vehicle
		require.NoError(t, f.d.AssignDriver(admin(t), f.driver, &vehicle, at(5)))

		assert.Empty(t, f.d.DomainEvents())
		assert.Equal(t, before, f.d.UpdatedAt())
	})

	t.Run("should refuse drivers buyers and merchants", func(t *testing.T) {
		for _, a := range []delivery.Actor{delivery.DriverActor(kernel.NewUUID()), buyer(t), merchant(t)} {
			d := newDelivery(t)

			err := d.AssignDriver(a, kernel.NewUUID(), nil, at(1))

			require.ErrorIs(t, err, errs.ErrActorNotAllowed)
			assert.Nil(t, d.Driver())
		}
	})

	t.Run("should require a vehicle in awaiting pickup", func(t *testing.T) {
		f := awaitingPickup(t)

		err := f.d.AssignDriver(admin(t), kernel.NewUUID(), nil, at(5))

		require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
		assert.True(t, f.d.Driver().IsEqual(f.driver))
	})

	t.Run("should reset pickup proof when the driver changes", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 2)
		f.d.ClearDomainEvents()
		next := kernel.NewUUID()

		require.NoError(t, f.d.AssignDriver(admin(t), next, &f.vehicle, at(8)))

		assert.Equal(t, delivery.Proof{}, f.d.Proof())
		assert.Equal(t, 0, f.d.Progress().Completed)
		assert.Equal(t, delivery.AwaitingPickup, f.d.Status())

		events := f.d.DomainEvents()
		require.Len(t, events, 1)
		ev := events[0].(delivery.DriverAssigned)
		assert.True(t, ev.PickupReset)
		require.NotNil(t, ev.PreviousDriverID)
		assert.True(t, ev.PreviousDriverID.IsEqual(f.driver))

		_, err := f.d.SubmitStep(f.driverActor(), delivery.StepPickupCode, "1234", at(9))
		require.ErrorIs(t, err, errs.ErrActorNotAllowed)
	})

	t.Run("should keep pickup proof when only the vehicle changes", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 2)
		other := kernel.NewUUID()

		require.NoError(t, f.d.AssignDriver(admin(t), f.driver, &other, at(8)))

		assert.Equal(t, 2, f.d.Progress().Completed)
		assert.True(t, f.d.Vehicle().IsEqual(other))
	})

	t.Run("should close the window once in transit", func(t *testing.T) {
		f := inTransit(t)
		other := kernel.NewUUID()

		err := f.d.AssignDriver(admin(t), other, &f.vehicle, at(11))

		require.ErrorIs(t, err, errs.ErrReassignmentWindowClosed)
		assert.True(t, f.d.Driver().IsEqual(f.driver))
		assert.Empty(t, f.d.DomainEvents())
		require.ErrorIs(t, f.d.CanReassign(), errs.ErrReassignmentWindowClosed)
	})
}

func TestDelivery_SubmitStep(t *testing.T) {
	t.Run("should reject pickup code 12a4 and keep state", func(t *testing.T) {
		f := awaitingPickup(t)
		before := f.d.Snapshot()

		res, err := f.d.SubmitStep(f.driverActor(), delivery.StepPickupCode, "12a4", at(3))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
		assert.False(t, res.Accepted)
		assert.NotEmpty(t, res.Reason)
		assert.Equal(t, delivery.AwaitingPickup, f.d.Status())
		assert.Equal(t, "0/4", f.d.Progress().String())
		assert.Equal(t, before, f.d.Snapshot())
		assert.Empty(t, f.d.DomainEvents())
	})

	t.Run("should reject codes that are not exactly four digits", func(t *testing.T) {
		for _, code := range []string{"", "123", "12345", "１２３４", "12 4"} {
			require.ErrorIs(t, delivery.ValidatePickupCode(code), errs.ErrValueIsInvalid, code)
		}
		require.NoError(t, delivery.ValidatePickupCode("0042"))
	})

	t.Run("should record a valid pickup code", func(t *testing.T) {
		f := awaitingPickup(t)

		res, err := f.d.SubmitStep(f.driverActor(), delivery.StepPickupCode, " 1234 ", at(3))

		require.NoError(t, err)
		assert.Equal(t, delivery.StepResult{Step: delivery.StepPickupCode, Accepted: true}, res)
		assert.Equal(t, "1234", f.d.Proof().PickupCode())
		assert.True(t, f.d.Proof().PickupVerified())
		assert.Equal(t, "1/4", f.d.Progress().String())
		assert.Equal(t, []string{delivery.EventTypeStepCompleted}, eventTypes(f.d))
	})

	t.Run("should match the code issued by the merchant", func(t *testing.T) {
		d := newDeliveryWithCode(t, "ORD-7", "4821")
		driver, vehicle := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, d.AssignDriver(admin(t), driver, &vehicle, at(1)))
		assert.True(t, d.HasExpectedPickupCode())

		_, err := d.SubmitStep(delivery.DriverActor(driver), delivery.StepPickupCode, "1234", at(2))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, d.Proof().PickupVerified())

		_, err = d.SubmitStep(delivery.DriverActor(driver), delivery.StepPickupCode, "4821", at(3))
		require.NoError(t, err)
	})

	t.Run("should enforce step order", func(t *testing.T) {
		f := awaitingPickup(t)

		_, err := f.d.SubmitStep(f.driverActor(), delivery.StepGoodsPhoto, "media://goods/1", at(3))
		require.ErrorIs(t, err, errs.ErrOutOfOrderStep)
		assert.Contains(t, err.Error(), "goods_photo requires pickup_code first")

		submitPickup(t, f, 2)
		_, err = f.d.SubmitStep(f.driverActor(), delivery.StepDriverSelfie, "media://selfie/1", at(6))
		require.ErrorIs(t, err, errs.ErrOutOfOrderStep)
		assert.Equal(t, "2/4", f.d.Progress().String())
	})

	t.Run("should treat a completed step as an idempotent no-op", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 1)
		f.d.ClearDomainEvents()
		timelineLen := f.d.Timeline().Len()

		res, err := f.d.SubmitStep(f.driverActor(), delivery.StepPickupCode, "9999", at(4))

		require.NoError(t, err)
		assert.True(t, res.Accepted)
		assert.Equal(t, delivery.ReasonAlreadyCompleted, res.Reason)
		assert.Equal(t, "1234", f.d.Proof().PickupCode())
		assert.Equal(t, timelineLen, f.d.Timeline().Len())
		assert.Equal(t, "1/4", f.d.Progress().String())
		assert.Empty(t, f.d.DomainEvents())
	})

	t.Run("should accept a repeated delivery photo after delivered as a no-op", func(t *testing.T) {
		f := awaitingConfirmation(t)
		require.NoError(t, f.d.ConfirmDelivery(buyer(t), at(30)))
		f.d.ClearDomainEvents()
		before := f.d.Snapshot()

		res, err := f.d.SubmitStep(f.driverActor(), delivery.StepDeliveryPhoto, "media://drop/2", at(31))

		require.NoError(t, err)
		assert.Equal(t, delivery.StepResult{Step: delivery.StepDeliveryPhoto, Accepted: true, Reason: delivery.ReasonAlreadyCompleted}, res)
		assert.Equal(t, delivery.Delivered, f.d.Status())
		assert.Equal(t, before, f.d.Snapshot())
		assert.Empty(t, f.d.DomainEvents())
	})

	t.Run("should still refuse other actors once delivered", func(t *testing.T) {
		f := awaitingConfirmation(t)
		require.NoError(t, f.d.ConfirmDelivery(buyer(t), at(30)))

		_, err := f.d.SubmitStep(buyer(t), delivery.StepDeliveryPhoto, "media://drop/2", at(31))

		require.ErrorIs(t, err, errs.ErrActorNotAllowed)
	})

	t.Run("should only accept the assigned driver", func(t *testing.T) {
		f := awaitingPickup(t)

		for _, a := range []delivery.Actor{delivery.DriverActor(kernel.NewUUID()), admin(t), buyer(t)} {
			_, err := f.d.SubmitStep(a, delivery.StepPickupCode, "1234", at(3))
			require.ErrorIs(t, err, errs.ErrActorNotAllowed)
		}
		assert.False(t, f.d.Proof().PickupVerified())
	})

	t.Run("should reject steps when no driver is assigned", func(t *testing.T) {
		d := newDelivery(t)

		_, err := d.SubmitStep(delivery.DriverActor(kernel.NewUUID()), delivery.StepPickupCode, "1234", at(1))

		require.ErrorIs(t, err, errs.ErrActorNotAllowed)
	})

	t.Run("should allow pickup steps while assigned", func(t *testing.T) {
		f := assigned(t)

		_, err := f.d.SubmitStep(f.driverActor(), delivery.StepPickupCode, "1234", at(2))

		require.NoError(t, err)
	})

	t.Run("should keep the delivery photo closed before transit", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 4)

		_, err := f.d.SubmitStep(f.driverActor(), delivery.StepDeliveryPhoto, "media://drop/1", at(8))

		require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
		assert.True(t, f.d.Proof().DeliveryPhoto().IsZero())
	})

	t.Run("should validate media references", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 1)

		_, err := f.d.SubmitStep(f.driverActor(), delivery.StepGoodsPhoto, "not a ref", at(4))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = f.d.SubmitStep(f.driverActor(), delivery.StepGoodsPhoto, "", at(4))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should mark the delivery photo verified and pending review", func(t *testing.T) {
		f := inTransit(t)
		assert.Equal(t, "0/1", f.d.Progress().String())

		_, err := f.d.SubmitStep(f.driverActor(), delivery.StepDeliveryPhoto, "media://drop/1", at(20))

		require.NoError(t, err)
		p := f.d.Proof()
		assert.True(t, p.DeliveryVerified())
		assert.Equal(t, "media://drop/1", p.DeliveryPhoto().String())
		assert.Equal(t, delivery.ReviewPending, p.Review())
		assert.Equal(t, "1/1", f.d.Progress().String())
	})

	t.Run("should reject an unknown step", func(t *testing.T) {
		f := awaitingPickup(t)

		_, err := f.d.SubmitStep(f.driverActor(), delivery.StepUnknown, "x", at(3))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDelivery_Lifecycle(t *testing.T) {
	t.Run("should need driver and vehicle before awaiting pickup", func(t *testing.T) {
		d := newDelivery(t)
		require.NoError(t, d.AssignDriver(admin(t), kernel.NewUUID(), nil, at(1)))

		err := d.MarkAwaitingPickup(admin(t), at(2))

		require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
		assert.Contains(t, err.Error(), "driver and vehicle must be assigned")
		assert.Equal(t, delivery.Assigned, d.Status())
		assert.Equal(t, 1, d.Timeline().Len())
	})

	t.Run("should not start transit with fewer than four pickup steps", func(t *testing.T) {
		for n := range 4 {
			f := awaitingPickup(t)
			submitPickup(t, f, n)

			err := f.d.StartTransit(f.driverActor(), at(10))

			require.ErrorIs(t, err, errs.ErrPreconditionNotMet, "%d steps", n)
			assert.Equal(t, delivery.AwaitingPickup, f.d.Status())
			requireLastEntryMatchesStatus(t, f.d)
		}
	})

	t.Run("should report pickup progress in the failure", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 3)

		err := f.d.StartTransit(f.driverActor(), at(10))

		assert.Contains(t, err.Error(), "pickup verification incomplete (3/4)")
	})

	t.Run("should never skip states", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 4)

		require.ErrorIs(t, f.d.RequestBuyerConfirmation(f.driverActor(), at(10)), errs.ErrPreconditionNotMet)
		require.ErrorIs(t, f.d.ConfirmDelivery(buyer(t), at(10)), errs.ErrPreconditionNotMet)
		require.ErrorIs(t, f.d.MarkAwaitingPickup(admin(t), at(10)), errs.ErrPreconditionNotMet)
		assert.Equal(t, delivery.AwaitingPickup, f.d.Status())
	})

	t.Run("should only let the assigned driver start transit", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 4)

		err := f.d.StartTransit(delivery.DriverActor(kernel.NewUUID()), at(10))
		require.ErrorIs(t, err, errs.ErrActorNotAllowed)
		assert.Contains(t, err.Error(), "unassigned driver")

		require.ErrorIs(t, f.d.StartTransit(admin(t), at(10)), errs.ErrActorNotAllowed)
	})

	t.Run("should only let the buyer confirm", func(t *testing.T) {
		f := awaitingConfirmation(t)

		require.ErrorIs(t, f.d.ConfirmDelivery(f.driverActor(), at(30)), errs.ErrActorNotAllowed)
		require.ErrorIs(t, f.d.ConfirmDelivery(merchant(t), at(30)), errs.ErrActorNotAllowed)
		require.NoError(t, f.d.ConfirmDelivery(buyer(t), at(30)))

		assert.Equal(t, delivery.Delivered, f.d.Status())
		assert.False(t, f.d.IsActive())
		last, _ := f.d.Timeline().Last()
		assert.Equal(t, "confirmed by buyer", last.Note())
		assert.Equal(t, "buyer:Customer", last.Actor())
	})

	t.Run("should append exactly one entry per transition", func(t *testing.T) {
		f := awaitingConfirmation(t)
		require.NoError(t, f.d.ConfirmDelivery(buyer(t), at(30)))

		assert.Equal(t, []delivery.Status{
			delivery.Assigned,
			delivery.AwaitingPickup,
			delivery.InTransit,
			delivery.AwaitingBuyerConfirmation,
			delivery.Delivered,
		}, timelineStatuses(f.d))
		requireLastEntryMatchesStatus(t, f.d)
	})

	t.Run("should clamp a clock that goes backwards", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 4)

		require.NoError(t, f.d.StartTransit(f.driverActor(), t0.Add(-time.Hour)))

		entries := f.d.Timeline().Entries()
		last := entries[len(entries)-1]
		prev := entries[len(entries)-2]
		assert.Equal(t, prev.At(), last.At())
		assert.False(t, f.d.UpdatedAt().Before(last.At()))
	})

	t.Run("should emit a status change per transition", func(t *testing.T) {
		f := awaitingPickup(t)
		submitPickup(t, f, 4)
		f.d.ClearDomainEvents()

		require.NoError(t, f.d.StartTransit(f.driverActor(), at(10)))

		events := f.d.DomainEvents()
		require.Len(t, events, 1)
		ev := events[0].(delivery.StatusChanged)
		assert.Equal(t, delivery.AwaitingPickup, ev.From)
		assert.Equal(t, delivery.InTransit, ev.To)
		assert.Equal(t, "driver:"+f.driver.String(), ev.Actor)
		assert.True(t, ev.AggregateID().IsEqual(f.d.ID()))
	})
}

func TestDelivery_Scenario_DEL100(t *testing.T) {
	d := newDeliveryWithCode(t, "DEL-100", "")
	require.Nil(t, d.Driver())

	driverA, vehicleV1 := kernel.NewUUID(), kernel.NewUUID()
	require.NoError(t, d.AssignDriver(admin(t), driverA, &vehicleV1, at(1)))
	require.NoError(t, d.MarkAwaitingPickup(delivery.SystemActor("dispatcher"), at(2)))

	driver := delivery.DriverActor(driverA)
	_, err := d.SubmitStep(driver, delivery.StepPickupCode, "1234", at(3))
	require.NoError(t, err)
	for i, step := range []delivery.Step{delivery.StepGoodsPhoto, delivery.StepDriverIDPhoto, delivery.StepDriverSelfie} {
		_, err = d.SubmitStep(driver, step, "media://del-100/"+step.String(), at(4+i))
		require.NoError(t, err)
	}

	require.NoError(t, d.StartTransit(driver, at(10)))
	assert.Equal(t, delivery.InTransit, d.Status())

	driverB := kernel.NewUUID()
	err = d.AssignDriver(admin(t), driverB, &vehicleV1, at(11))
	require.ErrorIs(t, err, errs.ErrReassignmentWindowClosed)
	assert.True(t, d.Driver().IsEqual(driverA))
	requireLastEntryMatchesStatus(t, d)
}

func TestDelivery_ProofReview(t *testing.T) {
	t.Run("should approve a pending review", func(t *testing.T) {
		f := awaitingConfirmation(t)

		require.NoError(t, f.d.ApproveProof(admin(t), at(22)))

		assert.Equal(t, delivery.ReviewApproved, f.d.Proof().Review())
		assert.Equal(t, []string{delivery.EventTypeProofReviewed}, eventTypes(f.d))
	})

	t.Run("should refuse approval with nothing pending", func(t *testing.T) {
		f := inTransit(t)

		require.ErrorIs(t, f.d.ApproveProof(admin(t), at(11)), errs.ErrPreconditionNotMet)
	})

	t.Run("should freeze the delivery until the rejected step is resubmitted", func(t *testing.T) {
		f := inTransit(t)

		require.NoError(t, f.d.RejectProof(admin(t), delivery.StepGoodsPhoto, "blurry", at(12)))
		assert.True(t, f.d.Proof().IsRejected())
		assert.Equal(t, delivery.ReviewRejected, f.d.Proof().Review())
		assert.Equal(t, "media://goods/1", f.d.Proof().GoodsPhoto().String())

		_, err := f.d.SubmitStep(f.driverActor(), delivery.StepDeliveryPhoto, "media://drop/1", at(13))
		require.ErrorIs(t, err, errs.ErrProofRejected)
		require.ErrorIs(t, f.d.RaiseDispute(buyer(t), "late", at(13)), errs.ErrProofRejected)
		assert.Equal(t, delivery.InTransit, f.d.Status())

		f.d.ClearDomainEvents()
		res, err := f.d.SubmitStep(f.driverActor(), delivery.StepGoodsPhoto, "media://goods/2", at(14))
		require.NoError(t, err)
		assert.True(t, res.Accepted)
		assert.False(t, f.d.Proof().IsRejected())
		assert.Equal(t, delivery.ReviewPending, f.d.Proof().Review())
		assert.Equal(t, "media://goods/2", f.d.Proof().GoodsPhoto().String())
		assert.Equal(t, "media://id/1", f.d.Proof().DriverIDPhoto().String())

		ev := f.d.DomainEvents()[0].(delivery.StepCompleted)
		assert.True(t, ev.Resubmission)

		_, err = f.d.SubmitStep(f.driverActor(), delivery.StepDeliveryPhoto, "media://drop/1", at(15))
		require.NoError(t, err)
	})

	t.Run("should reopen the delivery photo after rejection", func(t *testing.T) {
		f := awaitingConfirmation(t)

		require.NoError(t, f.d.RejectProof(admin(t), delivery.StepDeliveryPhoto, "wrong door", at(22)))
		assert.False(t, f.d.Proof().DeliveryVerified())
		assert.Equal(t, "0/1", f.d.Progress().String())
		require.ErrorIs(t, f.d.ConfirmDelivery(buyer(t), at(23)), errs.ErrProofRejected)

		_, err := f.d.SubmitStep(f.driverActor(), delivery.StepDeliveryPhoto, "media://drop/2", at(24))
		require.NoError(t, err)
		require.NoError(t, f.d.ConfirmDelivery(buyer(t), at(25)))
		assert.Equal(t, delivery.Delivered, f.d.Status())
	})

	t.Run("should validate rejections", func(t *testing.T) {
		f := inTransit(t)

		require.ErrorIs(t, f.d.RejectProof(admin(t), delivery.StepPickupCode, "x", at(11)), errs.ErrValueIsInvalid)
		require.ErrorIs(t, f.d.RejectProof(admin(t), delivery.StepGoodsPhoto, " ", at(11)), errs.ErrValueIsRequired)
		require.ErrorIs(t, f.d.RejectProof(f.driverActor(), delivery.StepGoodsPhoto, "x", at(11)),
			errs.ErrActorNotAllowed)
		require.ErrorIs(t, f.d.RejectProof(admin(t), delivery.StepDeliveryPhoto, "x", at(11)),
			errs.ErrPreconditionNotMet)

		require.NoError(t, f.d.RejectProof(admin(t), delivery.StepGoodsPhoto, "blurry", at(12)))
		require.ErrorIs(t, f.d.RejectProof(admin(t), delivery.StepDriverSelfie, "x", at(13)), errs.ErrProofRejected)
		assert.Equal(t, delivery.StepGoodsPhoto, f.d.Proof().RejectedStep())
		assert.Equal(t, "blurry", f.d.Proof().RejectionReason())
	})

	t.Run("should not review closed deliveries", func(t *testing.T) {
		f := awaitingConfirmation(t)
		require.NoError(t, f.d.ConfirmDelivery(buyer(t), at(30)))

		require.ErrorIs(t, f.d.RejectProof(admin(t), delivery.StepDeliveryPhoto, "x", at(31)),
			errs.ErrPreconditionNotMet)
	})
}
