package queries_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDeliveryQuery(t *testing.T) {
	t.Run("should reject a missing id or audience", func(t *testing.T) {
		_, err := queries.NewGetDeliveryQuery(kernel.UUID{}, delivery.AudienceAdmin, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = queries.NewGetDeliveryQuery(kernel.NewUUID(), delivery.AudienceUnknown, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a zero-value actor", func(t *testing.T) {
		_, err := queries.NewGetDeliveryQuery(kernel.NewUUID(), delivery.AudienceAdmin, &delivery.Actor{})
		require.Error(t, err)
	})

	t.Run("should refuse a query built without the constructor", func(t *testing.T) {
		s := newStore(t)
		handler := queries.NewGetDeliveryQueryHandler(s.factory.Create().DeliveryRepository(), delivery.DefaultLabelCatalog())

		_, err := handler.Handle(context.Background(), queries.GetDeliveryQuery{})
		require.ErrorIs(t, err, queries.ErrGetDeliveryQueryIsNotConstructed)
	})
}

func TestGetDeliveryQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should render labels, progress and allowed transitions for the driver", func(t *testing.T) {
		s := newStore(t)
		drv, v := s.addFleet(t, "Kiran", "KA05MN1111", true)
		d := newDelivery(t, "ORD-100", t0)
		s.addDelivery(t, d)
		dispatched(t, d, drv, v)

		driverActor := delivery.DriverActor(drv.ID())
		_, err := d.SubmitStep(driverActor, delivery.StepPickupCode, "4821", t0.Add(3*time.Minute))
		require.NoError(t, err)
		s.update(t, d)

		query, err := queries.NewGetDeliveryQuery(d.ID(), delivery.AudienceDriver, &driverActor)
		require.NoError(t, err)
		handler := queries.NewGetDeliveryQueryHandler(s.factory.Create().DeliveryRepository(), delivery.DefaultLabelCatalog())

		view, err := handler.Handle(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, d.ID().String(), view.ID)
		assert.Equal(t, "awaiting_pickup", view.Status)
		assert.Equal(t, "Awaiting pickup", view.Label)
		assert.Equal(t, "pickup", view.ActiveSequence)
		assert.Equal(t, queries.ProgressView{Completed: 1, Total: 4, Text: "1/4"}, view.PickupProgress)
		assert.Equal(t, queries.ProgressView{Completed: 0, Total: 1, Text: "0/1"}, view.DeliveryProgress)
		assert.True(t, view.Proof.PickupVerified)
		require.NotNil(t, view.DriverID)
		assert.Equal(t, drv.ID().String(), *view.DriverID)
		assert.True(t, view.Reassign.Allowed)
		assert.Nil(t, view.Dispute)

		require.Len(t, view.Timeline, 2)
		assert.Equal(t, "assigned", view.Timeline[0].Status)
		assert.Equal(t, "Awaiting pickup", view.Timeline[1].Label)

		// Pickup proof is not complete yet, so the driver cannot start transit.
		assert.Empty(t, view.AllowedTransitions)
	})

	t.Run("should label awaiting buyer confirmation per audience", func(t *testing.T) {
		s := newStore(t)
		drv, v := s.addFleet(t, "Kiran", "KA05MN2222", true)
		d := newDelivery(t, "ORD-101", t0)
		s.addDelivery(t, d)
		dispatched(t, d, drv, v)

		driverActor := delivery.DriverActor(drv.ID())
		at := t0.Add(3 * time.Minute)
		for _, step := range []struct {
			step  delivery.Step
			value string
		}{
			{delivery.StepPickupCode, "4821"},
			{delivery.StepGoodsPhoto, "media://goods.jpg"},
			{delivery.StepDriverIDPhoto, "media://id.jpg"},
			{delivery.StepDriverSelfie, "media://selfie.jpg"},
		} {
			_, err := d.SubmitStep(driverActor, step.step, step.value, at)
			require.NoError(t, err)
		}
		require.NoError(t, d.StartTransit(driverActor, at.Add(time.Minute)))
		_, err := d.SubmitStep(driverActor, delivery.StepDeliveryPhoto, "media://door.jpg", at.Add(20*time.Minute))
		require.NoError(t, err)
		require.NoError(t, d.RequestBuyerConfirmation(driverActor, at.Add(21*time.Minute)))
		s.update(t, d)

		handler := queries.NewGetDeliveryQueryHandler(s.factory.Create().DeliveryRepository(), delivery.DefaultLabelCatalog())
		labels := map[delivery.Audience]string{
			delivery.AudienceAdmin:  "Awaiting confirmation",
			delivery.AudienceBuyer:  "Please confirm receipt",
			delivery.AudienceDriver: "Awaiting buyer confirmation",
		}
		for audience, want := range labels {
			query, qErr := queries.NewGetDeliveryQuery(d.ID(), audience, nil)
			require.NoError(t, qErr)
			view, hErr := handler.Handle(ctx, query)
			require.NoError(t, hErr)
			assert.Equal(t, "awaiting_buyer_confirmation", view.Status, audience.String())
			assert.Equal(t, want, view.Label, audience.String())
		}

		buyer, err := delivery.NewActor(delivery.RoleBuyer, "Meera")
		require.NoError(t, err)
		query, err := queries.NewGetDeliveryQuery(d.ID(), delivery.AudienceBuyer, &buyer)
		require.NoError(t, err)
		view, err := handler.Handle(ctx, query)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"delivered", "dispute"}, view.AllowedTransitions)
		assert.False(t, view.Reassign.Allowed)
		assert.Equal(t, string(errs.KindReassignmentWindowClosed), view.Reassign.Kind)
	})

	t.Run("should report a missing delivery", func(t *testing.T) {
		s := newStore(t)
		query, err := queries.NewGetDeliveryQuery(kernel.NewUUID(), delivery.AudienceAdmin, nil)
		require.NoError(t, err)
		handler := queries.NewGetDeliveryQueryHandler(s.factory.Create().DeliveryRepository(), delivery.DefaultLabelCatalog())

		_, err = handler.Handle(ctx, query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse to render a corrupt delivery", func(t *testing.T) {
		s := newStore(t)
		d := newDelivery(t, "ORD-102", t0)
		s.addDelivery(t, d)
		require.NoError(t, s.db.Exec("UPDATE deliveries SET status = ? WHERE id = ?", "in_transit", d.ID().Bytes()).Error)

		query, err := queries.NewGetDeliveryQuery(d.ID(), delivery.AudienceAdmin, nil)
		require.NoError(t, err)
		handler := queries.NewGetDeliveryQueryHandler(s.factory.Create().DeliveryRepository(), delivery.DefaultLabelCatalog())

		_, err = handler.Handle(ctx, query)
		require.ErrorIs(t, err, errs.ErrDataIntegrity)
	})
}
