package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// GetDeliveryQueryHandler loads one delivery through the repository so the
// stored state is checked on the way out. A delivery that breaks an
// invariant is reported as a DataIntegrityError, never rendered.
//
// Example:
//
//	handler := NewGetDeliveryQueryHandler(reader, delivery.DefaultLabelCatalog())
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetDeliveryQueryHandler struct {
	reader ports.DeliveryReader
	labels delivery.LabelCatalog
}

func NewGetDeliveryQueryHandler(reader ports.DeliveryReader, labels delivery.LabelCatalog) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{reader: reader, labels: labels}
}

// Handle executes the query.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}

	d, err := h.reader.Get(ctx, query.deliveryID)
	if err != nil {
		return DeliveryView{}, err
	}

	b := viewBuilder{
		labels:   h.labels,
		audience: query.audience,
		actor:    query.actor,
		fleet:    services.NewFleetGuard(),
	}
	return b.build(d), nil
}
