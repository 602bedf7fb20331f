package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// ListDeliveriesQueryHandler renders every delivery in the requested
// statuses. Allowed transitions are left empty: they depend on an actor and
// are served by the detail query.
type ListDeliveriesQueryHandler struct {
	reader ports.DeliveryReader
	labels delivery.LabelCatalog
}

func NewListDeliveriesQueryHandler(reader ports.DeliveryReader, labels delivery.LabelCatalog) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{reader: reader, labels: labels}
}

func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries, err := h.reader.ListByStatus(ctx, query.statuses...)
	if err != nil {
		return nil, err
	}

	b := viewBuilder{labels: h.labels, audience: query.audience, fleet: services.NewFleetGuard()}
	views := make([]DeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		views = append(views, b.build(d))
	}
	return views, nil
}
