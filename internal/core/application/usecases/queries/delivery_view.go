package queries

import (
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
)

// DeliveryView is the read model of one delivery as a presentation surface
// sees it: the stored state plus progress, the audience label and the guard
// flags the surface needs to enable or disable actions.
type DeliveryView struct {
	ID                 string              `json:"id"`
	OrderID            string              `json:"orderId"`
	Status             string              `json:"status"`
	Label              string              `json:"label"`
	Merchant           PartyView           `json:"merchant"`
	Buyer              PartyView           `json:"buyer"`
	Payout             MoneyView           `json:"payout"`
	DriverID           *string             `json:"driverId,omitempty"`
	VehicleID          *string             `json:"vehicleId,omitempty"`
	Proof              ProofView           `json:"proof"`
	ActiveSequence     string              `json:"activeSequence"`
	PickupProgress     ProgressView        `json:"pickupProgress"`
	DeliveryProgress   ProgressView        `json:"deliveryProgress"`
	Timeline           []TimelineEntryView `json:"timeline"`
	Dispute            *DisputeView        `json:"dispute,omitempty"`
	PastDisputes       []DisputeView       `json:"pastDisputes"`
	AllowedTransitions []string            `json:"allowedTransitions"`
	Reassign           GuardView           `json:"reassign"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

type PartyView struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type MoneyView struct {
	Minor    int64  `json:"minor"`
	Currency string `json:"currency"`
}

// ProofView exposes which artifacts are present. The pickup code itself is
// never echoed back.
type ProofView struct {
	PickupVerified   bool   `json:"pickupVerified"`
	GoodsPhoto       string `json:"goodsPhoto,omitempty"`
	DriverIDPhoto    string `json:"driverIdPhoto,omitempty"`
	DriverSelfie     string `json:"driverSelfie,omitempty"`
	DeliveryPhoto    string `json:"deliveryPhoto,omitempty"`
	DeliveryVerified bool   `json:"deliveryVerified"`
	Review           string `json:"review"`
	RejectedStep     string `json:"rejectedStep,omitempty"`
	RejectionReason  string `json:"rejectionReason,omitempty"`
}

type ProgressView struct {
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Text      string `json:"text"`
}

type TimelineEntryView struct {
	Status string    `json:"status"`
	Label  string    `json:"label"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
	Actor  string    `json:"actor,omitempty"`
}

type DisputeView struct {
	Reason         string     `json:"reason"`
	ReportedBy     string     `json:"reportedBy"`
	ReportedAt     time.Time  `json:"reportedAt"`
	Review         string     `json:"review"`
	Outcome        string     `json:"outcome,omitempty"`
	ResolutionNote string     `json:"resolutionNote,omitempty"`
	ResolvedBy     string     `json:"resolvedBy,omitempty"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
}

// GuardView is a presentation flag: whether an action is allowed now and,
// if not, the reason and error kind the command would fail with.
type GuardView struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func guardView(g services.Guard) GuardView {
	v := GuardView{Allowed: g.Allowed, Reason: g.Reason}
	if !g.Allowed {
		v.Kind = string(g.Kind)
	}
	return v
}

// viewBuilder renders deliveries for one audience and, optionally, one actor.
type viewBuilder struct {
	labels   delivery.LabelCatalog
	audience delivery.Audience
	actor    *delivery.Actor
	fleet    services.FleetGuard
}

func (b viewBuilder) build(d *delivery.Delivery) DeliveryView {
	proof := d.Proof()
	view := DeliveryView{
		ID:       d.ID().String(),
		OrderID:  d.OrderID(),
		Status:   d.Status().String(),
		Label:    b.labels.Label(d.Status(), b.audience),
		Merchant: partyView(d.Merchant()),
		Buyer:    partyView(d.Buyer()),
		Payout: MoneyView{
			Minor:    d.Payout().Minor(),
			Currency: d.Payout().Currency(),
		},
		DriverID:  optionalString(d.Driver()),
		VehicleID: optionalString(d.Vehicle()),
		Proof: ProofView{
			PickupVerified:   proof.PickupVerified(),
			GoodsPhoto:       proof.GoodsPhoto().String(),
			DriverIDPhoto:    proof.DriverIDPhoto().String(),
			DriverSelfie:     proof.DriverSelfie().String(),
			DeliveryPhoto:    proof.DeliveryPhoto().String(),
			DeliveryVerified: proof.DeliveryVerified(),
			Review:           proof.Review().String(),
			RejectionReason:  proof.RejectionReason(),
		},
		ActiveSequence:     d.ActiveSequence().String(),
		PickupProgress:     progressView(proof.Progress(delivery.SequencePickup)),
		DeliveryProgress:   progressView(proof.Progress(delivery.SequenceDelivery)),
		Timeline:           make([]TimelineEntryView, 0, d.Timeline().Len()),
		PastDisputes:       make([]DisputeView, 0, len(d.PastDisputes())),
		AllowedTransitions: make([]string, 0),
		Reassign:           guardView(b.fleet.ReassignGuard(d)),
		CreatedAt:          d.CreatedAt(),
		UpdatedAt:          d.UpdatedAt(),
	}
	if proof.IsRejected() {
		view.Proof.RejectedStep = proof.RejectedStep().String()
	}

	for _, e := range d.Timeline().Entries() {
		view.Timeline = append(view.Timeline, TimelineEntryView{
			Status: e.Status().String(),
			Label:  b.labels.Label(e.Status(), b.audience),
			At:     e.At(),
			Note:   e.Note(),
			Actor:  e.Actor(),
		})
	}

	if open, ok := d.Dispute(); ok {
		dv := disputeView(open)
		view.Dispute = &dv
	}
	for _, past := range d.PastDisputes() {
		view.PastDisputes = append(view.PastDisputes, disputeView(past))
	}

	if b.actor != nil {
		for _, s := range d.AllowedTransitions(*b.actor) {
			view.AllowedTransitions = append(view.AllowedTransitions, s.String())
		}
	}

	return view
}

func partyView(p kernel.Party) PartyView {
	return PartyView{
		Name:    p.Name(),
		Phone:   p.Phone(),
		Address: p.Address(),
		Lat:     p.Point().Lat(),
		Lon:     p.Point().Lon(),
	}
}

func progressView(p delivery.Progress) ProgressView {
	return ProgressView{Completed: p.Completed, Total: p.Total, Text: p.String()}
}

func disputeView(d delivery.Dispute) DisputeView {
	v := DisputeView{
		Reason:         d.Reason(),
		ReportedBy:     d.ReportedBy(),
		ReportedAt:     d.ReportedAt(),
		Review:         d.Review().String(),
		ResolutionNote: d.ResolutionNote(),
		ResolvedBy:     d.ResolvedBy(),
	}
	if d.Outcome() != delivery.Unknown {
		v.Outcome = d.Outcome().String()
	}
	if at := d.ResolvedAt(); !at.IsZero() {
		v.ResolvedAt = &at
	}
	return v
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func activeStatusCodes() []string {
	active := delivery.ActiveStatuses()
	codes := make([]string, 0, len(active))
	for _, s := range active {
		codes = append(codes, s.String())
	}
	return codes
}
