// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// The delivery aggregate is stored in three tables: the delivery row itself, its
// append-only timeline and its dispute history. Mapping goes through
// delivery.Snapshot so the aggregate's invariants are checked on every load.
package deliveryrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// Status and steps are stored by their wire codes so the table stays readable
// from SQL; review states are stored as small integers.
type DeliveryDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID            string     `gorm:"type:varchar(64);not null;index"`
	Merchant           PartyDTO   `gorm:"embedded;embeddedPrefix:merchant_"`
	Buyer              PartyDTO   `gorm:"embedded;embeddedPrefix:buyer_"`
	PayoutMinor        int64      `gorm:"not null"`
	PayoutCurrency     string     `gorm:"type:varchar(3);not null"`
	ExpectedPickupCode string     `gorm:"type:varchar(8)"`
	DriverID           *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID          *uuid.UUID `gorm:"type:uuid;index"`
	Status             string     `gorm:"type:varchar(32);not null;index"`

	PickupCode       string `gorm:"type:varchar(8)"`
	PickupVerified   bool   `gorm:"not null"`
	GoodsPhoto       string `gorm:"type:varchar(512)"`
	DriverIDPhoto    string `gorm:"type:varchar(512)"`
	DriverSelfie     string `gorm:"type:varchar(512)"`
	DeliveryPhoto    string `gorm:"type:varchar(512)"`
	DeliveryVerified bool   `gorm:"not null"`
	Review           int    `gorm:"type:smallint;not null"`
	RejectedStep     string `gorm:"type:varchar(32)"`
	RejectionReason  string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`

	Timeline []TimelineEntryDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	Disputes []DisputeDTO       `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery aggregates.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// PartyDTO is the embedded merchant or buyer of a delivery.
type PartyDTO struct {
	Name    string  `gorm:"type:varchar(255);not null"`
	Phone   string  `gorm:"type:varchar(16);not null"`
	Address string  `gorm:"type:varchar(512);not null"`
	Lat     float64 `gorm:"not null"`
	Lon     float64 `gorm:"not null"`
}

// TimelineEntryDTO is one row of the append-only timeline. Seq is the
// position of the entry; entries are never rewritten.
type TimelineEntryDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey;autoIncrement:false"`
	Status     string    `gorm:"type:varchar(32);not null"`
	At         time.Time `gorm:"not null"`
	Note       string    `gorm:"type:text"`
	Actor      string    `gorm:"type:varchar(128)"`
}

// TableName specifies the database table name for timeline entries.
func (TimelineEntryDTO) TableName() string {
	return "delivery_timeline_entries"
}

// DisputeDTO is one dispute record. Past disputes come first by Seq; the
// open one, when present, is the last row and carries Open.
type DisputeDTO struct {
	DeliveryID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq            int        `gorm:"primaryKey;autoIncrement:false"`
	Reason         string     `gorm:"type:text;not null"`
	ReportedBy     string     `gorm:"type:varchar(128);not null"`
	ReportedAt     time.Time  `gorm:"not null"`
	Review         int        `gorm:"type:smallint;not null"`
	Outcome        string     `gorm:"type:varchar(32)"`
	ResolutionNote string     `gorm:"type:text"`
	ResolvedBy     string     `gorm:"type:varchar(128)"`
	ResolvedAt     *time.Time `gorm:""`
	Open           bool       `gorm:"not null"`
}

// TableName specifies the database table name for dispute records.
func (DisputeDTO) TableName() string {
	return "delivery_disputes"
}

// fromDomain converts a delivery aggregate to its database representation,
// including the full timeline and dispute history.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	s := d.Snapshot()
	id := s.ID.Bytes()

	dto := DeliveryDTO{
		ID:                 id,
		OrderID:            s.OrderID,
		Merchant:           partyFromDomain(s.Merchant),
		Buyer:              partyFromDomain(s.Buyer),
		PayoutMinor:        s.Payout.Minor(),
		PayoutCurrency:     s.Payout.Currency(),
		ExpectedPickupCode: s.ExpectedPickupCode,
		DriverID:           optionalID(s.DriverID),
		VehicleID:          optionalID(s.VehicleID),
		Status:             s.Status.String(),
		PickupCode:         s.PickupCode,
		PickupVerified:     s.PickupVerified,
		GoodsPhoto:         s.GoodsPhoto,
		DriverIDPhoto:      s.DriverIDPhoto,
		DriverSelfie:       s.DriverSelfie,
		DeliveryPhoto:      s.DeliveryPhoto,
		DeliveryVerified:   s.DeliveryVerified,
		Review:             int(s.Review),
		RejectionReason:    s.RejectionReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if s.RejectedStep != delivery.StepUnknown {
		dto.RejectedStep = s.RejectedStep.String()
	}

	dto.Timeline = make([]TimelineEntryDTO, 0, len(s.Timeline))
	for i, e := range s.Timeline {
		dto.Timeline = append(dto.Timeline, TimelineEntryDTO{
			DeliveryID: id,
			Seq:        i,
			Status:     e.Status.String(),
			At:         e.At,
			Note:       e.Note,
			Actor:      e.Actor,
		})
	}

	dto.Disputes = make([]DisputeDTO, 0, len(s.PastDisputes)+1)
	for _, past := range s.PastDisputes {
		dto.Disputes = append(dto.Disputes, disputeFromDomain(id, len(dto.Disputes), past, false))
	}
	if s.Dispute != nil {
		dto.Disputes = append(dto.Disputes, disputeFromDomain(id, len(dto.Disputes), *s.Dispute, true))
	}

	return dto
}

func partyFromDomain(p kernel.Party) PartyDTO {
	return PartyDTO{
		Name:    p.Name(),
		Phone:   p.Phone(),
		Address: p.Address(),
		Lat:     p.Point().Lat(),
		Lon:     p.Point().Lon(),
	}
}

func disputeFromDomain(deliveryID uuid.UUID, seq int, s delivery.DisputeSnapshot, open bool) DisputeDTO {
	dto := DisputeDTO{
		DeliveryID:     deliveryID,
		Seq:            seq,
		Reason:         s.Reason,
		ReportedBy:     s.ReportedBy,
		ReportedAt:     s.ReportedAt,
		Review:         int(s.Review),
		ResolutionNote: s.ResolutionNote,
		ResolvedBy:     s.ResolvedBy,
		Open:           open,
	}
	if s.Outcome != delivery.Unknown {
		dto.Outcome = s.Outcome.String()
	}
	if !s.ResolvedAt.IsZero() {
		at := s.ResolvedAt
		dto.ResolvedAt = &at
	}
	return dto
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// toDomain converts a database DTO to a delivery aggregate. Rows that cannot
// be mapped or that break a lifecycle invariant yield a DataIntegrityError.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	s, err := snapshotOf(dto)
	if err != nil {
		return nil, errs.NewDataIntegrityError("delivery", dto.ID.String(), err)
	}
	return delivery.Restore(s)
}

func snapshotOf(dto DeliveryDTO) (delivery.Snapshot, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return delivery.Snapshot{}, err
	}
	merchant, err := partyToDomain(dto.Merchant)
	if err != nil {
		return delivery.Snapshot{}, err
	}
	buyer, err := partyToDomain(dto.Buyer)
	if err != nil {
		return delivery.Snapshot{}, err
	}
	payout, err := kernel.NewMoney(dto.PayoutMinor, dto.PayoutCurrency)
	if err != nil {
		return delivery.Snapshot{}, err
	}
	driverID, err := optionalToDomain(dto.DriverID)
	if err != nil {
		return delivery.Snapshot{}, err
	}
	vehicleID, err := optionalToDomain(dto.VehicleID)
	if err != nil {
		return delivery.Snapshot{}, err
	}
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return delivery.Snapshot{}, err
	}
	rejectedStep := delivery.StepUnknown
	if dto.RejectedStep != "" {
		if rejectedStep, err = delivery.ParseStep(dto.RejectedStep); err != nil {
			return delivery.Snapshot{}, err
		}
	}

	s := delivery.Snapshot{
		ID:                 id,
		OrderID:            dto.OrderID,
		Merchant:           merchant,
		Buyer:              buyer,
		Payout:             payout,
		ExpectedPickupCode: dto.ExpectedPickupCode,
		DriverID:           driverID,
		VehicleID:          vehicleID,
		Status:             status,
		PickupCode:         dto.PickupCode,
		PickupVerified:     dto.PickupVerified,
		GoodsPhoto:         dto.GoodsPhoto,
		DriverIDPhoto:      dto.DriverIDPhoto,
		DriverSelfie:       dto.DriverSelfie,
		DeliveryPhoto:      dto.DeliveryPhoto,
		DeliveryVerified:   dto.DeliveryVerified,
		Review:             delivery.ReviewStatus(dto.Review),
		RejectedStep:       rejectedStep,
		RejectionReason:    dto.RejectionReason,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	}

	s.Timeline = make([]delivery.TimelineSnapshot, 0, len(dto.Timeline))
	for _, e := range dto.Timeline {
		entryStatus, parseErr := delivery.ParseStatus(e.Status)
		if parseErr != nil {
			return delivery.Snapshot{}, parseErr
		}
		s.Timeline = append(s.Timeline, delivery.TimelineSnapshot{
			Status: entryStatus,
			At:     e.At,
			Note:   e.Note,
			Actor:  e.Actor,
		})
	}

	for _, row := range dto.Disputes {
		record, mapErr := disputeToDomain(row)
		if mapErr != nil {
			return delivery.Snapshot{}, mapErr
		}
		if row.Open {
			if s.Dispute != nil {
				return delivery.Snapshot{}, errs.NewValueIsInvalidError("more than one open dispute")
			}
			s.Dispute = &record
			continue
		}
		s.PastDisputes = append(s.PastDisputes, record)
	}

	return s, nil
}

func partyToDomain(dto PartyDTO) (kernel.Party, error) {
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return kernel.Party{}, err
	}
	return kernel.NewParty(dto.Name, dto.Phone, dto.Address, point)
}

func disputeToDomain(dto DisputeDTO) (delivery.DisputeSnapshot, error) {
	s := delivery.DisputeSnapshot{
		Reason:         dto.Reason,
		ReportedBy:     dto.ReportedBy,
		ReportedAt:     dto.ReportedAt,
		Review:         delivery.DisputeReview(dto.Review),
		ResolutionNote: dto.ResolutionNote,
		ResolvedBy:     dto.ResolvedBy,
	}
	if dto.Outcome != "" {
		outcome, err := delivery.ParseStatus(dto.Outcome)
		if err != nil {
			return delivery.DisputeSnapshot{}, err
		}
		s.Outcome = outcome
	}
	if dto.ResolvedAt != nil {
		s.ResolvedAt = *dto.ResolvedAt
	}
	return s, nil
}

func optionalToDomain(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
