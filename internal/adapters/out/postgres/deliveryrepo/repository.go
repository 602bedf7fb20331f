package deliveryrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// ActiveStatusCodes returns the stored codes of the statuses that count
// toward a driver's or vehicle's active deliveries.
func ActiveStatusCodes() []string {
	return statusCodes(delivery.ActiveStatuses())
}

// Add saves a new delivery together with its timeline.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery. Timeline entries and dispute records are
// upserted by position: new entries are inserted, the open dispute is
// rewritten when it is resolved.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	if len(dto.Timeline) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Timeline).Error; err != nil {
			return err
		}
	}
	if len(dto.Disputes) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Disputes).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID with its timeline and dispute history.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.withHistory(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByStatus retrieves deliveries in any of the given statuses, oldest first.
// Without statuses every delivery is returned.
func (r *GormDeliveryRepository) ListByStatus(ctx context.Context, statuses ...delivery.Status) ([]*delivery.Delivery, error) {
	query := r.withHistory(ctx).Order("created_at, id")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusCodes(statuses))
	}

	var dtos []DeliveryDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// ListIDsByStatus returns the ids of deliveries in any of the given statuses,
// oldest first, without mapping the rows.
func (r *GormDeliveryRepository) ListIDsByStatus(ctx context.Context, statuses ...delivery.Status) ([]kernel.UUID, error) {
	query := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Order("created_at, id")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusCodes(statuses))
	}

	var raw []uuid.UUID
	if err := query.Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		kid, err := kernel.UUIDFromGoogle(id)
		if err != nil {
			return nil, errs.NewDataIntegrityError("delivery", id.String(), err)
		}
		ids = append(ids, kid)
	}
	return ids, nil
}

// GetFirstUnassigned retrieves the oldest delivery in assigned without a driver.
//
// Example:
//
//	d, err := repo.GetFirstUnassigned(ctx)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//		// nothing to dispatch
//	}
func (r *GormDeliveryRepository) GetFirstUnassigned(ctx context.Context) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	err := r.withHistory(ctx).
		Where("status = ? AND driver_id IS NULL", delivery.Assigned.String()).
		Order("created_at, id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", "first unassigned")
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountActiveByVehicle counts active deliveries referencing the vehicle.
func (r *GormDeliveryRepository) CountActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) (int64, error) {
	return r.countActive(ctx, "vehicle_id", vehicleID)
}

// CountActiveByDriver counts active deliveries referencing the driver.
func (r *GormDeliveryRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int64, error) {
	return r.countActive(ctx, "driver_id", driverID)
}

func (r *GormDeliveryRepository) countActive(ctx context.Context, column string, id kernel.UUID) (int64, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where(column+" = ? AND status IN ?", id.Bytes(), ActiveStatusCodes()).
		Count(&count).Error
	return count, err
}

func (r *GormDeliveryRepository) withHistory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("Disputes", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}

func toDomainAll(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

func statusCodes(statuses []delivery.Status) []string {
	codes := make([]string, 0, len(statuses))
	for _, s := range statuses {
		codes = append(codes, s.String())
	}
	return codes
}
