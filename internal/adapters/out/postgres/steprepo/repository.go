package steprepo

import (
	"context"
	"errors"
	"fmt"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/step"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStepRepository implements StepRepository using GORM.
type GormStepRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStepRepository creates a new GORM step repository.
func NewGormStepRepository(db *gorm.DB, tracker aggregateTracker) *GormStepRepository {
	return &GormStepRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new step instance to the database.
func (r *GormStepRepository) Add(ctx context.Context, instance *step.Instance) error {
	if err := instance.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(instance)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(instance.ID(), instance)
	return nil
}

// Update saves an existing step instance to the database.
func (r *GormStepRepository) Update(ctx context.Context, instance *step.Instance) error {
	if err := instance.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(instance)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(instance.ID(), instance)
	return nil
}

// GetBySession retrieves all step instances of a session in funnel order.
// A session with no instances yields an empty slice.
func (r *GormStepRepository) GetBySession(ctx context.Context, sessionID string) ([]*step.Instance, error) {
	var dtos []StepDTO
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("step_order").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	instances := make([]*step.Instance, 0, len(dtos))
	for _, dto := range dtos {
		instance, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}

	return instances, nil
}

// GetBySessionAndName retrieves one step instance by session and step name.
func (r *GormStepRepository) GetBySessionAndName(ctx context.Context, sessionID, stepName string) (*step.Instance, error) {
	var dto StepDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "session_id = ? AND step_name = ?", sessionID, stepName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("checkout step",
				fmt.Sprintf("%s/%s", sessionID, stepName))
		}
		return nil, err
	}

	return toDomain(dto)
}
