// Package steprepo provides data transfer objects and mapping functions for
// checkout step persistence. It implements the repository pattern for the
// step instance aggregate, handling the conversion between domain entities
// and database representations.
package steprepo

import (
	"encoding/json"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/step"

	"github.com/google/uuid"
)

// StepDTO represents the database structure for persisting step instances.
// The flexible parts of the aggregate (submitted data, validation results,
// navigation log) are stored as jsonb documents; everything the read-side
// queries filter or aggregate on gets its own column.
type StepDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_checkout_steps_session_step"`
	StepName      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_checkout_steps_session_step"`
	StepOrder     int       `gorm:"type:int;not null"`
	IsActive      bool      `gorm:"not null"`
	IsCompleted   bool      `gorm:"not null"`
	StartedAt     *time.Time
	CompletedAt   *time.Time
	LastAttemptAt *time.Time
	TimeSpent     int `gorm:"type:int;not null"`
	Attempts      int `gorm:"type:int;not null"`

	StepData          []byte `gorm:"type:jsonb"`
	ValidationErrors  []byte `gorm:"type:jsonb"`
	NavigationHistory []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for step instances.
// Overrides GORM's default naming convention to use "checkout_steps".
func (StepDTO) TableName() string {
	return "checkout_steps"
}

// fromDomain converts a step instance to its database representation.
func fromDomain(instance *step.Instance) (StepDTO, error) {
	stepData, err := marshalOrNil(instance.StepData())
	if err != nil {
		return StepDTO{}, err
	}
	validationErrors, err := marshalOrNil(instance.ValidationErrors())
	if err != nil {
		return StepDTO{}, err
	}
	var navigationHistory []byte
	if history := instance.NavigationHistory(); history != nil {
		navigationHistory, err = json.Marshal(history)
		if err != nil {
			return StepDTO{}, err
		}
	}

	return StepDTO{
		ID:                instance.ID().Bytes(),
		SessionID:         instance.SessionID(),
		StepName:          instance.StepName(),
		StepOrder:         instance.Order(),
		IsActive:          instance.IsActive(),
		IsCompleted:       instance.IsCompleted(),
		StartedAt:         instance.StartedAt(),
		CompletedAt:       instance.CompletedAt(),
		LastAttemptAt:     instance.LastAttemptAt(),
		TimeSpent:         instance.TimeSpent(),
		Attempts:          instance.Attempts(),
		StepData:          stepData,
		ValidationErrors:  validationErrors,
		NavigationHistory: navigationHistory,
	}, nil
}

// toDomain converts a database DTO to a step instance using RestoreInstance.
func toDomain(dto StepDTO) (*step.Instance, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var stepData map[string]any
	if len(dto.StepData) > 0 {
		if err = json.Unmarshal(dto.StepData, &stepData); err != nil {
			return nil, err
		}
	}
	var validationErrors map[string][]string
	if len(dto.ValidationErrors) > 0 {
		if err = json.Unmarshal(dto.ValidationErrors, &validationErrors); err != nil {
			return nil, err
		}
	}
	var navigationHistory []step.NavigationEntry
	if len(dto.NavigationHistory) > 0 {
		if err = json.Unmarshal(dto.NavigationHistory, &navigationHistory); err != nil {
			return nil, err
		}
	}

	return step.RestoreInstance(step.Snapshot{
		ID:                id,
		SessionID:         dto.SessionID,
		StepName:          dto.StepName,
		Order:             dto.StepOrder,
		IsActive:          dto.IsActive,
		IsCompleted:       dto.IsCompleted,
		StartedAt:         dto.StartedAt,
		CompletedAt:       dto.CompletedAt,
		LastAttemptAt:     dto.LastAttemptAt,
		TimeSpent:         dto.TimeSpent,
		Attempts:          dto.Attempts,
		StepData:          stepData,
		ValidationErrors:  validationErrors,
		NavigationHistory: navigationHistory,
	})
}

// marshalOrNil keeps absent maps as NULL instead of the JSON "null" document,
// so a never-validated step round-trips with nil maps.
func marshalOrNil[M ~map[string]V, V any](m M) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}
