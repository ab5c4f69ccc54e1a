package types

import (
	"context"
	"time"
)

// BaseModel is a base model for all domain models that need to be persisted.
// Aggregates embed it instead of inheriting from a shared auditable base.
type BaseModel struct {
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	UpdatedBy string    `db:"updated_by" json:"updated_by"`
}

func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: GetUserID(ctx),
		UpdatedBy: GetUserID(ctx),
	}
}

// NewBaseModel is GetDefaultBaseModel with an injected timestamp, for
// callers that run on an injected clock.
func NewBaseModel(ctx context.Context, at time.Time) BaseModel {
	return BaseModel{
		Status:    StatusActive,
		CreatedAt: at,
		UpdatedAt: at,
		CreatedBy: GetUserID(ctx),
		UpdatedBy: GetUserID(ctx),
	}
}

// Touch updates the modification audit fields.
func (m *BaseModel) Touch(ctx context.Context, at time.Time) {
	m.UpdatedAt = at
	m.UpdatedBy = GetUserID(ctx)
}
