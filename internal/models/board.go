package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Board is the single per-user container of columns. ColumnOrder is the sole
// source of positional truth: columns never store their own index.
type Board struct {
	ID          uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID                      `gorm:"type:uuid;not null;uniqueIndex" json:"owner_id"`
	ColumnOrder datatypes.JSONSlice[uuid.UUID] `gorm:"not null" json:"column_order"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}
