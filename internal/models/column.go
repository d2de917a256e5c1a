package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Column is an application stage ("Applied", "Interview", ...). CellOrder is
// the positional truth for its cells, mirroring Board.ColumnOrder.
type Column struct {
	ID        uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	BoardID   uuid.UUID                      `gorm:"type:uuid;not null;index" json:"board_id"`
	OwnerID   uuid.UUID                      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title     string                         `gorm:"size:255;not null" json:"title"`
	Color     string                         `gorm:"size:50" json:"color"`
	CellOrder datatypes.JSONSlice[uuid.UUID] `gorm:"not null" json:"cell_order"`
	CreatedAt time.Time                      `json:"created_at"`
	UpdatedAt time.Time                      `json:"updated_at"`
}
