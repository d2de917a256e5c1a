package models

import (
	"time"

	"github.com/google/uuid"
)

// Cell is a single job-application record. It carries no positional data and
// no column reference: the containing column's CellOrder is what places it.
type Cell struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Company      string    `gorm:"size:255;not null" json:"company"`
	Position     string    `gorm:"size:255;not null" json:"position"`
	Location     string    `gorm:"size:255;not null" json:"location"`
	ContactName  string    `gorm:"size:255" json:"contact_name,omitempty"`
	ContactTitle string    `gorm:"size:255" json:"contact_title,omitempty"`
	ContactEmail string    `gorm:"size:255" json:"contact_email,omitempty"`
	Note         string    `gorm:"type:text" json:"note,omitempty"`
	Color        string    `gorm:"size:50" json:"color,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
