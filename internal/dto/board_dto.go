package dto

import (
	"github.com/google/uuid"
	"github.com/jobtrail/jobtrail-api/internal/models"
)

// CreateColumnRequest and CreateCellRequest share the same shape: elementId
// names the parent document the new child is appended to.
type CreateColumnRequest struct {
	ElementID uuid.UUID  `json:"elementId"`
	Form      ColumnForm `json:"form"`
}

type ColumnForm struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

type CreateCellRequest struct {
	ElementID uuid.UUID `json:"elementId"`
	Form      CellForm  `json:"form"`
}

type CellForm struct {
	Company      string `json:"company"`
	Position     string `json:"position"`
	Location     string `json:"location"`
	ContactName  string `json:"contact_name"`
	ContactTitle string `json:"contact_title"`
	ContactEmail string `json:"contact_email"`
	Note         string `json:"note"`
	Color        string `json:"color"`
}

// UpdateRequest carries a free-form patch; the services whitelist which keys
// may actually be applied.
type UpdateRequest struct {
	Form map[string]interface{} `json:"form"`
}

// MoveRequest models a drag-and-drop drop event. DroppableID is a column id.
type MoveRequest struct {
	Source      DropPoint `json:"source"`
	Destination DropPoint `json:"destination"`
}

type DropPoint struct {
	DroppableID uuid.UUID `json:"droppableId"`
	Index       int       `json:"index"`
}

// BoardResponse is the fully populated board: columns in ColumnOrder order,
// each with its cells in CellOrder order.
type BoardResponse struct {
	ID      uuid.UUID        `json:"id"`
	OwnerID uuid.UUID        `json:"owner_id"`
	Columns []ColumnResponse `json:"columns"`
}

type ColumnResponse struct {
	ID    uuid.UUID     `json:"id"`
	Title string        `json:"title"`
	Color string        `json:"color"`
	Cells []models.Cell `json:"cells"`
}

type ColumnCreatedResponse struct {
	Column *models.Column `json:"column"`
}

type CellCreatedResponse struct {
	Cell *models.Cell `json:"cell"`
}

type BoardEnvelope struct {
	Board *BoardResponse `json:"board"`
}
