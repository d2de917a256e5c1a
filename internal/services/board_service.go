package services

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jobtrail/jobtrail-api/internal/dto"
	"github.com/jobtrail/jobtrail-api/internal/models"
	"github.com/jobtrail/jobtrail-api/internal/ownership"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// columnPatchFields and cellPatchFields are the only keys an update may
// touch. owner_id is absent on purpose: ownership is fixed at creation.
var (
	columnPatchFields = []string{"title", "color"}
	cellPatchFields   = []string{
		"company", "position", "location",
		"contact_name", "contact_title", "contact_email",
		"note", "color",
	}
)

// BoardService is the hierarchy store: ownership-guarded CRUD over columns
// and cells plus the drag-and-drop move. Every mutation that touches an
// order array runs as one transaction so the parent's order and the child
// documents can never drift apart.
type BoardService struct {
	db *gorm.DB
}

func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{db: db}
}

// GetBoard returns the user's board with columns in ColumnOrder order, each
// populated with its cells in CellOrder order. Ids without a live row are
// skipped rather than surfaced dangling.
func (s *BoardService) GetBoard(ownerID uuid.UUID) (*dto.BoardResponse, error) {
	var board models.Board
	if err := s.db.Scopes(ownership.ForOwner(ownerID)).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var columns []models.Column
	if err := s.db.Where("board_id = ?", board.ID).Find(&columns).Error; err != nil {
		return nil, err
	}

	columnsByID := make(map[uuid.UUID]*models.Column, len(columns))
	cellIDs := make([]uuid.UUID, 0)
	for i := range columns {
		columnsByID[columns[i].ID] = &columns[i]
		cellIDs = append(cellIDs, columns[i].CellOrder...)
	}

	cellsByID := make(map[uuid.UUID]models.Cell, len(cellIDs))
	if len(cellIDs) > 0 {
		var cells []models.Cell
		if err := s.db.Where("id IN ?", cellIDs).Find(&cells).Error; err != nil {
			return nil, err
		}
		for _, cell := range cells {
			cellsByID[cell.ID] = cell
		}
	}

	resp := &dto.BoardResponse{
		ID:      board.ID,
		OwnerID: board.OwnerID,
		Columns: make([]dto.ColumnResponse, 0, len(board.ColumnOrder)),
	}
	for _, colID := range board.ColumnOrder {
		col, ok := columnsByID[colID]
		if !ok {
			continue
		}
		cr := dto.ColumnResponse{
			ID:    col.ID,
			Title: col.Title,
			Color: col.Color,
			Cells: make([]models.Cell, 0, len(col.CellOrder)),
		}
		for _, cellID := range col.CellOrder {
			if cell, ok := cellsByID[cellID]; ok {
				cr.Cells = append(cr.Cells, cell)
			}
		}
		resp.Columns = append(resp.Columns, cr)
	}

	return resp, nil
}

// CreateColumn creates a column and appends its id to the board's
// ColumnOrder, atomically.
func (s *BoardService) CreateColumn(boardID, ownerID uuid.UUID, form dto.ColumnForm) (*models.Column, error) {
	if form.Title == "" {
		return nil, ErrInvalidInput
	}

	col := models.Column{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     form.Title,
		Color:     form.Color,
		CellOrder: datatypes.JSONSlice[uuid.UUID]{},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var board models.Board
		if err := lockForUpdate(tx).First(&board, "id = ?", boardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if board.OwnerID != ownerID {
			return ErrForbidden
		}

		col.BoardID = board.ID
		if err := tx.Create(&col).Error; err != nil {
			return fmt.Errorf("failed to create column: %w", err)
		}

		order := append(board.ColumnOrder, col.ID)
		return tx.Model(&board).Update("column_order", order).Error
	})
	if err != nil {
		return nil, err
	}

	return &col, nil
}

// CreateCell creates a cell and appends its id to the column's CellOrder,
// atomically.
func (s *BoardService) CreateCell(columnID, ownerID uuid.UUID, form dto.CellForm) (*models.Cell, error) {
	if form.Company == "" || form.Position == "" || form.Location == "" {
		return nil, ErrInvalidInput
	}

	cell := models.Cell{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Company:      form.Company,
		Position:     form.Position,
		Location:     form.Location,
		ContactName:  form.ContactName,
		ContactTitle: form.ContactTitle,
		ContactEmail: form.ContactEmail,
		Note:         form.Note,
		Color:        form.Color,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var col models.Column
		if err := lockForUpdate(tx).First(&col, "id = ?", columnID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if col.OwnerID != ownerID {
			return ErrForbidden
		}

		if err := tx.Create(&cell).Error; err != nil {
			return fmt.Errorf("failed to create cell: %w", err)
		}

		order := append(col.CellOrder, cell.ID)
		return tx.Model(&col).Update("cell_order", order).Error
	})
	if err != nil {
		return nil, err
	}

	return &cell, nil
}

// UpdateColumn applies a whitelisted patch. Unknown keys, owner_id included,
// are dropped.
func (s *BoardService) UpdateColumn(columnID, ownerID uuid.UUID, patch map[string]interface{}) error {
	var col models.Column
	if err := s.db.First(&col, "id = ?", columnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if col.OwnerID != ownerID {
		return ErrForbidden
	}

	updates := filterPatch(patch, columnPatchFields)
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(&col).Updates(updates).Error
}

// UpdateCell applies a whitelisted patch, same rules as UpdateColumn.
func (s *BoardService) UpdateCell(cellID, ownerID uuid.UUID, patch map[string]interface{}) error {
	var cell models.Cell
	if err := s.db.First(&cell, "id = ?", cellID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if cell.OwnerID != ownerID {
		return ErrForbidden
	}

	updates := filterPatch(patch, cellPatchFields)
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(&cell).Updates(updates).Error
}

// DeleteColumn removes the column id from its board's ColumnOrder, deletes
// every cell the column references, then deletes the column. One
// transaction: a failure anywhere leaves everything in place.
func (s *BoardService) DeleteColumn(columnID, ownerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var col models.Column
		if err := lockForUpdate(tx).First(&col, "id = ?", columnID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if col.OwnerID != ownerID {
			return ErrForbidden
		}

		var board models.Board
		if err := lockForUpdate(tx).First(&board, "id = ?", col.BoardID).Error; err != nil {
			return err
		}

		if order, removed := removeID(board.ColumnOrder, col.ID); removed {
			if err := tx.Model(&board).Update("column_order", order).Error; err != nil {
				return err
			}
		}

		if len(col.CellOrder) > 0 {
			if err := tx.Where("id IN ?", []uuid.UUID(col.CellOrder)).Delete(&models.Cell{}).Error; err != nil {
				return fmt.Errorf("failed to cascade-delete cells: %w", err)
			}
		}

		return tx.Delete(&col).Error
	})
}

// DeleteCell removes the cell id from its containing column's CellOrder and
// deletes the cell document.
func (s *BoardService) DeleteCell(cellID, ownerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cell models.Cell
		if err := tx.First(&cell, "id = ?", cellID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if cell.OwnerID != ownerID {
			return ErrForbidden
		}

		// Cells carry no column reference; the containing column is found by
		// CellOrder membership across the owner's columns.
		var columns []models.Column
		if err := lockForUpdate(tx).Scopes(ownership.ForOwner(ownerID)).Find(&columns).Error; err != nil {
			return err
		}
		for i := range columns {
			if order, removed := removeID(columns[i].CellOrder, cell.ID); removed {
				if err := tx.Model(&columns[i]).Update("cell_order", order).Error; err != nil {
					return err
				}
				break
			}
		}

		return tx.Delete(&cell).Error
	})
}

// MoveCell applies a drag-and-drop drop event: remove the cell id at
// sourceIndex from the source column's CellOrder, insert it at destIndex
// (clamped) in the destination's. Both columns are updated in one
// transaction; on postgres both rows are locked in deterministic id order so
// concurrent moves cannot deadlock or lose updates.
func (s *BoardService) MoveCell(ownerID, sourceColumnID uuid.UUID, sourceIndex int, destColumnID uuid.UUID, destIndex int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if sourceColumnID == destColumnID {
			return s.reorderWithin(tx, ownerID, sourceColumnID, sourceIndex, destIndex)
		}

		first, second := sourceColumnID, destColumnID
		if bytes.Compare(second[:], first[:]) < 0 {
			first, second = second, first
		}

		cols := make(map[uuid.UUID]*models.Column, 2)
		for _, id := range []uuid.UUID{first, second} {
			var col models.Column
			if err := lockForUpdate(tx).First(&col, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if col.OwnerID != ownerID {
				return ErrForbidden
			}
			cols[id] = &col
		}

		src, dst := cols[sourceColumnID], cols[destColumnID]
		if sourceIndex < 0 || sourceIndex >= len(src.CellOrder) {
			return ErrIndexOutOfRange
		}

		srcOrder, cellID := removeAt(src.CellOrder, sourceIndex)
		dstOrder := insertAt(dst.CellOrder, clampIndex(destIndex, len(dst.CellOrder)), cellID)

		if err := tx.Model(src).Update("cell_order", srcOrder).Error; err != nil {
			return fmt.Errorf("%w: source column not updated", ErrConflict)
		}
		if err := tx.Model(dst).Update("cell_order", dstOrder).Error; err != nil {
			return fmt.Errorf("%w: destination column not updated", ErrConflict)
		}
		return nil
	})
}

func (s *BoardService) reorderWithin(tx *gorm.DB, ownerID, columnID uuid.UUID, sourceIndex, destIndex int) error {
	var col models.Column
	if err := lockForUpdate(tx).First(&col, "id = ?", columnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if col.OwnerID != ownerID {
		return ErrForbidden
	}
	if sourceIndex < 0 || sourceIndex >= len(col.CellOrder) {
		return ErrIndexOutOfRange
	}

	order, cellID := removeAt(col.CellOrder, sourceIndex)
	order = insertAt(order, clampIndex(destIndex, len(order)), cellID)
	return tx.Model(&col).Update("cell_order", order).Error
}

// lockForUpdate adds FOR UPDATE where the dialect supports it. sqlite (used
// in tests) serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func filterPatch(patch map[string]interface{}, allowed []string) map[string]interface{} {
	updates := make(map[string]interface{})
	for _, field := range allowed {
		if v, ok := patch[field]; ok {
			updates[field] = v
		}
	}
	return updates
}

func removeID(order datatypes.JSONSlice[uuid.UUID], id uuid.UUID) (datatypes.JSONSlice[uuid.UUID], bool) {
	for i, existing := range order {
		if existing == id {
			out, _ := removeAt(order, i)
			return out, true
		}
	}
	return order, false
}

func removeAt(order datatypes.JSONSlice[uuid.UUID], i int) (datatypes.JSONSlice[uuid.UUID], uuid.UUID) {
	id := order[i]
	out := make(datatypes.JSONSlice[uuid.UUID], 0, len(order)-1)
	out = append(out, order[:i]...)
	out = append(out, order[i+1:]...)
	return out, id
}

func insertAt(order datatypes.JSONSlice[uuid.UUID], i int, id uuid.UUID) datatypes.JSONSlice[uuid.UUID] {
	out := make(datatypes.JSONSlice[uuid.UUID], 0, len(order)+1)
	out = append(out, order[:i]...)
	out = append(out, id)
	out = append(out, order[i:]...)
	return out
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
