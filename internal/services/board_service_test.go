package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jobtrail/jobtrail-api/internal/dto"
	"github.com/jobtrail/jobtrail-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type boardFixture struct {
	db      *gorm.DB
	svc     *BoardService
	ownerID uuid.UUID
	boardID uuid.UUID
	columns map[string]uuid.UUID // title -> id
}

func newBoardFixture(t *testing.T, email string) *boardFixture {
	t.Helper()
	db := newTestDB(t)
	return seedOwner(t, db, email)
}

func seedOwner(t *testing.T, db *gorm.DB, email string) *boardFixture {
	t.Helper()

	user, err := NewAuthService(db, testConfig()).SignUp(email, "pw1", "pw1")
	require.NoError(t, err)

	var board models.Board
	require.NoError(t, db.First(&board, "owner_id = ?", user.ID).Error)

	columns := make(map[string]uuid.UUID)
	for _, colID := range board.ColumnOrder {
		var col models.Column
		require.NoError(t, db.First(&col, "id = ?", colID).Error)
		columns[col.Title] = col.ID
	}

	return &boardFixture{
		db:      db,
		svc:     NewBoardService(db),
		ownerID: user.ID,
		boardID: board.ID,
		columns: columns,
	}
}

func (f *boardFixture) cellOrder(t *testing.T, columnID uuid.UUID) []uuid.UUID {
	t.Helper()
	var col models.Column
	require.NoError(t, f.db.First(&col, "id = ?", columnID).Error)
	return col.CellOrder
}

func (f *boardFixture) addCell(t *testing.T, columnID uuid.UUID, company string) *models.Cell {
	t.Helper()
	cell, err := f.svc.CreateCell(columnID, f.ownerID, dto.CellForm{
		Company:  company,
		Position: "SWE",
		Location: "NYC",
	})
	require.NoError(t, err)
	return cell
}

func TestCreateColumnAppendsToBoard(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")

	col, err := f.svc.CreateColumn(f.boardID, f.ownerID, dto.ColumnForm{Title: "Rejected", Color: "red"})
	require.NoError(t, err)

	var board models.Board
	require.NoError(t, f.db.First(&board, "id = ?", f.boardID).Error)
	require.Len(t, board.ColumnOrder, 6)
	assert.Equal(t, col.ID, board.ColumnOrder[5])
}

func TestCreateColumnRequiresTitle(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")

	_, err := f.svc.CreateColumn(f.boardID, f.ownerID, dto.ColumnForm{Color: "red"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateColumnUnknownBoard(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")

	_, err := f.svc.CreateColumn(uuid.New(), f.ownerID, dto.ColumnForm{Title: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateColumnForbidden(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	other := seedOwner(t, f.db, "bob@x.com")

	_, err := f.svc.CreateColumn(f.boardID, other.ownerID, dto.ColumnForm{Title: "X"})
	assert.ErrorIs(t, err, ErrForbidden)

	var board models.Board
	require.NoError(t, f.db.First(&board, "id = ?", f.boardID).Error)
	assert.Len(t, board.ColumnOrder, 5)
}

func TestCreateCellAppendsInOrder(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	applied := f.columns["Applied"]

	first := f.addCell(t, applied, "Acme")
	second := f.addCell(t, applied, "Globex")

	order := f.cellOrder(t, applied)
	require.Len(t, order, 2)
	assert.Equal(t, first.ID, order[0])
	assert.Equal(t, second.ID, order[1])
}

func TestUpdateCellIgnoresOwnerID(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	cell := f.addCell(t, f.columns["Applied"], "Acme")

	err := f.svc.UpdateCell(cell.ID, f.ownerID, map[string]interface{}{
		"company":  "Initech",
		"owner_id": uuid.New().String(),
	})
	require.NoError(t, err)

	var got models.Cell
	require.NoError(t, f.db.First(&got, "id = ?", cell.ID).Error)
	assert.Equal(t, "Initech", got.Company)
	assert.Equal(t, f.ownerID, got.OwnerID)
}

func TestUpdateColumnForbiddenLeavesUnmodified(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	other := seedOwner(t, f.db, "bob@x.com")
	applied := f.columns["Applied"]

	err := f.svc.UpdateColumn(applied, other.ownerID, map[string]interface{}{"title": "Hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	var col models.Column
	require.NoError(t, f.db.First(&col, "id = ?", applied).Error)
	assert.Equal(t, "Applied", col.Title)
}

func TestDeleteColumnCascadesCells(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	applied := f.columns["Applied"]
	cell := f.addCell(t, applied, "Acme")

	require.NoError(t, f.svc.DeleteColumn(applied, f.ownerID))

	var board models.Board
	require.NoError(t, f.db.First(&board, "id = ?", f.boardID).Error)
	assert.Len(t, board.ColumnOrder, 4)
	assert.NotContains(t, []uuid.UUID(board.ColumnOrder), applied)

	err := f.db.First(&models.Column{}, "id = ?", applied).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = f.db.First(&models.Cell{}, "id = ?", cell.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteColumnForbidden(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	other := seedOwner(t, f.db, "bob@x.com")

	err := f.svc.DeleteColumn(f.columns["Applied"], other.ownerID)
	assert.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, f.db.Model(&models.Column{}).Where("board_id = ?", f.boardID).Count(&count).Error)
	assert.EqualValues(t, 5, count)
}

func TestDeleteCellRemovesFromOrder(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	applied := f.columns["Applied"]
	keep := f.addCell(t, applied, "Acme")
	gone := f.addCell(t, applied, "Globex")

	require.NoError(t, f.svc.DeleteCell(gone.ID, f.ownerID))

	order := f.cellOrder(t, applied)
	require.Len(t, order, 1)
	assert.Equal(t, keep.ID, order[0])

	err := f.db.First(&models.Cell{}, "id = ?", gone.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMoveCellAcrossColumns(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	applied := f.columns["Applied"]
	interview := f.columns["Interview"]
	cell := f.addCell(t, applied, "Acme")

	require.NoError(t, f.svc.MoveCell(f.ownerID, applied, 0, interview, 0))

	assert.Empty(t, f.cellOrder(t, applied))
	order := f.cellOrder(t, interview)
	require.Len(t, order, 1)
	assert.Equal(t, cell.ID, order[0])
}

func TestMoveCellPreservesMultiset(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	applied := f.columns["Applied"]
	offer := f.columns["Offer"]
	for _, company := range []string{"Acme", "Globex", "Initech"} {
		f.addCell(t, applied, company)
	}
	f.addCell(t, offer, "Hooli")

	require.NoError(t, f.svc.MoveCell(f.ownerID, applied, 1, offer, 1))

	src := f.cellOrder(t, applied)
	dst := f.cellOrder(t, offer)
	assert.Len(t, src, 2)
	assert.Len(t, dst, 2)

	seen := make(map[uuid.UUID]int)
	for _, id := range append(src, dst...) {
		seen[id]++
	}
	assert.Len(t, seen, 4)
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}

func TestMoveCellSameColumnReorder(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	applied := f.columns["Applied"]
	a := f.addCell(t, applied, "Acme")
	b := f.addCell(t, applied, "Globex")
	c := f.addCell(t, applied, "Initech")

	require.NoError(t, f.svc.MoveCell(f.ownerID, applied, 0, applied, 2))

	order := f.cellOrder(t, applied)
	require.Len(t, order, 3)
	assert.Equal(t, []uuid.UUID{b.ID, c.ID, a.ID}, []uuid.UUID(order))
}

func TestMoveCellSourceIndexOutOfRange(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	applied := f.columns["Applied"]
	interview := f.columns["Interview"]
	f.addCell(t, applied, "Acme")

	assert.ErrorIs(t, f.svc.MoveCell(f.ownerID, applied, 1, interview, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.svc.MoveCell(f.ownerID, applied, -1, interview, 0), ErrIndexOutOfRange)

	// Failed moves leave the source untouched.
	assert.Len(t, f.cellOrder(t, applied), 1)
}

func TestMoveCellClampsDestIndex(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	applied := f.columns["Applied"]
	interview := f.columns["Interview"]
	cell := f.addCell(t, applied, "Acme")
	f.addCell(t, interview, "Globex")

	require.NoError(t, f.svc.MoveCell(f.ownerID, applied, 0, interview, 99))

	order := f.cellOrder(t, interview)
	require.Len(t, order, 2)
	assert.Equal(t, cell.ID, order[1])
}

func TestMoveCellForbidden(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	other := seedOwner(t, f.db, "bob@x.com")
	f.addCell(t, f.columns["Applied"], "Acme")

	err := f.svc.MoveCell(other.ownerID, f.columns["Applied"], 0, f.columns["Interview"], 0)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, f.cellOrder(t, f.columns["Applied"]), 1)
}

func TestMoveCellUnknownColumn(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	f.addCell(t, f.columns["Applied"], "Acme")

	err := f.svc.MoveCell(f.ownerID, f.columns["Applied"], 0, uuid.New(), 0)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, f.cellOrder(t, f.columns["Applied"]), 1)
}

func TestGetBoardPopulatesInOrder(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")
	applied := f.columns["Applied"]
	a := f.addCell(t, applied, "Acme")
	b := f.addCell(t, applied, "Globex")

	board, err := f.svc.GetBoard(f.ownerID)
	require.NoError(t, err)
	require.Len(t, board.Columns, 5)

	titles := make([]string, 0, 5)
	for _, col := range board.Columns {
		titles = append(titles, col.Title)
	}
	assert.Equal(t, []string{"Wish List", "Applied", "Phone Screen", "Interview", "Offer"}, titles)

	cells := board.Columns[1].Cells
	require.Len(t, cells, 2)
	assert.Equal(t, a.ID, cells[0].ID)
	assert.Equal(t, b.ID, cells[1].ID)
	assert.Equal(t, "Acme", cells[0].Company)
}

func TestGetBoardUnknownOwner(t *testing.T) {
	f := newBoardFixture(t, "alice@x.com")

	_, err := f.svc.GetBoard(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
