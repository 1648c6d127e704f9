package domain

import "fmt"

// Board is the display grid. It only records where the server said a
// marker landed; it never decides where one should land.
// Row 0 is the bottom row.
type Board struct {
	cells [][]PlayerID
	moves int
}

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

func (b *Board) Reset() {
	b.cells = make([][]PlayerID, Rows)
	for i := range b.cells {
		b.cells[i] = make([]PlayerID, Columns)
	}
	b.moves = 0
}

func InBounds(row, column int) bool {
	return row >= 0 && row < Rows && column >= 0 && column < Columns
}

// Place puts the player's marker at (column, row).
func (b *Board) Place(player PlayerID, column, row int) error {
	if !player.IsPlayer() {
		return fmt.Errorf("%w: player %d", ErrInvalidCell, player)
	}
	if !InBounds(row, column) {
		return fmt.Errorf("%w: column %d row %d", ErrInvalidCell, column, row)
	}
	if b.cells[row][column] == Empty {
		b.moves++
	}
	b.cells[row][column] = player
	return nil
}

func (b *Board) At(row, column int) PlayerID {
	if !InBounds(row, column) {
		return Empty
	}
	return b.cells[row][column]
}

// Moves counts the occupied cells.
func (b *Board) Moves() int {
	return b.moves
}

// Snapshot returns a deep copy of the grid
func (b *Board) Snapshot() [][]PlayerID {
	out := make([][]PlayerID, len(b.cells))
	for i := range b.cells {
		out[i] = make([]PlayerID, len(b.cells[i]))
		copy(out[i], b.cells[i])
	}
	return out
}
