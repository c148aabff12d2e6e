// Package game implements the tic-tac-toe board. The board travels on the
// wire as a 9-character digit string in row-major order, so the cells are
// kept in that encoding directly.
package game

import "fmt"

const (
	// BoardSize is the width of the square board.
	BoardSize = 3
	// Cells is the total number of board cells.
	Cells = BoardSize * BoardSize
)

// Cell values, matching the wire encoding.
const (
	Empty = '0'
	MarkX = '1'
	MarkO = '2'
)

// Board holds the nine cells of a game, index = y*3 + x.
type Board [Cells]byte

// lines enumerates every winning triple of cell indices.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// NewBoard returns an empty board.
func NewBoard() Board {
	var b Board
	for i := range b {
		b[i] = Empty
	}
	return b
}

// ParseBoard decodes the 9-character wire form of a board.
func ParseBoard(s string) (Board, error) {
	var b Board
	if len(s) != Cells {
		return b, fmt.Errorf("board status must be %d characters, got %d", Cells, len(s))
	}
	for i := 0; i < Cells; i++ {
		c := s[i]
		if c != Empty && c != MarkX && c != MarkO {
			return b, fmt.Errorf("invalid board cell %q at index %d", c, i)
		}
		b[i] = c
	}
	return b, nil
}

// String returns the wire form of the board.
func (b Board) String() string {
	return string(b[:])
}

// Place writes mark into the cell at index, reporting whether the move was
// legal. Occupied cells and out-of-range indices are rejected.
func (b *Board) Place(index int, mark byte) bool {
	if index < 0 || index >= Cells || b[index] != Empty {
		return false
	}
	b[index] = mark
	return true
}

// Full reports whether every cell is occupied.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Winner returns the mark holding a completed line, or Empty if no player
// has won yet.
func (b Board) Winner() byte {
	for _, l := range lines {
		if b[l[0]] != Empty && b[l[0]] == b[l[1]] && b[l[1]] == b[l[2]] {
			return b[l[0]]
		}
	}
	return Empty
}
