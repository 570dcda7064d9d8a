package main

import "fmt"

type Cell int

const (
	CellEmpty Cell = iota
	CellRed
	CellYellow
)

const (
	BoardRows = 6
	BoardCols = 7
	WinLength = 4
	CenterCol = 3
)

var ErrIllegalMove = fmt.Errorf("illegal move")

// Board is a value type: assignment copies the whole grid, so move
// application never aliases the parent position.
type Board struct {
	cells [BoardRows * BoardCols]Cell
}

func NewBoard() Board {
	return Board{}
}

// At returns the cell at (row, col), row 0 being the top row.
func (b Board) At(row, col int) Cell {
	return b.cells[row*BoardCols+col]
}

func (b *Board) set(row, col int, value Cell) {
	b.cells[row*BoardCols+col] = value
}

func InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < BoardRows && col < BoardCols
}

// Apply drops a piece for player into column, returning the resulting
// board. The receiver is left untouched. Dropping into a full or
// out-of-range column fails with ErrIllegalMove.
func (b Board) Apply(col int, player PlayerColor) (Board, error) {
	if col < 0 || col >= BoardCols {
		return Board{}, fmt.Errorf("%w: column %d out of range", ErrIllegalMove, col)
	}
	for row := BoardRows - 1; row >= 0; row-- {
		if b.At(row, col) == CellEmpty {
			next := b
			next.set(row, col, CellFromPlayer(player))
			return next, nil
		}
	}
	return Board{}, fmt.Errorf("%w: column %d is full", ErrIllegalMove, col)
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Grid() [][]int {
	grid := make([][]int, BoardRows)
	for row := 0; row < BoardRows; row++ {
		grid[row] = make([]int, BoardCols)
		for col := 0; col < BoardCols; col++ {
			grid[row][col] = int(b.At(row, col))
		}
	}
	return grid
}

func (c Cell) String() string {
	switch c {
	case CellRed:
		return "Red"
	case CellYellow:
		return "Yellow"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerRed {
		return CellRed
	}
	return CellYellow
}

func PlayerFromCell(cell Cell) (PlayerColor, error) {
	switch cell {
	case CellRed:
		return PlayerRed, nil
	case CellYellow:
		return PlayerYellow, nil
	default:
		return PlayerRed, fmt.Errorf("empty cell has no player")
	}
}
