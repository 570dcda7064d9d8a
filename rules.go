package main

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeRedWin
	OutcomeYellowWin
	OutcomeDraw
)

// Scan directions: horizontal, vertical, both diagonals.
var winDirections = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// LegalMoves returns the playable columns in ascending order. The order
// matters: it fixes move generation and therefore tie-breaking for every
// search strategy.
func LegalMoves(b Board) []int {
	moves := make([]int, 0, BoardCols)
	for col := 0; col < BoardCols; col++ {
		if b.At(0, col) == CellEmpty {
			moves = append(moves, col)
		}
	}
	return moves
}

func IsFull(b Board) bool {
	for col := 0; col < BoardCols; col++ {
		if b.At(0, col) == CellEmpty {
			return false
		}
	}
	return true
}

// Winner scans every four-in-a-row window. Simultaneous wins for both
// sides cannot occur under legal play, so the first run found decides.
func Winner(b Board) Outcome {
	for row := 0; row < BoardRows; row++ {
		for col := 0; col < BoardCols; col++ {
			cell := b.At(row, col)
			if cell == CellEmpty {
				continue
			}
			for _, dir := range winDirections {
				if hasRun(b, row, col, dir[0], dir[1], cell) {
					if cell == CellRed {
						return OutcomeRedWin
					}
					return OutcomeYellowWin
				}
			}
		}
	}
	if IsFull(b) {
		return OutcomeDraw
	}
	return OutcomeNone
}

// WinningLine returns the four cells of the first winning run, for UI
// highlighting. Second result is false when no side has won.
func WinningLine(b Board) ([]Move, bool) {
	for row := 0; row < BoardRows; row++ {
		for col := 0; col < BoardCols; col++ {
			cell := b.At(row, col)
			if cell == CellEmpty {
				continue
			}
			for _, dir := range winDirections {
				if !hasRun(b, row, col, dir[0], dir[1], cell) {
					continue
				}
				line := make([]Move, 0, WinLength)
				for i := 0; i < WinLength; i++ {
					line = append(line, Move{Row: row + i*dir[0], Col: col + i*dir[1]})
				}
				return line, true
			}
		}
	}
	return nil, false
}

func hasRun(b Board, row, col, dr, dc int, target Cell) bool {
	endRow := row + (WinLength-1)*dr
	endCol := col + (WinLength-1)*dc
	if !InBounds(endRow, endCol) {
		return false
	}
	for i := 1; i < WinLength; i++ {
		if b.At(row+i*dr, col+i*dc) != target {
			return false
		}
	}
	return true
}

func outcomeFor(player PlayerColor) Outcome {
	if player == PlayerRed {
		return OutcomeRedWin
	}
	return OutcomeYellowWin
}

func (o Outcome) String() string {
	switch o {
	case OutcomeRedWin:
		return "red_win"
	case OutcomeYellowWin:
		return "yellow_win"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}
