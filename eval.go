package main

// Static evaluation weights. A window is any run of four cells along a
// row, column or diagonal; windows mixing both colors score zero.
const (
	weightFour        = 100
	weightThree       = 5
	weightTwo         = 2
	weightOppThree    = -4
	weightOppTwo      = -1
	weightCenterPiece = 3
)

type windowCounts struct {
	subject  int
	opponent int
	empty    int
}

var evalWindows = buildWindows()

// buildWindows enumerates every length-4 window once at startup; the
// evaluator just walks the precomputed index lists.
func buildWindows() [][WinLength]int {
	windows := [][WinLength]int{}
	for row := 0; row < BoardRows; row++ {
		for col := 0; col < BoardCols; col++ {
			for _, dir := range winDirections {
				endRow := row + (WinLength-1)*dir[0]
				endCol := col + (WinLength-1)*dir[1]
				if !InBounds(endRow, endCol) {
					continue
				}
				var window [WinLength]int
				for i := 0; i < WinLength; i++ {
					window[i] = (row + i*dir[0]) * BoardCols + (col + i*dir[1])
				}
				windows = append(windows, window)
			}
		}
	}
	return windows
}

// EvaluateBoard scores a non-terminal position from subject's point of
// view: window counts over all four directions plus a center-column
// bonus. Not guaranteed anti-symmetric between the two sides.
func EvaluateBoard(b Board, subject PlayerColor) int {
	subjectCell := CellFromPlayer(subject)
	score := 0
	for _, window := range evalWindows {
		score += scoreWindow(b, window, subjectCell)
	}
	for row := 0; row < BoardRows; row++ {
		if b.At(row, CenterCol) == subjectCell {
			score += weightCenterPiece
		}
	}
	return score
}

func scoreWindow(b Board, window [WinLength]int, subjectCell Cell) int {
	var counts windowCounts
	for _, idx := range window {
		switch cell := b.cells[idx]; {
		case cell == CellEmpty:
			counts.empty++
		case cell == subjectCell:
			counts.subject++
		default:
			counts.opponent++
		}
	}
	switch {
	case counts.subject == 4:
		return weightFour
	case counts.subject == 3 && counts.empty == 1:
		return weightThree
	case counts.subject == 2 && counts.empty == 2:
		return weightTwo
	case counts.opponent == 3 && counts.empty == 1:
		return weightOppThree
	case counts.opponent == 2 && counts.empty == 2:
		return weightOppTwo
	}
	return 0
}
