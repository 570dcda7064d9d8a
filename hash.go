package main

// Position keys must be collision-free and must distinguish whose turn
// it is: structurally equal boards with different movers are different
// positions in the transposition table.
//
// Under the gravity invariant each column is a contiguous stack, so a
// column encodes exactly as a leading-1 run code: start from 1, then one
// bit per occupied cell from the bottom up (1 = red). A stack of height
// h uses h+1 bits, at most 7 per column, 49 bits for the board; one more
// bit carries the side to move. The packing is injective, so distinct
// reachable positions never share a key.

func hashPosition(b Board, toMove PlayerColor) uint64 {
	var key uint64
	for col := 0; col < BoardCols; col++ {
		key = key<<7 | columnCode(b, col)
	}
	key <<= 1
	if toMove == PlayerYellow {
		key |= 1
	}
	return key
}

func columnCode(b Board, col int) uint64 {
	code := uint64(1)
	for row := BoardRows - 1; row >= 0; row-- {
		cell := b.At(row, col)
		if cell == CellEmpty {
			break
		}
		code <<= 1
		if cell == CellRed {
			code |= 1
		}
	}
	return code
}
