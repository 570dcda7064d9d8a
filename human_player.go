package main

type HumanPlayer struct {
	pending    bool
	pendingCol int
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

func (h *HumanPlayer) ChooseMove(GameState, *TranspositionTable) (int, SearchResult, bool) {
	return -1, SearchResult{}, false
}

func (h *HumanPlayer) SetPendingColumn(col int) {
	h.pendingCol = col
	h.pending = true
}

func (h *HumanPlayer) HasPendingColumn() bool {
	return h.pending
}

func (h *HumanPlayer) TakePendingColumn() int {
	h.pending = false
	return h.pendingCol
}
