package main

// Move names a single cell of the grid. Drops are addressed by column
// only; Move is what history entries and winning lines carry to the UI.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) Equals(other Move) bool {
	return m.Row == other.Row && m.Col == other.Col
}
