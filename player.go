package main

type IPlayer interface {
	IsHuman() bool
	ChooseMove(state GameState, tt *TranspositionTable) (int, SearchResult, bool)
}
