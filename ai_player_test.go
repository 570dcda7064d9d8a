package main

import (
	"testing"
	"time"
)

func withTestConfig(t *testing.T, config Config) {
	t.Helper()
	prev := configStore.Get()
	configStore.Update(config)
	t.Cleanup(func() { configStore.Update(prev) })
}

func TestAIPlayerTakesImmediateWin(t *testing.T) {
	withTestConfig(t, Config{AiAlgorithm: "mtdf", AiDepth: 4})
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		".......",
		".Y.Y...",
		".RRR.Y.",
	})
	state := GameState{Board: b, ToMove: PlayerRed, Status: StatusRunning}
	ai := NewAIPlayer()
	col, result, ok := ai.ChooseMove(state, NewTranspositionTable(0))
	if !ok {
		t.Fatalf("expected a move")
	}
	if col != 0 && col != 4 {
		t.Fatalf("expected winning column 0 or 4, got %d", col)
	}
	if result.Score < winScore {
		t.Fatalf("expected winning score, got %d", result.Score)
	}
}

func TestAIPlayerBlocksOpponentThreat(t *testing.T) {
	withTestConfig(t, Config{AiAlgorithm: "transposition", AiDepth: 4})
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		".......",
		".R.....",
		"YYY..R.",
	})
	state := GameState{Board: b, ToMove: PlayerRed, Status: StatusRunning}
	ai := NewAIPlayer()
	col, _, ok := ai.ChooseMove(state, NewTranspositionTable(0))
	if !ok {
		t.Fatalf("expected a move")
	}
	if col != 3 {
		t.Fatalf("expected blocking move at column 3, got %d", col)
	}
}

func TestAIPlayerUnknownAlgorithmFallsBack(t *testing.T) {
	withTestConfig(t, Config{AiAlgorithm: "minimax", AiDepth: 2})
	state := GameState{Board: NewBoard(), ToMove: PlayerYellow, Status: StatusRunning}
	ai := NewAIPlayer()
	col, _, ok := ai.ChooseMove(state, NewTranspositionTable(0))
	if !ok {
		t.Fatalf("expected a move despite unknown algorithm name")
	}
	if col < 0 || col >= BoardCols {
		t.Fatalf("column out of range: %d", col)
	}
}

func TestAIPlayerAsyncMoveFlow(t *testing.T) {
	withTestConfig(t, Config{AiAlgorithm: "mtdf", AiDepth: 3})
	state := GameState{Board: NewBoard(), ToMove: PlayerRed, Status: StatusRunning}
	ai := NewAIPlayer()
	if ai.HasMoveReady() {
		t.Fatalf("no move should be ready before thinking")
	}
	ai.StartThinking(state, NewTranspositionTable(0))

	deadline := time.After(5 * time.Second)
	for !ai.HasMoveReady() {
		select {
		case <-deadline:
			t.Fatalf("worker never produced a move")
		case <-time.After(5 * time.Millisecond):
		}
	}
	col, result := ai.TakeMove()
	if col < 0 || col >= BoardCols {
		t.Fatalf("column out of range: %d", col)
	}
	if result.Nodes <= 0 {
		t.Fatalf("expected node count from search, got %d", result.Nodes)
	}
	if ai.HasMoveReady() {
		t.Fatalf("TakeMove should consume the pending move")
	}
	if ai.IsThinking() {
		t.Fatalf("worker should be done after the move is ready")
	}
}
