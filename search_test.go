package main

import (
	"errors"
	"testing"
)

func TestSelectMoveRejectsInvalidDepth(t *testing.T) {
	b := NewBoard()
	if _, err := SelectMove(b, AlgorithmAlphaBeta, 0, PlayerRed, nil); !errors.Is(err, ErrInvalidDepth) {
		t.Fatalf("expected ErrInvalidDepth, got %v", err)
	}
	if _, err := SelectMove(b, AlgorithmMTDF, -3, PlayerRed, NewTranspositionTable(0)); !errors.Is(err, ErrInvalidDepth) {
		t.Fatalf("expected ErrInvalidDepth, got %v", err)
	}
}

func TestSelectMoveRejectsFullBoard(t *testing.T) {
	b := boardFromRows(t, [6]string{
		"RRYYRRY",
		"YYRRYYR",
		"RRYYRRY",
		"YYRRYYR",
		"RRYYRRY",
		"YYRRYYR",
	})
	if _, err := SelectMove(b, AlgorithmAlphaBeta, 3, PlayerRed, nil); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
}

func TestSelectMoveFindsWinInOne(t *testing.T) {
	// Red has three in a row on the bottom rank with both ends open.
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		".......",
		".Y.Y...",
		".RRR.Y.",
	})
	for _, algorithm := range []Algorithm{AlgorithmAlphaBeta, AlgorithmAlphaBetaTT, AlgorithmMTDF} {
		result, err := SelectMove(b, algorithm, 4, PlayerRed, NewTranspositionTable(0))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algorithm, err)
		}
		if result.Column != 0 && result.Column != 4 {
			t.Fatalf("%s: expected winning column 0 or 4, got %d", algorithm, result.Column)
		}
		if result.Score < winScore {
			t.Fatalf("%s: expected winning score, got %d", algorithm, result.Score)
		}
	}
}

func TestSelectMoveStrategiesAgree(t *testing.T) {
	// A quiet midgame position with no forced line; all three strategies
	// search the same tree and must land on the same column and score.
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		"...Y...",
		"..RR...",
		".YRYR..",
	})
	baseline, err := SelectMove(b, AlgorithmAlphaBeta, 4, PlayerYellow, nil)
	if err != nil {
		t.Fatalf("alphabeta: unexpected error: %v", err)
	}
	for _, algorithm := range []Algorithm{AlgorithmAlphaBetaTT, AlgorithmMTDF} {
		result, err := SelectMove(b, algorithm, 4, PlayerYellow, NewTranspositionTable(0))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algorithm, err)
		}
		if result.Column != baseline.Column || result.Score != baseline.Score {
			t.Fatalf("%s disagrees with alphabeta: got col=%d score=%d, want col=%d score=%d",
				algorithm, result.Column, result.Score, baseline.Column, baseline.Score)
		}
	}
}

func TestSelectMoveIsDeterministic(t *testing.T) {
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		".......",
		"...R...",
		"..YRY..",
	})
	tt := NewTranspositionTable(0)
	first, err := SelectMove(b, AlgorithmMTDF, 5, PlayerRed, tt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A warm table must change node counts, never the answer.
	second, err := SelectMove(b, AlgorithmMTDF, 5, PlayerRed, tt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Column != second.Column || first.Score != second.Score {
		t.Fatalf("warm table changed result: first col=%d score=%d, second col=%d score=%d",
			first.Column, first.Score, second.Column, second.Score)
	}
}

func TestSelectMoveDepthOneCountsNodes(t *testing.T) {
	for _, algorithm := range []Algorithm{AlgorithmAlphaBeta, AlgorithmAlphaBetaTT, AlgorithmMTDF} {
		result, err := SelectMove(NewBoard(), algorithm, 1, PlayerRed, NewTranspositionTable(0))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algorithm, err)
		}
		if result.Nodes != int64(BoardCols) {
			t.Fatalf("%s: expected one node per candidate (%d), got %d", algorithm, BoardCols, result.Nodes)
		}
	}
}

func TestTableKeysSeparatePerSubject(t *testing.T) {
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"..RY...",
	})
	redCtx := &searchContext{subject: PlayerRed}
	yellowCtx := &searchContext{subject: PlayerYellow}
	if redCtx.ttKey(b, PlayerRed) == yellowCtx.ttKey(b, PlayerRed) {
		t.Fatalf("same key for different search subjects")
	}
	if redCtx.ttKey(b, PlayerRed) == redCtx.ttKey(b, PlayerYellow) {
		t.Fatalf("same key for different movers")
	}
}

func TestSharedTableAcrossSubjectsKeepsResults(t *testing.T) {
	// Scores cached while searching for one side must never leak into a
	// search for the other, even over the same table.
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"..RY...",
	})
	tt := NewTranspositionTable(0)
	if _, err := SelectMove(b, AlgorithmAlphaBetaTT, 5, PlayerRed, tt); err != nil {
		t.Fatalf("red search: unexpected error: %v", err)
	}
	shared, err := SelectMove(b, AlgorithmAlphaBetaTT, 5, PlayerYellow, tt)
	if err != nil {
		t.Fatalf("yellow search: unexpected error: %v", err)
	}
	fresh, err := SelectMove(b, AlgorithmAlphaBetaTT, 5, PlayerYellow, NewTranspositionTable(0))
	if err != nil {
		t.Fatalf("yellow fresh search: unexpected error: %v", err)
	}
	if shared.Column != fresh.Column || shared.Score != fresh.Score {
		t.Fatalf("shared table changed yellow's result: got col=%d score=%d, want col=%d score=%d",
			shared.Column, shared.Score, fresh.Column, fresh.Score)
	}
}

func TestTranspositionTablePrunesNodes(t *testing.T) {
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		"...Y...",
		"..RR...",
		".YRYR..",
	})
	plain, err := SelectMove(b, AlgorithmAlphaBeta, 6, PlayerYellow, nil)
	if err != nil {
		t.Fatalf("alphabeta: unexpected error: %v", err)
	}
	cached, err := SelectMove(b, AlgorithmAlphaBetaTT, 6, PlayerYellow, NewTranspositionTable(0))
	if err != nil {
		t.Fatalf("transposition: unexpected error: %v", err)
	}
	if cached.Nodes > plain.Nodes {
		t.Fatalf("expected cached search to visit no more nodes: plain=%d cached=%d", plain.Nodes, cached.Nodes)
	}
}

func TestSelectMovePrefersFasterWin(t *testing.T) {
	// Red can win immediately at column 0; a deep search must still take
	// the instant win rather than a delayed one.
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		".Y.....",
		".R.YY..",
		".RRRY..",
	})
	result, err := SelectMove(b, AlgorithmMTDF, 6, PlayerRed, NewTranspositionTable(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Column != 0 {
		t.Fatalf("expected immediate win at column 0, got %d", result.Column)
	}
	if result.Score < winScore {
		t.Fatalf("expected winning score, got %d", result.Score)
	}
}

func TestSelectMoveBlocksOpponentThree(t *testing.T) {
	// Yellow threatens 0-1-2-3 on the bottom rank; red has no win of its
	// own and must cover column 3.
	b := boardFromRows(t, [6]string{
		".......",
		".......",
		".......",
		".......",
		".R.....",
		"YYY..R.",
	})
	for _, algorithm := range []Algorithm{AlgorithmAlphaBeta, AlgorithmAlphaBetaTT, AlgorithmMTDF} {
		result, err := SelectMove(b, algorithm, 4, PlayerRed, NewTranspositionTable(0))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algorithm, err)
		}
		if result.Column != 3 {
			t.Fatalf("%s: expected blocking move at column 3, got %d", algorithm, result.Column)
		}
	}
}
