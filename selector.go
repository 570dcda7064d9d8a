package main

import (
	"fmt"
	"time"
)

// Algorithm is the closed set of search strategies. It is decoded from
// configuration once, here at the selector boundary; the recursion never
// re-dispatches on it.
type Algorithm int

const (
	AlgorithmAlphaBeta Algorithm = iota
	AlgorithmAlphaBetaTT
	AlgorithmMTDF
)

var ErrInvalidDepth = fmt.Errorf("invalid search depth")

func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "alphabeta":
		return AlgorithmAlphaBeta, nil
	case "transposition":
		return AlgorithmAlphaBetaTT, nil
	case "mtdf":
		return AlgorithmMTDF, nil
	}
	return AlgorithmAlphaBeta, fmt.Errorf("unknown algorithm %q", name)
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmAlphaBetaTT:
		return "transposition"
	case AlgorithmMTDF:
		return "mtdf"
	default:
		return "alphabeta"
	}
}

// SearchResult is everything the selector reports: the chosen column,
// its score from the subject's perspective, and the node total across
// the whole root call.
type SearchResult struct {
	Column  int
	Score   int
	Nodes   int64
	Elapsed time.Duration
}

// SelectMove picks a column for subject by scoring every legal root move
// with the configured strategy at depth-1. Candidates run in ascending
// column order with a strict improvement test, so the lowest column
// reaching the best score wins ties. The caller owns tt and its
// lifecycle; passing the same table across turns reuses cached bounds
// but never changes the chosen move.
func SelectMove(b Board, algorithm Algorithm, depth int, subject PlayerColor, tt *TranspositionTable) (SearchResult, error) {
	if depth < 1 {
		return SearchResult{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	moves := LegalMoves(b)
	if len(moves) == 0 {
		return SearchResult{}, fmt.Errorf("%w: no playable column", ErrIllegalMove)
	}

	stats := &SearchStats{Start: time.Now()}
	ctx := &searchContext{subject: subject, tt: tt, stats: stats}
	opponent := otherPlayer(subject)

	bestScore := -scoreInfinity
	bestCol := -1
	for _, col := range moves {
		child, err := b.Apply(col, subject)
		if err != nil {
			return SearchResult{}, err
		}
		var score int
		switch algorithm {
		case AlgorithmAlphaBeta:
			score = alphaBeta(child, depth-1, -scoreInfinity, scoreInfinity, false, ctx)
		case AlgorithmAlphaBetaTT:
			score = alphaBetaTT(child, depth-1, -scoreInfinity, scoreInfinity, false, ctx)
		case AlgorithmMTDF:
			if depth == 1 {
				stats.Nodes++
				score, _ = terminalScore(child, 0, ctx)
			} else {
				// Deepening runs per candidate, not once across the
				// root; each child warms the table for its own deeper
				// iterations.
				score = mtdfIterative(child, depth-1, opponent, ctx)
			}
		}
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
	}
	return SearchResult{
		Column:  bestCol,
		Score:   bestScore,
		Nodes:   stats.Nodes,
		Elapsed: time.Since(stats.Start),
	}, nil
}
