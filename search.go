package main

import "time"

const (
	winScore      = 10000
	scoreInfinity = 1 << 30
)

// SearchStats accumulates diagnostics across one root-level call. Node
// and cutoff counts never feed back into search decisions.
type SearchStats struct {
	Start   time.Time
	Nodes   int64
	Cutoffs int64
}

// searchContext threads the per-call environment through the recursion:
// which side the search is optimizing for, the session transposition
// table, and the shared counters.
type searchContext struct {
	subject PlayerColor
	tt      *TranspositionTable
	stats   *SearchStats
}

// ttKey derives the transposition table key for a node. Cached scores are
// relative to the search subject, so the subject is folded in alongside
// the position and mover: searches optimizing for different sides never
// share entries.
func (ctx *searchContext) ttKey(b Board, toMove PlayerColor) uint64 {
	key := hashPosition(b, toMove) << 1
	if ctx.subject == PlayerYellow {
		key |= 1
	}
	return key
}

// terminalScore resolves won, lost and exhausted positions. remaining is
// the depth still available at this node: wins found earlier in the tree
// score higher, losses found earlier score lower, so the search prefers
// fast wins and slow losses.
func terminalScore(b Board, remaining int, ctx *searchContext) (int, bool) {
	switch outcome := Winner(b); outcome {
	case OutcomeRedWin, OutcomeYellowWin:
		if outcome == outcomeFor(ctx.subject) {
			return winScore + remaining, true
		}
		return -winScore - remaining, true
	case OutcomeDraw:
		return EvaluateBoard(b, ctx.subject), true
	}
	if remaining == 0 {
		return EvaluateBoard(b, ctx.subject), true
	}
	return 0, false
}

// alphaBeta is depth-limited minimax with pruning and no memory. The
// maximizing side is always ctx.subject; candidates iterate in ascending
// column order so the first move reaching the best score wins ties.
func alphaBeta(b Board, depth, alpha, beta int, maximizing bool, ctx *searchContext) int {
	ctx.stats.Nodes++
	if score, done := terminalScore(b, depth, ctx); done {
		return score
	}

	mover := ctx.subject
	if !maximizing {
		mover = otherPlayer(ctx.subject)
	}
	if maximizing {
		best := -scoreInfinity
		for _, col := range LegalMoves(b) {
			child, err := b.Apply(col, mover)
			if err != nil {
				continue
			}
			value := alphaBeta(child, depth-1, alpha, beta, false, ctx)
			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				ctx.stats.Cutoffs++
				break // beta cutoff
			}
		}
		return best
	}
	best := scoreInfinity
	for _, col := range LegalMoves(b) {
		child, err := b.Apply(col, mover)
		if err != nil {
			continue
		}
		value := alphaBeta(child, depth-1, alpha, beta, true, ctx)
		if value < best {
			best = value
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			ctx.stats.Cutoffs++
			break // alpha cutoff
		}
	}
	return best
}

// alphaBetaTT runs the same recursion as alphaBeta behind a bound-typed
// transposition probe. Cached entries searched at least this deep either
// answer the node outright (exact, or a bound that closes the window) or
// tighten alpha/beta before the children are visited. The computed score
// is classified against the window as received at entry.
func alphaBetaTT(b Board, depth, alpha, beta int, maximizing bool, ctx *searchContext) int {
	ctx.stats.Nodes++
	mover := ctx.subject
	if !maximizing {
		mover = otherPlayer(ctx.subject)
	}
	key := ctx.ttKey(b, mover)
	alphaOrig := alpha
	betaOrig := beta
	if entry, ok := ctx.tt.Probe(key); ok && entry.Depth >= depth {
		if value, done := applyTTEntry(entry, &alpha, &beta, ctx.stats); done {
			return value
		}
	}

	var score int
	if terminal, done := terminalScore(b, depth, ctx); done {
		score = terminal
	} else if maximizing {
		score = -scoreInfinity
		for _, col := range LegalMoves(b) {
			child, err := b.Apply(col, mover)
			if err != nil {
				continue
			}
			value := alphaBetaTT(child, depth-1, alpha, beta, false, ctx)
			if value > score {
				score = value
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				ctx.stats.Cutoffs++
				break
			}
		}
	} else {
		score = scoreInfinity
		for _, col := range LegalMoves(b) {
			child, err := b.Apply(col, mover)
			if err != nil {
				continue
			}
			value := alphaBetaTT(child, depth-1, alpha, beta, true, ctx)
			if value < score {
				score = value
			}
			if score < beta {
				beta = score
			}
			if beta <= alpha {
				ctx.stats.Cutoffs++
				break
			}
		}
	}

	ctx.tt.Store(key, depth, score, classifyScore(score, alphaOrig, betaOrig))
	return score
}

// applyTTEntry folds a cached entry into the live window. An exact entry
// answers the node; a lower bound raises alpha, an upper bound lowers
// beta, and a window closed by either bound answers with the cached
// score. The caller has already checked entry.Depth.
func applyTTEntry(entry TTEntry, alpha, beta *int, stats *SearchStats) (int, bool) {
	switch entry.Flag {
	case TTExact:
		return entry.Score, true
	case TTLower:
		if entry.Score > *alpha {
			*alpha = entry.Score
		}
	case TTUpper:
		if entry.Score < *beta {
			*beta = entry.Score
		}
	}
	if *alpha >= *beta {
		stats.Cutoffs++
		return entry.Score, true
	}
	return 0, false
}

// classifyScore records how the result relates to the entry window: a
// fail-low proves only a ceiling, a fail-high only a floor.
func classifyScore(score, alphaOrig, betaOrig int) TTFlag {
	if score <= alphaOrig {
		return TTUpper
	}
	if score >= betaOrig {
		return TTLower
	}
	return TTExact
}
