package main

// memoryAlphaBeta is the alphaBetaTT recursion re-parameterized for
// MTD(f): the side to move is explicit instead of a maximizing flag, and
// the node maximizes exactly when that side is the search subject. MTD(f)
// re-invokes it with shifting null windows, so correctness leans entirely
// on the stored bound flags being reusable across invocations.
func memoryAlphaBeta(b Board, depth, alpha, beta int, toMove PlayerColor, ctx *searchContext) int {
	ctx.stats.Nodes++
	key := ctx.ttKey(b, toMove)
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
	} else if maximizing := toMove == ctx.subject; maximizing {
		score = -scoreInfinity
		for _, col := range LegalMoves(b) {
			child, err := b.Apply(col, toMove)
			if err != nil {
				continue
			}
			value := memoryAlphaBeta(child, depth-1, alpha, beta, otherPlayer(toMove), ctx)
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
			child, err := b.Apply(col, toMove)
			if err != nil {
				continue
			}
			value := memoryAlphaBeta(child, depth-1, alpha, beta, otherPlayer(toMove), ctx)
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

// mtdf converges on the exact minimax value at the given depth by
// repeated null-window probes around a running guess. Each probe either
// fails low (the value is at most the result) or high (at least the
// result), so one bound tightens strictly every iteration and the
// integer value range forces termination.
func mtdf(b Board, depth, firstGuess int, toMove PlayerColor, ctx *searchContext) int {
	g := firstGuess
	lower := -scoreInfinity
	upper := scoreInfinity
	for lower < upper {
		beta := g
		if g <= lower {
			beta = lower + 1
		}
		g = memoryAlphaBeta(b, depth, beta-1, beta, toMove, ctx)
		if g < beta {
			upper = g
		} else {
			lower = g
		}
	}
	return g
}

// mtdfIterative wraps mtdf in iterative deepening, seeding each depth's
// first guess with the previous depth's value. A guess near the true
// value keeps the null-window loop short, and the transposition table
// carries work forward between depths.
func mtdfIterative(b Board, targetDepth int, toMove PlayerColor, ctx *searchContext) int {
	g := 0
	for d := 1; d <= targetDepth; d++ {
		g = mtdf(b, d, g, toMove, ctx)
	}
	return g
}
