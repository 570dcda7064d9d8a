package main

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// AIPlayer runs the move selector on a worker goroutine so the game loop
// stays responsive. Each selection is one synchronous SelectMove call;
// there is no cancellation inside the search itself.
type AIPlayer struct {
	moveMutex   sync.Mutex
	workerDone  chan struct{}
	thinking    atomic.Bool
	moveReady   atomic.Bool
	readyCol    int
	readyResult SearchResult
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) ChooseMove(state GameState, tt *TranspositionTable) (int, SearchResult, bool) {
	config := GetConfig()
	algorithm, err := ParseAlgorithm(config.AiAlgorithm)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to plain alpha-beta")
	}
	result, err := SelectMove(state.Board, algorithm, config.AiDepth, state.ToMove, tt)
	if err != nil {
		log.Error().Err(err).Msg("move selection failed")
		return -1, SearchResult{}, false
	}
	if config.AiLogSearchStats {
		logSearchStats("choose", algorithm, config.AiDepth, result, tt)
	}
	return result.Column, result, true
}

func (a *AIPlayer) StartThinking(state GameState, tt *TranspositionTable) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)

	stateCopy := state.Clone()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		col, result, ok := a.ChooseMove(stateCopy, tt)
		a.moveMutex.Lock()
		if ok {
			a.readyCol = col
			a.readyResult = result
		} else {
			a.readyCol = -1
			a.readyResult = SearchResult{}
		}
		a.moveMutex.Unlock()
		a.moveReady.Store(ok)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() (int, SearchResult) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyCol, a.readyResult
}

func logSearchStats(tag string, algorithm Algorithm, depth int, result SearchResult, tt *TranspositionTable) {
	nps := 0.0
	if result.Elapsed > 0 {
		nps = float64(result.Nodes) / result.Elapsed.Seconds()
	}
	stats := tt.Stats()
	hitRate := 0.0
	if stats.Probes > 0 {
		hitRate = float64(stats.Hits) * 100.0 / float64(stats.Probes)
	}
	log.Info().
		Str("tag", tag).
		Stringer("algorithm", algorithm).
		Int("depth", depth).
		Int("column", result.Column).
		Int("score", result.Score).
		Int64("nodes", result.Nodes).
		Float64("nps", nps).
		Dur("elapsed", result.Elapsed).
		Int("tt_size", tt.Count()).
		Uint64("tt_probes", stats.Probes).
		Uint64("tt_hits", stats.Hits).
		Uint64("tt_stores", stats.Stores).
		Float64("tt_hit_rate", hitRate).
		Msg("search stats")
}
