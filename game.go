package main

import (
	"time"

	"github.com/rs/zerolog/log"
)

type Game struct {
	settings     GameSettings
	state        GameState
	history      MoveHistory
	redPlayer    IPlayer
	yellowPlayer IPlayer
	tt           *TranspositionTable
	turnStart    time.Time
}

type moveMeta struct {
	isAi  bool
	depth int
	score int
	nodes int64
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

// Reset starts a fresh session. The transposition table is cleared here
// and only here: entries from a finished game are keyed by exact board
// contents and would otherwise pile up forever.
func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	if g.tt == nil {
		g.tt = NewTranspositionTable(GetConfig().AiTtMaxEntries)
	} else {
		g.tt.Clear()
		g.tt.SetMaxEntries(GetConfig().AiTtMaxEntries)
	}
	g.turnStart = time.Now()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) SearchCache() *TranspositionTable {
	return g.tt
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

func (g *Game) TryApplyMove(col int) (bool, string) {
	return g.applyMove(col, moveMeta{})
}

func (g *Game) applyMove(col int, meta moveMeta) (bool, string) {
	if g.state.Status != StatusRunning {
		g.state.LastMessage = "game not running"
		return false, g.state.LastMessage
	}
	mover := g.state.ToMove
	next, err := g.state.Board.Apply(col, mover)
	if err != nil {
		g.state.LastMessage = err.Error()
		return false, g.state.LastMessage
	}
	row := landingRow(g.state.Board, col)
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	g.state.Board = next
	g.state.LastMove = Move{Row: row, Col: col}
	g.state.HasLastMove = true
	g.state.LastMessage = ""
	g.state.WinningLine = nil

	g.history.Push(HistoryEntry{
		Move:      g.state.LastMove,
		Player:    mover,
		ElapsedMs: elapsedMs,
		IsAi:      meta.isAi,
		Depth:     meta.depth,
		Score:     meta.score,
		Nodes:     meta.nodes,
	})

	switch Winner(g.state.Board) {
	case OutcomeRedWin:
		g.state.Status = StatusRedWon
	case OutcomeYellowWin:
		g.state.Status = StatusYellowWon
	case OutcomeDraw:
		g.state.Status = StatusDraw
	default:
		g.state.ToMove = otherPlayer(mover)
		g.turnStart = time.Now()
		return true, ""
	}
	if line, ok := WinningLine(g.state.Board); ok {
		g.state.WinningLine = line
	}
	log.Info().
		Str("status", g.state.StatusString()).
		Int("moves", g.history.Size()).
		Msg("game over")
	return true, ""
}

// Tick pumps one scheduling step: hands pending human moves to the
// board, starts the AI worker when it is that side's turn, and applies a
// ready AI move once the configured presentation delay has passed. The
// delay lives here so the search core stays free of timing concerns.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if player.IsHuman() {
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingColumn() {
			applied, _ := g.TryApplyMove(human.TakePendingColumn())
			return applied
		}
		return false
	}
	ai, ok := player.(*AIPlayer)
	if !ok {
		return false
	}
	if ai.HasMoveReady() {
		delay := time.Duration(GetConfig().AiMoveDelayMs) * time.Millisecond
		if time.Since(g.turnStart) < delay {
			return false
		}
		col, result := ai.TakeMove()
		if col < 0 {
			return false
		}
		applied, _ := g.applyMove(col, moveMeta{
			isAi:  true,
			depth: GetConfig().AiDepth,
			score: result.Score,
			nodes: result.Nodes,
		})
		return applied
	}
	if !ai.IsThinking() {
		ai.StartThinking(g.state.Clone(), g.tt)
	}
	return false
}

func (g *Game) SubmitHumanMove(col int) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingColumn(col)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == PlayerRed {
		return g.redPlayer
	}
	return g.yellowPlayer
}

func (g *Game) createPlayers() {
	if g.settings.RedType == PlayerHuman {
		g.redPlayer = NewHumanPlayer()
	} else {
		g.redPlayer = NewAIPlayer()
	}
	if g.settings.YellowType == PlayerHuman {
		g.yellowPlayer = NewHumanPlayer()
	} else {
		g.yellowPlayer = NewAIPlayer()
	}
}

// landingRow reports where a drop into col will land on board b, or -1
// for a full column.
func landingRow(b Board, col int) int {
	for row := BoardRows - 1; row >= 0; row-- {
		if b.At(row, col) == CellEmpty {
			return row
		}
	}
	return -1
}
