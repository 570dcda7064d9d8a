package main

type PlayerColor int

type GameStatus int

const (
	PlayerRed PlayerColor = iota
	PlayerYellow
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusRedWon
	StatusYellowWon
	StatusDraw
)

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	LastMessage string
	WinningLine []Move
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard()
	if settings.RedStarts {
		s.ToMove = PlayerRed
	} else {
		s.ToMove = PlayerYellow
	}
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = Move{Row: -1, Col: -1}
	s.LastMessage = ""
	s.WinningLine = nil
}

func (s GameState) Clone() GameState {
	clone := s
	clone.WinningLine = append([]Move(nil), s.WinningLine...)
	return clone
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerRed {
		return PlayerYellow
	}
	return PlayerRed
}

func playerToInt(player PlayerColor) int {
	if player == PlayerRed {
		return 1
	}
	return 2
}

func (s GameState) StatusString() string {
	switch s.Status {
	case StatusRunning:
		return "running"
	case StatusRedWon:
		return "red_won"
	case StatusYellowWon:
		return "yellow_won"
	case StatusDraw:
		return "draw"
	default:
		return "not_started"
	}
}
