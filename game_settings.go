package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	RedType    PlayerType `json:"-"`
	YellowType PlayerType `json:"-"`
	RedStarts  bool       `json:"red_starts"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		RedType:    PlayerHuman,
		YellowType: PlayerAI,
		RedStarts:  true,
	}
}
