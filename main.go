package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type StatusResponse struct {
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	AiThinking      bool              `json:"ai_thinking"`
	History         []historyEntryDTO `json:"history"`
	WinningLine     []Move            `json:"winning_line"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
	RedStarts   bool   `json:"red_starts"`
}

type apiMove struct {
	Column int `json:"column"`
}

type historyEntryDTO struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Depth     int     `json:"depth"`
	Score     int     `json:"score"`
	Nodes     int64   `json:"nodes"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	Board           [][]int           `json:"board"`
	History         []historyEntryDTO `json:"history"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	WinningLine     []Move            `json:"winning_line"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type ttCacheStatusResponse struct {
	Count      int     `json:"count"`
	MaxEntries int     `json:"max_entries"`
	Stats      TTStats `json:"stats"`
}

type ttCacheEntryDTO struct {
	Hash  string `json:"hash"`
	Hits  uint32 `json:"hits"`
	Depth int    `json:"depth"`
	Score int    `json:"score"`
	Flag  string `json:"flag"`
}

type ttCacheEntriesResponse struct {
	Items  []ttCacheEntryDTO `json:"items"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
	Total  int               `json:"total"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := newRouter(controller, hub)

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Info().Str("addr", server.Addr).Msg("backend listening")
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Error().Err(closeErr).Msg("forced close failed")
		}
	}
}

func newRouter(controller *GameController, hub *Hub) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		settings := controller.Settings()
		controller.Reset(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			if _, err := ParseAlgorithm(payload.Config.AiAlgorithm); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			if payload.Config.AiDepth < 1 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": ErrInvalidDepth.Error()})
				return
			}
			configStore.Update(*payload.Config)
			controller.ResetSearchState()
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings, false)
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: settingsToDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(payload.Column)
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		tt := controller.SearchCache()
		writeJSON(w, http.StatusOK, ttCacheStatusResponse{
			Count:      tt.Count(),
			MaxEntries: tt.MaxEntries(),
			Stats:      tt.Stats(),
		})
	})
	r.Delete("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		controller.ResetSearchState()
		writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
	})
	r.Get("/api/cache/tt/entries", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}
		if offset < 0 {
			offset = 0
		}
		entries, total := controller.SearchCache().TopEntriesByHits(offset, limit)
		items := make([]ttCacheEntryDTO, 0, len(entries))
		for _, entry := range entries {
			items = append(items, ttCacheEntryDTO{
				Hash:  "0x" + strconv.FormatUint(entry.Key, 16),
				Hits:  entry.Hits,
				Depth: entry.Depth,
				Score: entry.Score,
				Flag:  entry.Flag.String(),
			})
		}
		writeJSON(w, http.StatusOK, ttCacheEntriesResponse{Items: items, Offset: offset, Limit: limit, Total: total})
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	return r
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		_ = client.writePump(conn)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "move":
			var payload apiMove
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			if applied, _ := controller.ApplyHumanMove(payload.Column); applied {
				if entry, ok := controller.LatestHistoryEntry(); ok {
					hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
				}
				hub.broadcastStatus <- controllerStatus(controller)
			}
		case "status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		Settings:        settingsToDTO(controller.Settings()),
		Config:          GetConfig(),
		Board:           state.Board.Grid(),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerToInt(state.Status),
		Status:          state.StatusString(),
		AiThinking:      controller.AiThinking(),
		History:         historyToDTO(controller.History()),
		WinningLine:     state.WinningLine,
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		Board:           state.Board.Grid(),
		History:         historyToDTO(controller.History()),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerToInt(state.Status),
		Status:          state.StatusString(),
		WinningLine:     state.WinningLine,
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	out := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, historyEntryToDTO(entry))
	}
	return out
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Row:       entry.Move.Row,
		Col:       entry.Move.Col,
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Depth:     entry.Depth,
		Score:     entry.Score,
		Nodes:     entry.Nodes,
	}
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	dto := GameSettingsDTO{RedStarts: settings.RedStarts, HumanPlayer: 0}
	switch {
	case settings.RedType == PlayerHuman && settings.YellowType == PlayerHuman:
		dto.Mode = "human_vs_human"
	case settings.RedType == PlayerAI && settings.YellowType == PlayerAI:
		dto.Mode = "ai_vs_ai"
	case settings.RedType == PlayerHuman:
		dto.Mode = "human_vs_ai"
		dto.HumanPlayer = 1
	default:
		dto.Mode = "human_vs_ai"
		dto.HumanPlayer = 2
	}
	return dto
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	settings.RedStarts = dto.RedStarts
	switch dto.Mode {
	case "human_vs_human":
		settings.RedType = PlayerHuman
		settings.YellowType = PlayerHuman
	case "ai_vs_ai":
		settings.RedType = PlayerAI
		settings.YellowType = PlayerAI
	case "human_vs_ai":
		if dto.HumanPlayer == 2 {
			settings.RedType = PlayerAI
			settings.YellowType = PlayerHuman
		} else {
			settings.RedType = PlayerHuman
			settings.YellowType = PlayerAI
		}
	}
	return settings
}

func winnerToInt(status GameStatus) int {
	switch status {
	case StatusRedWon:
		return 1
	case StatusYellowWon:
		return 2
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func mustMarshal(payload any) json.RawMessage {
	data, err := json.Marshal(payload)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(data)
}
