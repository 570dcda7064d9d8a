package main

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout     = 10 * time.Second
	wsIdlePingInterval = 30 * time.Second
)

// writePump drains the client send queue onto the connection and pings
// idle connections so proxies do not drop them mid-game. It returns when
// the send channel closes or a write fails.
func (c *Client) writePump(conn *websocket.Conn) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	idle := time.Now()
	ping := mustMarshal(wsMessage{Type: "ping"})

	write := func(payload []byte) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return err
		}
		idle = time.Now()
		return nil
	}

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return nil
			}
			if err := write(msg); err != nil {
				return err
			}
		case <-ticker.C:
			if time.Since(idle) < wsIdlePingInterval {
				continue
			}
			if err := write(ping); err != nil {
				return err
			}
		}
	}
}
