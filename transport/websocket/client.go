package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

var errClientClosed = errors.New("client connection is closed")

// client owns one connection. Only writePump writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (that *client) sendMessage(action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: payloadBytes})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	select {
	case that.send <- response:
		return nil
	case <-that.done:
		return errClientClosed
	}
}

// writePump - writes queued messages and keeps the connection alive with pings until send is closed.
// done is closed and the connection dropped on return.
func (that *client) writePump() error {
	defer func() {
		close(that.done)
		_ = that.conn.Close()
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return nil
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("failed to write ping: %w", err)
			}
		}
	}
}
