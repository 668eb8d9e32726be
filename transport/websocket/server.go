package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	CreateGame(ctx context.Context, humanMark string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	NewRound(ctx context.Context, gameID string) (*entity.Game, error)
}

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, message *Message, client *client) error
}

func New(logger *slog.Logger, uGame uGame, allowedOrigins []string) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,

		handlers: make(map[string]func(context.Context, *Message, *client) error),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameRound] = server.handleGameRound

	return server
}

func (that *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	return r
}

// Start - starts WebSocket server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and serves it until the client leaves or ctx is done.
func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	c := newClient(conn)

	go func() {
		if err := c.writePump(); err != nil {
			log.Debug("writer stopped", "error", err)
		}
	}()

	connCtx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-connCtx.Done():
			_ = conn.Close()
		case <-c.done:
		}
	}()

	if err = that.handleMessages(connCtx, c); err != nil {
		log.Debug("connection closed", "error", err)
	}

	cancel()
	close(c.send)
	<-c.done
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, reqBody, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("error reading message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendErrorResponse(c, actionUnknown, "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendErrorResponse(c, message.Action, "unknown action")
			continue
		}

		if err = handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) sendErrorResponse(c *client, action, errMsg string) {
	if err := c.sendMessage(action, ResponsePayload{Error: errMsg}); err != nil {
		that.logger.Error("failed to send error response", "action", action, "error", err)
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowedOrigins, "*") {
			return true
		}

		return slices.Contains(allowedOrigins, origin)
	}
}
