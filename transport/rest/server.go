package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-bot/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	CreateGame(ctx context.Context, humanMark string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	BotTurn(ctx context.Context, game *entity.Game) (*entity.Game, error)
	NewRound(ctx context.Context, gameID string) (*entity.Game, error)

	Stats(ctx context.Context) ([]entity.Stats, error)
	RecentResults(ctx context.Context, limit int) ([]entity.Result, error)
}

type Server struct {
	logger         *slog.Logger
	uGame          uGame
	allowedOrigins []string
}

func New(logger *slog.Logger, uGame uGame, allowedOrigins []string) *Server {
	return &Server{
		logger:         logger.With("component", "rest"),
		uGame:          uGame,
		allowedOrigins: allowedOrigins,
	}
}

// Router - builds the HTTP routes of the game API.
func (that *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(that.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: that.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", handlers.PingHandler)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", that.createGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", that.getGame)
			r.Put("/", that.updateGame)
			r.Delete("/", that.deleteGame)
			r.Post("/turn", that.makeTurn)
			r.Post("/round", that.newRound)
		})
	})

	r.Post("/ai-move", that.aiMove)
	r.Get("/stats", that.stats)
	r.Get("/results", that.recentResults)

	return r
}

// Start - serves the API until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
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

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(started),
			"requestID", middleware.GetReqID(r.Context()),
		)
	})
}
