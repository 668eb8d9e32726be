package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-bot/pkg/handlers"
)

type newGameRequest struct {
	HumanMark  string               `json:"human_mark"`
	Difficulty tictactoe.Difficulty `json:"difficulty"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

func (that *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	difficulty, err := parseOptionalDifficulty(req.Difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	game, err := that.uGame.CreateGame(r.Context(), tictactoe.NormalizeMark(req.HumanMark), difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, game)
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, game)
}

func (that *Server) updateGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var game entity.Game
	if err := decodeBody(r, &game); err != nil {
		that.writeError(w, r, err)
		return
	}

	if game.ID != "" && game.ID != id {
		that.writeError(w, r, fmt.Errorf("%w: body id %q does not match %q", apperror.ErrInvalidInput, game.ID, id))
		return
	}
	game.ID = id

	updated, err := that.uGame.UpdateGame(r.Context(), &game)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, updated)
}

func (that *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	if req.Cell == nil {
		that.writeError(w, r, fmt.Errorf("%w: cell is required", apperror.ErrInvalidInput))
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, game)
}

func (that *Server) newRound(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.NewRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, game)
}

func (that *Server) aiMove(w http.ResponseWriter, r *http.Request) {
	var game entity.Game
	if err := decodeBody(r, &game); err != nil {
		that.writeError(w, r, err)
		return
	}

	result, err := that.uGame.BotTurn(r.Context(), &game)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

func (that *Server) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.uGame.Stats(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, stats)
}

func (that *Server) recentResults(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			that.writeError(w, r, fmt.Errorf("%w: limit %q", apperror.ErrInvalidInput, raw))
			return
		}
	}

	results, err := that.uGame.RecentResults(r.Context(), limit)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, results)
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %w", apperror.ErrInvalidInput, err)
	}

	return nil
}

func parseOptionalDifficulty(value tictactoe.Difficulty) (tictactoe.Difficulty, error) {
	if value == "" {
		return "", nil
	}

	difficulty, err := tictactoe.ParseDifficulty(string(value))
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err)
	}

	return difficulty, nil
}

// writeError - maps domain errors to HTTP statuses. Unknown errors are logged and hidden.
func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		handlers.WriteError(w, status, http.StatusText(status))
		return
	}

	handlers.WriteError(w, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidCell),
		errors.Is(err, entity.ErrInvalidGame),
		errors.Is(err, tictactoe.ErrUnknownDifficulty),
		errors.Is(err, tictactoe.ErrInvalidMarks):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrNotBotTurn),
		errors.Is(err, tictactoe.ErrGameAlreadyWon),
		errors.Is(err, tictactoe.ErrNoAvailableMoves):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
