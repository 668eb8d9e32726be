package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-bot/testing/suite"
)

type mockGameUseCase struct {
	mock.Mock
}

func (that *mockGameUseCase) CreateGame(ctx context.Context, humanMark string, difficulty tictactoe.Difficulty) (*entity.Game, error) {
	args := that.Called(ctx, humanMark, difficulty)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) UpdateGame(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	args := that.Called(ctx, game)
	updated, _ := args.Get(0).(*entity.Game)
	return updated, args.Error(1)
}

func (that *mockGameUseCase) DeleteGame(ctx context.Context, gameID string) error {
	return that.Called(ctx, gameID).Error(0)
}

func (that *mockGameUseCase) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	args := that.Called(ctx, gameID, cell)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) BotTurn(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	args := that.Called(ctx, game)
	result, _ := args.Get(0).(*entity.Game)
	return result, args.Error(1)
}

func (that *mockGameUseCase) NewRound(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) Stats(ctx context.Context) ([]entity.Stats, error) {
	args := that.Called(ctx)
	stats, _ := args.Get(0).([]entity.Stats)
	return stats, args.Error(1)
}

func (that *mockGameUseCase) RecentResults(ctx context.Context, limit int) ([]entity.Result, error) {
	args := that.Called(ctx, limit)
	results, _ := args.Get(0).([]entity.Result)
	return results, args.Error(1)
}

func newTestServer(t *testing.T) (*mockGameUseCase, http.Handler) {
	t.Helper()

	uGame := &mockGameUseCase{}
	t.Cleanup(func() { uGame.AssertExpectations(t) })

	return uGame, New(suite.NewLogger(), uGame, []string{"http://localhost:3000"}).Router()
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestServer_Ping(t *testing.T) {
	_, router := newTestServer(t)

	rec := serve(router, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_CreateGame(t *testing.T) {
	t.Run("Creates a game with a normalized difficulty", func(t *testing.T) {
		// Given: a use case that creates a game for O on hard
		uGame, router := newTestServer(t)
		game := entity.NewGame("game1", entity.PlayerO, tictactoe.Hard)
		uGame.On("CreateGame", mock.Anything, entity.PlayerO, tictactoe.Hard).Return(game, nil).Once()

		// When: posting a new game with a mixed-case difficulty
		rec := serve(router, http.MethodPost, "/games", `{"human_mark":"O","difficulty":"Hard"}`)

		// Then: the game is returned as created
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"game1"`)
		assert.Contains(t, rec.Body.String(), `"bot_mark":"X"`)
	})

	t.Run("Lower-case mark is accepted", func(t *testing.T) {
		// Given: a use case that expects the canonical mark
		uGame, router := newTestServer(t)
		uGame.On("CreateGame", mock.Anything, entity.PlayerX, tictactoe.Easy).
			Return(entity.NewGame("game3", entity.PlayerX, tictactoe.Easy), nil).Once()

		// When: the client sends the mark in lower case
		rec := serve(router, http.MethodPost, "/games", `{"human_mark":" x","difficulty":"easy"}`)

		// Then: it is upper-cased before the game is created
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Empty body fields are left to defaults", func(t *testing.T) {
		uGame, router := newTestServer(t)
		uGame.On("CreateGame", mock.Anything, "", tictactoe.Difficulty("")).
			Return(entity.NewGame("game2", entity.PlayerX, tictactoe.Normal), nil).Once()

		rec := serve(router, http.MethodPost, "/games", `{}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Unknown difficulty is a bad request", func(t *testing.T) {
		_, router := newTestServer(t)

		rec := serve(router, http.MethodPost, "/games", `{"difficulty":"nightmare"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown difficulty")
	})

	t.Run("Malformed body is a bad request", func(t *testing.T) {
		_, router := newTestServer(t)

		rec := serve(router, http.MethodPost, "/games", `{`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_MakeTurn(t *testing.T) {
	t.Run("Returns the game after both moves", func(t *testing.T) {
		uGame, router := newTestServer(t)
		game := entity.NewGame("game1", entity.PlayerX, tictactoe.Hard)
		game.Board[0], game.Board[4] = entity.PlayerX, entity.PlayerO
		uGame.On("MakeTurn", mock.Anything, "game1", 0).Return(game, nil).Once()

		rec := serve(router, http.MethodPost, "/games/game1/turn", `{"cell":0}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"board":["X","","","","O","","","",""]`)
	})

	t.Run("Missing cell is a bad request", func(t *testing.T) {
		_, router := newTestServer(t)

		rec := serve(router, http.MethodPost, "/games/game1/turn", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Domain errors map to status codes", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{name: "not found", err: apperror.ErrGameNotFound, status: http.StatusNotFound},
			{name: "occupied", err: apperror.ErrCellOccupied, status: http.StatusConflict},
			{name: "finished", err: apperror.ErrGameFinished, status: http.StatusConflict},
			{name: "out of range", err: entity.ErrInvalidCell, status: http.StatusBadRequest},
			{name: "storage", err: errors.New("redis down"), status: http.StatusInternalServerError},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uGame, router := newTestServer(t)
				uGame.On("MakeTurn", mock.Anything, "game1", 3).Return(nil, tc.err).Once()

				rec := serve(router, http.MethodPost, "/games/game1/turn", `{"cell":3}`)

				assert.Equal(t, tc.status, rec.Code)
				assert.Contains(t, rec.Body.String(), `"error"`)
				assert.NotContains(t, rec.Body.String(), "redis down")
			})
		}
	})
}

func TestServer_GameLifecycle(t *testing.T) {
	t.Run("Get, round and delete", func(t *testing.T) {
		uGame, router := newTestServer(t)
		game := entity.NewGame("game1", entity.PlayerX, tictactoe.Easy)
		uGame.On("GetGame", mock.Anything, "game1").Return(game, nil).Once()
		uGame.On("NewRound", mock.Anything, "game1").Return(game, nil).Once()
		uGame.On("DeleteGame", mock.Anything, "game1").Return(nil).Once()

		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/games/game1", "").Code)
		assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/games/game1/round", "").Code)
		assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/games/game1", "").Code)
	})

	t.Run("Update takes the id from the path", func(t *testing.T) {
		uGame, router := newTestServer(t)
		uGame.On("UpdateGame", mock.Anything, mock.MatchedBy(func(game *entity.Game) bool {
			return game.ID == "game1" && game.ScoreX == 2
		})).Return(entity.NewGame("game1", entity.PlayerX, tictactoe.Easy), nil).Once()

		body := `{"human_mark":"X","bot_mark":"O","turn":"X","difficulty":"easy","status":"ongoing","score_x":2}`
		rec := serve(router, http.MethodPut, "/games/game1", body)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Update with a different body id is rejected", func(t *testing.T) {
		_, router := newTestServer(t)

		rec := serve(router, http.MethodPut, "/games/game1", `{"id":"game2"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_AIMove(t *testing.T) {
	uGame, router := newTestServer(t)
	uGame.On("BotTurn", mock.Anything, mock.MatchedBy(func(game *entity.Game) bool {
		return game.Board[0] == entity.PlayerX && game.BotMark == entity.PlayerO
	})).Return(nil, apperror.ErrNotBotTurn).Once()

	body := `{"board":["X","","","","","","","",""],"human_mark":"X","bot_mark":"O","turn":"X","difficulty":"hard","status":"ongoing"}`
	rec := serve(router, http.MethodPost, "/ai-move", body)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"it's not the bot's turn"}`, rec.Body.String())
}

func TestServer_History(t *testing.T) {
	t.Run("Stats", func(t *testing.T) {
		uGame, router := newTestServer(t)
		uGame.On("Stats", mock.Anything).
			Return([]entity.Stats{{Difficulty: tictactoe.Hard, Played: 2, Ties: 2}}, nil).Once()

		rec := serve(router, http.MethodGet, "/stats", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"difficulty":"hard","played":2,"human_wins":0,"bot_wins":0,"ties":2}]`, rec.Body.String())
	})

	t.Run("Results limit", func(t *testing.T) {
		uGame, router := newTestServer(t)
		uGame.On("RecentResults", mock.Anything, 5).Return([]entity.Result{}, nil).Once()

		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/results?limit=5", "").Code)
		assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/results?limit=abc", "").Code)
	})
}

func TestServer_CORS(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/games", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
