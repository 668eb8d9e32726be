package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

var _ GameUseCase = (*GameManager)(nil)

type GameManager struct {
	logger *slog.Logger

	gameService   gameService
	botService    botService
	resultService resultService

	defaultDifficulty tictactoe.Difficulty
}

func NewGameManager(
	logger *slog.Logger,
	gameService gameService,
	botService botService,
	resultService resultService,
	defaultDifficulty tictactoe.Difficulty,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameService:   gameService,
		botService:    botService,
		resultService: resultService,

		defaultDifficulty: defaultDifficulty,
	}
}

// CreateGame - starts a new game. An empty mark picks one at random, an empty difficulty
// falls back to the configured default. When the bot holds X it opens the game.
func (that *GameManager) CreateGame(ctx context.Context, humanMark string, difficulty tictactoe.Difficulty) (*entity.Game, error) {
	if humanMark == "" {
		humanMark, _ = entity.GetRandomMarks()
	}

	if !tictactoe.IsValidMark(humanMark) {
		return nil, fmt.Errorf("%w: mark %q", apperror.ErrInvalidInput, humanMark)
	}

	if difficulty == "" {
		difficulty = that.defaultDifficulty
	}

	if err := difficulty.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err)
	}

	game, err := that.gameService.CreateGame(ctx, humanMark, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("failed make opening bot turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed save game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "humanMark", game.HumanMark, "difficulty", game.Difficulty)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	return game, nil
}

// UpdateGame - overwrites a stored game with a client-provided state.
func (that *GameManager) UpdateGame(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	if err := game.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err)
	}

	if _, err := that.gameService.GetGameByID(ctx, game.ID); err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the human move and, if the game goes on, the bot reply.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	if err = game.MakeTurn(game.HumanMark, cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("failed make bot turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	if game.IsFinished() {
		that.recordResult(ctx, game)
	}

	return game, nil
}

// BotTurn - plays one bot move on a submitted game without touching storage.
// A finished game is returned as is.
func (that *GameManager) BotTurn(_ context.Context, game *entity.Game) (*entity.Game, error) {
	if err := game.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err)
	}

	if game.IsFinished() {
		return game, nil
	}

	if err := that.botService.MakeTurn(game); err != nil {
		return nil, fmt.Errorf("failed make bot turn: %w", err)
	}

	return game, nil
}

// NewRound - clears the board of a stored game and keeps the score.
func (that *GameManager) NewRound(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	game.NewRound()

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("failed make opening bot turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

// DeleteGame - drops a stored game. Results already recorded are kept.
func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

func (that *GameManager) Stats(ctx context.Context) ([]entity.Stats, error) {
	stats, err := that.resultService.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed get stats: %w", err)
	}

	if stats == nil {
		stats = []entity.Stats{}
	}

	return stats, nil
}

// RecentResults - returns the latest finished games, newest first.
func (that *GameManager) RecentResults(ctx context.Context, limit int) ([]entity.Result, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	limit = min(limit, maxRecentLimit)

	results, err := that.resultService.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed get recent results: %w", err)
	}

	return results, nil
}

func (that *GameManager) recordResult(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordResult")

	if err := that.resultService.Record(ctx, game); err != nil {
		log.Error("failed to record result", "gameID", game.ID, "error", err)
		return
	}

	log.Info("game finished", "gameID", game.ID, "winner", game.Winner, "difficulty", game.Difficulty)
}
