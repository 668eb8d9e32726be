package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type moveEngine interface {
	ChooseMove(board [9]string, botMark, humanMark string, difficulty tictactoe.Difficulty) (int, error)
}

type botService struct {
	logger *slog.Logger
	engine moveEngine
}

func NewBotService(logger *slog.Logger, engine moveEngine) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		engine: engine,
	}
}

// MakeTurn - lets the engine pick a cell for the bot and plays it on the game.
func (that *botService) MakeTurn(game *entity.Game) error {
	if !game.IsBotTurn() {
		return apperror.ErrNotBotTurn
	}

	cell, err := that.engine.ChooseMove(game.Board, game.BotMark, game.HumanMark, game.Difficulty)
	if err != nil {
		return fmt.Errorf("engine failed to choose a move: %w", err)
	}

	if err = game.MakeTurn(game.BotMark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot made a turn",
		"gameID", game.ID,
		"difficulty", game.Difficulty,
		"cell", cell,
		"status", game.Status,
	)

	return nil
}
