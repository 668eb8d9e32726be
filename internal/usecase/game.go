package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type GameUseCase interface {
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

type gameService interface {
	CreateGame(ctx context.Context, humanMark string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error
}

type botService interface {
	MakeTurn(game *entity.Game) error
}

type resultService interface {
	Record(ctx context.Context, game *entity.Game) error
	Stats(ctx context.Context) ([]entity.Stats, error)
	Recent(ctx context.Context, limit int) ([]entity.Result, error)
}
