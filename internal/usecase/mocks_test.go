package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type mockGameService struct {
	mock.Mock
}

func (that *mockGameService) CreateGame(ctx context.Context, humanMark string, difficulty tictactoe.Difficulty) (*entity.Game, error) {
	args := that.Called(ctx, humanMark, difficulty)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockGameService) DeleteGame(ctx context.Context, gameID string) error {
	return that.Called(ctx, gameID).Error(0)
}

type mockResultService struct {
	mock.Mock
}

func (that *mockResultService) Record(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockResultService) Stats(ctx context.Context) ([]entity.Stats, error) {
	args := that.Called(ctx)
	stats, _ := args.Get(0).([]entity.Stats)
	return stats, args.Error(1)
}

func (that *mockResultService) Recent(ctx context.Context, limit int) ([]entity.Result, error) {
	args := that.Called(ctx, limit)
	results, _ := args.Get(0).([]entity.Result)
	return results, args.Error(1)
}
