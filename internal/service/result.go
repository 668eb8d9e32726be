package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type ResultService interface {
	Record(ctx context.Context, game *entity.Game) error
	Stats(ctx context.Context) ([]entity.Stats, error)
	Recent(ctx context.Context, limit int) ([]entity.Result, error)
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	Stats(ctx context.Context) ([]entity.Stats, error)
	ListRecent(ctx context.Context, limit int) ([]entity.Result, error)
}

type resultService struct {
	resultRepo resultRepo
	now        func() time.Time
}

func NewResultService(resultRepo resultRepo) ResultService {
	return &resultService{
		resultRepo: resultRepo,
		now:        time.Now,
	}
}

// Record - appends a finished game to the history.
func (that *resultService) Record(ctx context.Context, game *entity.Game) error {
	if !game.IsFinished() {
		return fmt.Errorf("game %s: %w", game.ID, entity.ErrUnknownGameStatus)
	}

	if err := that.resultRepo.Save(ctx, entity.NewResult(game, that.now().UTC())); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *resultService) Stats(ctx context.Context) ([]entity.Stats, error) {
	stats, err := that.resultRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (that *resultService) Recent(ctx context.Context, limit int) ([]entity.Result, error) {
	results, err := that.resultRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	return results, nil
}
