package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	Stats(ctx context.Context) ([]entity.Stats, error)
	ListRecent(ctx context.Context, limit int) ([]entity.Result, error)
}

type resultRepository struct {
	conn *sqlx.DB
}

func NewResultRepository(conn *sqlx.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result *entity.Result) error {
	query := `INSERT INTO results (game_id, winner, human_mark, difficulty, finished_at)
		VALUES (:game_id, :winner, :human_mark, :difficulty, :finished_at)`

	if _, err := that.conn.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

// Stats - outcome counts per difficulty, seen from the human side.
func (that *resultRepository) Stats(ctx context.Context) ([]entity.Stats, error) {
	query := `SELECT difficulty,
		COUNT(*) AS played,
		COALESCE(SUM(CASE WHEN winner = human_mark THEN 1 ELSE 0 END), 0) AS human_wins,
		COALESCE(SUM(CASE WHEN winner <> human_mark AND winner <> '-' THEN 1 ELSE 0 END), 0) AS bot_wins,
		COALESCE(SUM(CASE WHEN winner = '-' THEN 1 ELSE 0 END), 0) AS ties
		FROM results
		GROUP BY difficulty
		ORDER BY difficulty`

	stats := make([]entity.Stats, 0, 3)
	if err := that.conn.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("can't aggregate results: %w", err)
	}

	return stats, nil
}

func (that *resultRepository) ListRecent(ctx context.Context, limit int) ([]entity.Result, error) {
	query := `SELECT game_id, winner, human_mark, difficulty, finished_at
		FROM results
		ORDER BY finished_at DESC, id DESC
		LIMIT ?`

	results := make([]entity.Result, 0, limit)
	if err := that.conn.SelectContext(ctx, &results, query, limit); err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}

	return results, nil
}
