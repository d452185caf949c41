package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dgravitate/quantum-examples/internal/entity"
)

// GameResult is one finished game as stored in the archive.
type GameResult struct {
	ID         string
	Winner     string
	Moves      int
	FinishedAt time.Time
}

// ArchiveRepository keeps a durable record of finished games; the live
// game state itself only ever lives in redis.
type ArchiveRepository interface {
	SaveResult(ctx context.Context, game *entity.Game) error
	RecentResults(ctx context.Context, limit int) ([]GameResult, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

func (that *dbArchive) SaveResult(ctx context.Context, game *entity.Game) error {
	query := `INSERT OR REPLACE INTO games (id, winner, moves, finished_at) VALUES (?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, game.ID, game.Winner, len(game.Moves), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	return nil
}

func (that *dbArchive) RecentResults(ctx context.Context, limit int) ([]GameResult, error) {
	query := `SELECT id, winner, moves, finished_at FROM games ORDER BY finished_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived games: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var result GameResult
		if err = rows.Scan(&result.ID, &result.Winner, &result.Moves, &result.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archived game: %w", err)
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate archived games: %w", err)
	}

	return results, nil
}
