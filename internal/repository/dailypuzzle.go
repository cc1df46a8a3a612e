package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// DailyPuzzle stores one certified puzzle per calendar date. State is
// the gob-encoded sliding.Puzzle; the scalar columns are denormalized
// for listing without decoding blobs.
type DailyPuzzle struct {
	DailyPuzzleID int64
	PuzzleDate    string
	Seed          int64
	OptimalMoves  int
	State         []byte
	CreatedAt     pgtype.Timestamptz
}

type CreateDailyPuzzleParams struct {
	PuzzleDate   string
	Seed         int64
	OptimalMoves int
	State        []byte
}

// CreateDailyPuzzle inserts the puzzle for a date, keeping the existing
// row on conflict: two racing generators both end up with the same
// canonical puzzle since generation is date-seeded, but the stored row
// stays authoritative either way.
func (q *Queries) CreateDailyPuzzle(ctx context.Context, params CreateDailyPuzzleParams) (*DailyPuzzle, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO daily_puzzle (puzzle_date, seed, optimal_moves, state)
		VALUES (@puzzle_date, @seed, @optimal_moves, @state)
		ON CONFLICT (puzzle_date) DO NOTHING`,
		pgx.NamedArgs{
			"puzzle_date":   params.PuzzleDate,
			"seed":          params.Seed,
			"optimal_moves": params.OptimalMoves,
			"state":         params.State,
		},
	)
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return q.FetchDailyPuzzle(ctx, params.PuzzleDate)
}

func (q *Queries) FetchDailyPuzzle(ctx context.Context, date string) (*DailyPuzzle, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM daily_puzzle WHERE puzzle_date = $1", date,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[DailyPuzzle])
}
