// Package archive keeps pregenerated daily puzzles in a local sqlite
// file, so batch generation can run ahead of the serving database.
package archive

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/slideout-game/server/internal/sliding"
)

var ErrNotFound = fmt.Errorf("puzzle not found")

type Archive struct {
	mu sync.Mutex
	db *sql.DB
}

func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS puzzle (
	puzzle_date		TEXT PRIMARY KEY,
	seed			INTEGER NOT NULL,
	optimal_moves	INTEGER NOT NULL,
	state			BLOB NOT NULL
);`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Put inserts a puzzle under its date, replacing any stored one.
func (a *Archive) Put(p *sliding.Puzzle) error {
	if p.Date == "" {
		return fmt.Errorf("puzzle has no date")
	}
	state, err := p.Bytes()
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	_, err = a.db.Exec(`
INSERT INTO puzzle (puzzle_date, seed, optimal_moves, state)
VALUES (?, ?, ?, ?)
ON CONFLICT(puzzle_date)
DO UPDATE SET seed=excluded.seed,
	optimal_moves=excluded.optimal_moves,
	state=excluded.state;`,
		p.Date, int64(p.Seed), p.OptimalMoves, state)
	return err
}

// Get retrieves the puzzle stored for a date, or [ErrNotFound].
func (a *Archive) Get(date string) (*sliding.Puzzle, error) {
	var state []byte
	err := a.db.QueryRow(
		`SELECT state FROM puzzle WHERE puzzle_date = ?;`, date,
	).Scan(&state)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sliding.DecodePuzzle(state)
}

func (a *Archive) Count() (int, error) {
	var count int
	err := a.db.QueryRow(`SELECT COUNT(*) FROM puzzle;`).Scan(&count)
	return count, err
}

// Dates lists every stored date in ascending order.
func (a *Archive) Dates() ([]string, error) {
	rows, err := a.db.Query(`SELECT puzzle_date FROM puzzle ORDER BY puzzle_date;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}
