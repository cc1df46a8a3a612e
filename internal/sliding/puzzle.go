package sliding

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

type PieceType uint8

const (
	TargetPiece PieceType = iota
	BlockerPiece
)

func (t PieceType) String() string {
	if t == TargetPiece {
		return "target"
	}
	return "blocker"
}

type Piece struct {
	ID   int
	Type PieceType
	Pos  Position
}

// Puzzle is a certified puzzle: OptimalMoves is always the solver's BFS
// distance from Pieces to the first solved configuration, never the
// reverse walk's step count, and Path is one witness of that distance.
type Puzzle struct {
	Board        *Board
	Pieces       Configuration
	OptimalMoves int
	Path         []Move
	Seed         uint64
	Date         string
}

// PieceList is the typed view of the initial configuration used by the
// wire DTOs.
func (p *Puzzle) PieceList() []Piece {
	pieces := make([]Piece, len(p.Pieces))
	for id, pos := range p.Pieces {
		t := BlockerPiece
		if id == 0 {
			t = TargetPiece
		}
		pieces[id] = Piece{ID: id, Type: t, Pos: pos}
	}
	return pieces
}

func (p Puzzle) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(p)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodePuzzle(buf []byte) (*Puzzle, error) {
	var p Puzzle
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type GenerateConfig struct {
	Size         int
	BlockerCount int

	MinLWalls      int
	MaxLWalls      int
	EdgeWallLength int
	MaxObstacles   int

	MinOptimalMoves int
	MaxOptimalMoves int
	TieBreak        TieBreak

	MaxLayoutAttempts int
	MaxStepAttempts   int
	MaxWalkAttempts   int
	MaxBoardAttempts  int
	SolveNodeBudget   int
}

func DefaultConfig() GenerateConfig {
	return GenerateConfig{
		Size:              8,
		BlockerCount:      3,
		MinLWalls:         6,
		MaxLWalls:         8,
		EdgeWallLength:    1,
		MaxObstacles:      2,
		MinOptimalMoves:   7,
		MaxOptimalMoves:   10,
		TieBreak:          TieBreakFarthest,
		MaxLayoutAttempts: 64,
		MaxStepAttempts:   16,
		MaxWalkAttempts:   32,
		MaxBoardAttempts:  8,
		SolveNodeBudget:   DefaultNodeBudget,
	}
}

func (cfg GenerateConfig) validate() error {
	if cfg.Size < 4 || cfg.Size%2 != 0 {
		return fmt.Errorf("board size must be even and at least 4, got %d", cfg.Size)
	}
	if cfg.Size > 256 {
		return fmt.Errorf("board size %d too large", cfg.Size)
	}
	if cfg.BlockerCount < 0 {
		return fmt.Errorf("negative blocker count")
	}
	if cfg.MinLWalls < 0 || cfg.MaxLWalls < cfg.MinLWalls || cfg.MaxLWalls > 8 {
		return fmt.Errorf("invalid L-wall bounds [%d, %d]", cfg.MinLWalls, cfg.MaxLWalls)
	}
	if cfg.EdgeWallLength < 1 || cfg.EdgeWallLength > cfg.Size/2 {
		return fmt.Errorf("invalid edge wall length %d", cfg.EdgeWallLength)
	}
	if cfg.MaxObstacles < 0 || cfg.MaxObstacles > MaxObstacles {
		return fmt.Errorf("obstacle count bound %d outside [0, %d]", cfg.MaxObstacles, MaxObstacles)
	}
	if cfg.MinOptimalMoves < 1 || cfg.MaxOptimalMoves < cfg.MinOptimalMoves {
		return fmt.Errorf(
			"invalid difficulty band [%d, %d]",
			cfg.MinOptimalMoves, cfg.MaxOptimalMoves,
		)
	}
	if cfg.MaxLayoutAttempts < 1 || cfg.MaxStepAttempts < 1 ||
		cfg.MaxWalkAttempts < 1 || cfg.MaxBoardAttempts < 1 {
		return fmt.Errorf("attempt bounds must be positive")
	}
	if cfg.SolveNodeBudget < 1 {
		return fmt.Errorf("solve node budget must be positive")
	}
	return nil
}

// DailySeed derives the deterministic generation seed for an ISO date
// string. FNV keeps the mapping stable across processes, unlike the
// maphash seeding used for throwaway randomness.
func DailySeed(date string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(date))
	return h.Sum64()
}

// Generate synthesizes a certified puzzle: wall layout, reverse walk,
// BFS certification, with a walk-level and a board-level retry loop.
// Identical seed and config yield an identical puzzle. All retries
// exhausted surfaces as [ErrBudgetExceeded].
func Generate(seed uint64, cfg GenerateConfig) (puzzle *Puzzle, err error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	defer func() {
		var ae AssertionError
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				puzzle, err = nil, ae
				return
			}
			panic(r)
		}
	}()

	r := rand.New(rand.NewPCG(seed, seed*0x9E3779B97F4A7C15+1))

	for range cfg.MaxBoardAttempts {
		board, boardErr := generateBoard(cfg, r)
		if boardErr != nil {
			err = boardErr
			continue
		}

		for range cfg.MaxWalkAttempts {
			w, walkErr := newWalker(board, cfg, r)
			if walkErr != nil {
				err = walkErr
				continue
			}
			conf, walkErr := w.run()
			if walkErr != nil {
				err = walkErr
				continue
			}

			sol, solveErr := SolveWithBudget(board, conf, cfg.SolveNodeBudget)
			if solveErr != nil {
				err = solveErr
				continue
			}
			if sol.Distance < cfg.MinOptimalMoves || sol.Distance > cfg.MaxOptimalMoves {
				err = fmt.Errorf("certified %d moves: %w", sol.Distance, ErrOutOfBand)
				continue
			}

			return &Puzzle{
				Board:        board,
				Pieces:       conf,
				OptimalMoves: sol.Distance,
				Path:         sol.Path,
				Seed:         seed,
			}, nil
		}
	}

	return nil, fmt.Errorf("all generation attempts failed (last: %w): %w", err, ErrBudgetExceeded)
}

// GenerateParallel races workers over independent derived seeds and
// returns the lowest-seed success, so the result is deterministic for a
// fixed seed, config and worker count. Attempts share no state; each
// owns its board, occupancy and visited sets.
func GenerateParallel(ctx context.Context, seed uint64, cfg GenerateConfig, workers int) (*Puzzle, error) {
	if workers < 1 {
		workers = 1
	}

	puzzles := make([]*Puzzle, workers)
	errs := make([]error, workers)

	g, ctx := errgroup.WithContext(ctx)
	for i := range workers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			puzzles[i], errs[i] = Generate(seed+uint64(i)*0x9E3779B9, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, p := range puzzles {
		if p != nil {
			return p, nil
		}
		if errs[i] != nil && !errors.Is(errs[i], ErrBudgetExceeded) {
			return nil, errs[i]
		}
	}
	return nil, fmt.Errorf("no worker produced a puzzle: %w", ErrBudgetExceeded)
}
