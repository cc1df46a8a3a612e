package sliding

import (
	"fmt"
	"math/rand/v2"
)

// ReverseMove records, during backward generation, the forward move a
// reverse step is the inverse of: a piece sliding Dir from From would
// come to rest exactly at To, stopped by StoppedBy after Distance cells.
type ReverseMove struct {
	PieceID   int
	From      Position
	To        Position
	Dir       Direction
	StoppedBy StopReason
	Distance  int
}

// TieBreak selects among the valid originating cells of a reverse move.
type TieBreak uint8

const (
	// TieBreakFarthest prefers the farthest valid origin, avoiding
	// degenerate one-cell reverse moves where possible.
	TieBreakFarthest TieBreak = iota
	// TieBreakRandom picks uniformly among valid origin distances.
	TieBreakRandom
)

/*
 * The reverse random walk. Pieces start in a solved configuration
 * (target on the goal) and are walked backwards through inverses of
 * legal forward moves. The walk only proposes candidates; the forward
 * solver is the sole authority on the resulting puzzle's par.
 */
type walker struct {
	board *Board
	cfg   GenerateConfig
	r     *rand.Rand
	conf  Configuration
	last  *ReverseMove
}

func newWalker(b *Board, cfg GenerateConfig, r *rand.Rand) (*walker, error) {
	conf := make(Configuration, 1+cfg.BlockerCount)
	conf[0] = b.Goal

	occ := map[Position]struct{}{b.Goal: {}}
	for i := 1; i < len(conf); i++ {
		placed := false
		for range 64 {
			p := Position{r.IntN(b.Size), r.IntN(b.Size)}
			if _, taken := occ[p]; taken {
				continue
			}
			if b.IsObstacle(p) {
				continue
			}
			conf[i] = p
			occ[p] = struct{}{}
			placed = true
			break
		}
		if !placed {
			return nil, ErrStuckWalk
		}
	}

	return &walker{board: b, cfg: cfg, r: r, conf: conf}, nil
}

// run performs the reverse walk. The step count is sampled slightly
// above the difficulty band since reverse moves partially cancel each
// other; the certified distance may still land anywhere.
func (w *walker) run() (Configuration, error) {
	span := w.cfg.MaxOptimalMoves - w.cfg.MinOptimalMoves + 3
	steps := w.cfg.MinOptimalMoves + w.r.IntN(span)

	for range steps {
		accepted := false
		for range w.cfg.MaxStepAttempts {
			if w.step() {
				accepted = true
				break
			}
		}
		if !accepted {
			return nil, ErrStuckWalk
		}
	}
	return w.conf.Clone(), nil
}

// step proposes and applies one reverse move for a uniformly sampled
// piece and direction, reporting whether it was accepted.
func (w *walker) step() bool {
	pieceID := w.r.IntN(len(w.conf))
	dir := Direction(w.r.IntN(4))

	rm, ok := w.propose(pieceID, dir)
	if !ok {
		return false
	}
	w.validate(rm)

	w.conf[rm.PieceID] = rm.From
	w.last = rm
	return true
}

// propose constructs the inverse of a forward move in dir that ends at
// the piece's current cell, or reports that none exists.
func (w *walker) propose(pieceID int, dir Direction) (*ReverseMove, bool) {
	// undoing the step we just took walks in place
	if w.last != nil && w.last.PieceID == pieceID && dir == w.last.Dir.Opposite() {
		return nil, false
	}

	cur := w.conf[pieceID]

	// a forward slide only rests at cur if something blocks it beyond
	stop, blocked := w.stopperBeyond(pieceID, cur, dir)
	if !blocked {
		return nil, false
	}

	// scan backwards along the opposite direction collecting every
	// origin whose forward slide travels clean through to cur
	occ := w.conf.Occupied(pieceID)
	opp := dir.Opposite()
	origins := make([]Position, 0, w.board.Size)
	scan := cur
	for {
		if w.board.WallsAt(scan).Has(opp) {
			break
		}
		next := scan.step(opp)
		if !w.board.InBounds(next) || w.board.IsObstacle(next) {
			break
		}
		if _, taken := occ[next]; taken {
			break
		}
		origins = append(origins, next)
		scan = next
	}
	if len(origins) == 0 {
		return nil, false
	}

	var origin Position
	var distance int
	switch w.cfg.TieBreak {
	case TieBreakRandom:
		i := w.r.IntN(len(origins))
		origin, distance = origins[i], i+1
	default:
		origin, distance = origins[len(origins)-1], len(origins)
	}

	return &ReverseMove{
		PieceID:   pieceID,
		From:      origin,
		To:        cur,
		Dir:       dir,
		StoppedBy: stop,
		Distance:  distance,
	}, true
}

// stopperBeyond reports what would stop a forward slide at p, if
// anything.
func (w *walker) stopperBeyond(pieceID int, p Position, dir Direction) (StopReason, bool) {
	if w.board.WallsAt(p).Has(dir) {
		return StoppedByWall, true
	}
	next := p.step(dir)
	if !w.board.InBounds(next) {
		return StoppedByEdge, true
	}
	if w.board.IsObstacle(next) {
		return StoppedByObstacle, true
	}
	for id, q := range w.conf {
		if id != pieceID && q == next {
			return StoppedByPiece, true
		}
	}
	return 0, false
}

// validate replays the proposed forward move through the shared slide
// resolver and requires an exact match. By construction this always
// holds; an inconsistency means the proposal logic and the resolver
// have diverged, so the whole generation run is poisoned and bails out
// through the recover in Generate.
func (w *walker) validate(rm *ReverseMove) {
	occ := w.conf.Occupied(rm.PieceID)
	res := Resolve(w.board, occ, rm.From, rm.Dir)
	if res.To != rm.To || res.StoppedBy != rm.StoppedBy || res.Distance != rm.Distance {
		panic(AssertionError{message: fmt.Sprintf(
			"reverse move %+v does not replay forward: resolver gave %+v", *rm, res,
		)})
	}
}
