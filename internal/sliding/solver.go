package sliding

import (
	"fmt"
	"slices"
)

// Move is a forward slide already resolved to its destination.
type Move struct {
	PieceID int
	Dir     Direction
	From    Position
	To      Position
}

// Configuration holds every piece position at one instant, indexed by
// piece id. Index 0 is always the target piece; the rest are blockers.
type Configuration []Position

func (c Configuration) Target() Position {
	return c[0]
}

func (c Configuration) Clone() Configuration {
	return slices.Clone(c)
}

// Occupied returns the cell set of every piece except the one with id
// exclude (a piece never blocks itself). Pass a negative id to include
// all pieces.
func (c Configuration) Occupied(exclude int) map[Position]struct{} {
	occ := make(map[Position]struct{}, len(c))
	for id, p := range c {
		if id == exclude {
			continue
		}
		occ[p] = struct{}{}
	}
	return occ
}

// key packs a configuration into a visited-set key, two bytes per
// cell so indexes survive boards wider than 16. Blockers are
// interchangeable, so their cells are sorted into a canonical order;
// the target keeps its distinguished slot.
func (c Configuration) key(size int) string {
	cells := make([]uint16, len(c))
	for i, p := range c {
		cells[i] = uint16(p.Row*size + p.Col)
	}
	slices.Sort(cells[1:])

	b := make([]byte, 0, 2*len(cells))
	for _, cell := range cells {
		b = append(b, byte(cell>>8), byte(cell))
	}
	return string(b)
}

type Solution struct {
	Distance int
	Path     []Move
}

// DefaultNodeBudget bounds a single BFS. An 8x8 board with 4 pieces has
// on the order of a few million canonical states, so the default budget
// admits an exhaustive search while still bounding degenerate inputs.
const DefaultNodeBudget = 2_000_000

func Solve(b *Board, start Configuration) (*Solution, error) {
	return SolveWithBudget(b, start, DefaultNodeBudget)
}

type bfsEdge struct {
	parent string
	move   Move
}

// SolveWithBudget runs a breadth-first search over piece configurations
// and returns the minimum move count for the target piece to reach the
// goal along with one witness path. It returns [ErrUnsolvable] when the
// frontier exhausts and [ErrBudgetExceeded] when more than nodeBudget
// states were expanded; generation treats the two differently only in
// logging, both are hard rejections of the candidate.
func SolveWithBudget(b *Board, start Configuration, nodeBudget int) (*Solution, error) {
	if err := validateConfiguration(b, start); err != nil {
		return nil, err
	}

	startKey := start.key(b.Size)
	if start.Target() == b.Goal {
		return &Solution{Distance: 0, Path: nil}, nil
	}

	type node struct {
		conf Configuration
		dist int
	}

	visited := map[string]struct{}{startKey: {}}
	parents := make(map[string]bfsEdge)
	queue := []node{{conf: start, dist: 0}}
	expanded := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		expanded++
		if expanded > nodeBudget {
			return nil, fmt.Errorf("solve expanded over %d states: %w", nodeBudget, ErrBudgetExceeded)
		}

		curKey := cur.conf.key(b.Size)
		occ := cur.conf.Occupied(-1)

		for id, from := range cur.conf {
			delete(occ, from)
			for dir := Up; dir <= Left; dir++ {
				res := Resolve(b, occ, from, dir)
				if res.Distance == 0 {
					continue
				}
				next := cur.conf.Clone()
				next[id] = res.To

				nextKey := next.key(b.Size)
				if _, seen := visited[nextKey]; seen {
					continue
				}
				visited[nextKey] = struct{}{}
				parents[nextKey] = bfsEdge{
					parent: curKey,
					move:   Move{PieceID: id, Dir: dir, From: from, To: res.To},
				}

				if id == 0 && res.To == b.Goal {
					return &Solution{
						Distance: cur.dist + 1,
						Path:     reconstructPath(parents, startKey, nextKey),
					}, nil
				}
				queue = append(queue, node{conf: next, dist: cur.dist + 1})
			}
			occ[from] = struct{}{}
		}
	}

	return nil, ErrUnsolvable
}

func reconstructPath(parents map[string]bfsEdge, startKey, endKey string) []Move {
	var path []Move
	for key := endKey; key != startKey; {
		edge := parents[key]
		path = append(path, edge.move)
		key = edge.parent
	}
	slices.Reverse(path)
	return path
}

func validateConfiguration(b *Board, conf Configuration) error {
	if len(conf) == 0 {
		return fmt.Errorf("configuration has no pieces")
	}
	seen := make(map[Position]struct{}, len(conf))
	for id, p := range conf {
		if !b.InBounds(p) {
			return fmt.Errorf("piece %d at %v is out of bounds", id, p)
		}
		if b.IsObstacle(p) {
			return fmt.Errorf("piece %d at %v sits on an obstacle", id, p)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("two pieces share cell %v", p)
		}
		seen[p] = struct{}{}
	}
	return nil
}
