// Package sliding implements the daily sliding-block puzzle engine: board
// geometry, the slide resolution rule, a BFS solver, and a backward puzzle
// generator whose output is always certified by the solver.
package sliding

import "fmt"

type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "?"
	}
}

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "u", "up":
		return Up, nil
	case "r", "right":
		return Right, nil
	case "d", "down":
		return Down, nil
	case "l", "left":
		return Left, nil
	}
	return 0, fmt.Errorf("invalid direction %q", s)
}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	default:
		return 0, -1
	}
}

/*
 * Walls are directional per cell, one bit per side. A wall segment
 * between two adjacent cells must be present in both cells' masks;
 * NewBoard rejects boards where the mirror bit is missing.
 */
type WallFlags uint8

const (
	WallUp WallFlags = 1 << iota
	WallRight
	WallDown
	WallLeft
)

func (f WallFlags) Has(d Direction) bool {
	return f&(1<<d) != 0
}

type Position struct {
	Row, Col int
}

func (p Position) step(d Direction) Position {
	dr, dc := d.delta()
	return Position{p.Row + dr, p.Col + dc}
}

// MaxObstacles caps the number of solid obstacles a board may carry.
const MaxObstacles = 2

type Board struct {
	Size      int
	Walls     [][]WallFlags
	Goal      Position
	Obstacles []Position
}

// NewBoard validates the wall/obstacle/goal invariants and returns an
// immutable board. Invariant violations here are construction-time
// failures: a board that passes NewBoard never needs runtime re-checks.
func NewBoard(size int, walls [][]WallFlags, goal Position, obstacles []Position) (*Board, error) {
	if size < 2 {
		return nil, fmt.Errorf("board size %d too small", size)
	}
	// cell indexes must fit the solver's 16-bit state encoding
	if size > 256 {
		return nil, fmt.Errorf("board size %d too large", size)
	}
	if len(walls) != size {
		return nil, fmt.Errorf("wall grid has %d rows, want %d", len(walls), size)
	}
	for i, row := range walls {
		if len(row) != size {
			return nil, fmt.Errorf("wall row %d has %d cells, want %d", i, len(row), size)
		}
	}

	b := &Board{Size: size, Walls: walls, Goal: goal, Obstacles: obstacles}

	if !b.InBounds(goal) {
		return nil, fmt.Errorf("goal %v out of bounds", goal)
	}
	if len(obstacles) > MaxObstacles {
		return nil, fmt.Errorf("%d obstacles exceed the limit of %d", len(obstacles), MaxObstacles)
	}
	seen := make(map[Position]struct{}, len(obstacles))
	for _, o := range obstacles {
		if !b.InBounds(o) {
			return nil, fmt.Errorf("obstacle %v out of bounds", o)
		}
		if o == goal {
			return nil, fmt.Errorf("obstacle %v occupies the goal cell", o)
		}
		if _, dup := seen[o]; dup {
			return nil, fmt.Errorf("duplicate obstacle %v", o)
		}
		seen[o] = struct{}{}
	}

	/*
	 * Every internal wall segment must be recorded on both of its
	 * sides, or the resolver would see it from one direction only.
	 */
	for row := range size {
		for col := range size {
			p := Position{row, col}
			for d := Up; d <= Left; d++ {
				if !walls[row][col].Has(d) {
					continue
				}
				n := p.step(d)
				if !b.InBounds(n) {
					continue
				}
				if !walls[n.Row][n.Col].Has(d.Opposite()) {
					return nil, fmt.Errorf(
						"wall between %v and %v is not mirrored", p, n,
					)
				}
			}
		}
	}

	return b, nil
}

func (b *Board) InBounds(p Position) bool {
	return 0 <= p.Row && p.Row < b.Size && 0 <= p.Col && p.Col < b.Size
}

func (b *Board) WallsAt(p Position) WallFlags {
	return b.Walls[p.Row][p.Col]
}

// IsObstacle scans the obstacle list; boards carry at most [MaxObstacles]
// entries so a linear scan beats a lookup structure.
func (b *Board) IsObstacle(p Position) bool {
	for _, o := range b.Obstacles {
		if o == p {
			return true
		}
	}
	return false
}
