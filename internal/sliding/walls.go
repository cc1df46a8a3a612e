package sliding

import (
	"math/rand/v2"
)

/*
 * Board layout generation: quadrant L-walls, one line wall per board
 * edge, and a few solid obstacles, all subject to a flood-fill
 * connectivity check. A layout that fails any placement or the
 * connectivity check is discarded whole and regenerated; there is no
 * repair step.
 */

type layout struct {
	size      int
	walls     [][]WallFlags
	goal      Position
	obstacles []Position
}

func newLayout(size int) *layout {
	walls := make([][]WallFlags, size)
	for i := range walls {
		walls[i] = make([]WallFlags, size)
	}
	return &layout{size: size, walls: walls}
}

func (l *layout) inBounds(p Position) bool {
	return 0 <= p.Row && p.Row < l.size && 0 <= p.Col && p.Col < l.size
}

func (l *layout) isObstacle(p Position) bool {
	for _, o := range l.obstacles {
		if o == p {
			return true
		}
	}
	return false
}

// addWall writes one wall segment on the dir side of p, mirrored into
// the adjacent cell. It refuses segments that fall on the board rim or
// overlap an existing segment, so callers can use the return value to
// detect duplicate features.
func (l *layout) addWall(p Position, dir Direction) bool {
	n := p.step(dir)
	if !l.inBounds(p) || !l.inBounds(n) {
		return false
	}
	if l.walls[p.Row][p.Col].Has(dir) || l.walls[n.Row][n.Col].Has(dir.Opposite()) {
		return false
	}
	l.walls[p.Row][p.Col] |= 1 << dir
	l.walls[n.Row][n.Col] |= 1 << dir.Opposite()
	return true
}

// lWallCorners lists the two wall sides forming each L orientation: the
// segments share the cell corner they point at.
var lWallCorners = [4][2]Direction{
	{Up, Right},
	{Right, Down},
	{Down, Left},
	{Left, Up},
}

// placeLWall drops one L-shaped feature into the given quadrant
// (quadrants numbered 0..3 row-major). Bounded retries; false means the
// quadrant is too crowded and the whole layout should be regenerated.
func (l *layout) placeLWall(quadrant int, r *rand.Rand) bool {
	half := l.size / 2
	rowOff, colOff := 0, 0
	if quadrant >= 2 {
		rowOff = half
	}
	if quadrant%2 == 1 {
		colOff = half
	}

	for range 16 {
		p := Position{
			Row: rowOff + r.IntN(half),
			Col: colOff + r.IntN(half),
		}
		corner := lWallCorners[r.IntN(4)]
		if l.walls[p.Row][p.Col].Has(corner[0]) || l.walls[p.Row][p.Col].Has(corner[1]) {
			continue
		}
		if !l.addWall(p, corner[0]) {
			continue
		}
		if !l.addWall(p, corner[1]) {
			// orphan segment; discard the layout rather than repair
			return false
		}
		return true
	}
	return false
}

func (l *layout) placeLWalls(cfg GenerateConfig, r *rand.Rand) bool {
	total := cfg.MinLWalls + r.IntN(cfg.MaxLWalls-cfg.MinLWalls+1)

	// one feature per quadrant first, then spread the remainder over
	// quadrants that still have room (at most two features each)
	counts := [4]int{}
	order := r.Perm(4)
	placed := 0
	for _, q := range order {
		if !l.placeLWall(q, r) {
			return false
		}
		counts[q]++
		placed++
	}
	for placed < total {
		q := r.IntN(4)
		if counts[q] >= 2 {
			continue
		}
		if !l.placeLWall(q, r) {
			return false
		}
		counts[q]++
		placed++
	}
	return true
}

// placeEdgeWalls hangs one short wall off each board edge, length cells
// deep, to break trivial rim-hugging slides.
func (l *layout) placeEdgeWalls(length int, r *rand.Rand) bool {
	for _, edge := range []Direction{Up, Down, Left, Right} {
		// boundary index between two rows/cols, never at a corner
		at := 1 + r.IntN(l.size-1)
		for depth := range length {
			var p Position
			var dir Direction
			switch edge {
			case Up:
				p, dir = Position{depth, at - 1}, Right
			case Down:
				p, dir = Position{l.size - 1 - depth, at - 1}, Right
			case Left:
				p, dir = Position{at - 1, depth}, Down
			case Right:
				p, dir = Position{at - 1, l.size - 1 - depth}, Down
			}
			if !l.addWall(p, dir) {
				return false
			}
		}
	}
	return true
}

func (l *layout) placeObstacles(maxObstacles int, r *rand.Rand) {
	count := r.IntN(maxObstacles + 1)
	for range count {
		for range 16 {
			p := Position{r.IntN(l.size), r.IntN(l.size)}
			if p == l.goal || l.isObstacle(p) || l.nextToObstacle(p) {
				continue
			}
			l.obstacles = append(l.obstacles, p)
			break
		}
	}
}

// nextToObstacle keeps obstacles from clustering; pockets they might
// still pinch off are caught by the connectivity check.
func (l *layout) nextToObstacle(p Position) bool {
	for d := Up; d <= Left; d++ {
		if l.isObstacle(p.step(d)) {
			return true
		}
	}
	return false
}

// connected flood-fills the free-cell graph (walls and obstacles only,
// pieces ignored) and reports whether every free cell was reached.
func (l *layout) connected() bool {
	free := 0
	var start Position
	found := false
	for row := range l.size {
		for col := range l.size {
			p := Position{row, col}
			if l.isObstacle(p) {
				continue
			}
			free++
			if !found {
				start, found = p, true
			}
		}
	}
	if !found {
		return false
	}

	seen := map[Position]struct{}{start: {}}
	frontier := []Position{start}
	for len(frontier) > 0 {
		p := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for d := Up; d <= Left; d++ {
			if l.walls[p.Row][p.Col].Has(d) {
				continue
			}
			n := p.step(d)
			if !l.inBounds(n) || l.isObstacle(n) {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			frontier = append(frontier, n)
		}
	}
	return len(seen) == free
}

// generateBoard builds a candidate wall/obstacle layout, retrying
// whole layouts up to cfg.MaxLayoutAttempts before giving up with
// [ErrDisconnectedBoard].
func generateBoard(cfg GenerateConfig, r *rand.Rand) (*Board, error) {
	for range cfg.MaxLayoutAttempts {
		l := newLayout(cfg.Size)

		// goal off the rim: rim goals make edge-hugging solves trivial
		l.goal = Position{
			Row: 1 + r.IntN(cfg.Size-2),
			Col: 1 + r.IntN(cfg.Size-2),
		}

		if !l.placeLWalls(cfg, r) {
			continue
		}
		if !l.placeEdgeWalls(cfg.EdgeWallLength, r) {
			continue
		}
		l.placeObstacles(cfg.MaxObstacles, r)

		if !l.connected() {
			continue
		}

		return NewBoard(l.size, l.walls, l.goal, l.obstacles)
	}
	return nil, ErrDisconnectedBoard
}
