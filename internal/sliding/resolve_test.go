package sliding

import (
	"testing"
)

func emptyWalls(size int) [][]WallFlags {
	walls := make([][]WallFlags, size)
	for i := range walls {
		walls[i] = make([]WallFlags, size)
	}
	return walls
}

func mustBoard(t *testing.T, size int, walls [][]WallFlags, goal Position, obstacles ...Position) *Board {
	t.Helper()
	b, err := NewBoard(size, walls, goal, obstacles)
	if err != nil {
		t.Fatalf("could not construct board: %v", err)
	}
	return b
}

// setWall mirrors one wall segment into both adjacent cells, the way
// the generator records them.
func setWall(walls [][]WallFlags, p Position, dir Direction) {
	walls[p.Row][p.Col] |= 1 << dir
	n := p.step(dir)
	if 0 <= n.Row && n.Row < len(walls) && 0 <= n.Col && n.Col < len(walls) {
		walls[n.Row][n.Col] |= 1 << dir.Opposite()
	}
}

func occupy(positions ...Position) map[Position]struct{} {
	occ := make(map[Position]struct{}, len(positions))
	for _, p := range positions {
		occ[p] = struct{}{}
	}
	return occ
}

func TestResolveStops(t *testing.T) {
	t.Parallel()

	walls := emptyWalls(8)
	setWall(walls, Position{4, 2}, Right)

	board := mustBoard(t, 8, walls, Position{3, 3}, Position{6, 5})

	tests := []struct {
		name string
		from Position
		dir  Direction
		occ  map[Position]struct{}
		want SlideResult
	}{
		{
			name: "edge stop",
			from: Position{0, 0},
			dir:  Right,
			occ:  occupy(),
			want: SlideResult{Position{0, 7}, StoppedByEdge, 7},
		},
		{
			name: "wall stop before stepping out of cell",
			from: Position{4, 0},
			dir:  Right,
			occ:  occupy(),
			want: SlideResult{Position{4, 2}, StoppedByWall, 2},
		},
		{
			name: "wall seen from the far side",
			from: Position{4, 7},
			dir:  Left,
			occ:  occupy(),
			want: SlideResult{Position{4, 3}, StoppedByWall, 4},
		},
		{
			name: "piece stop",
			from: Position{2, 0},
			dir:  Right,
			occ:  occupy(Position{2, 5}),
			want: SlideResult{Position{2, 4}, StoppedByPiece, 4},
		},
		{
			name: "obstacle stop",
			from: Position{6, 0},
			dir:  Right,
			occ:  occupy(),
			want: SlideResult{Position{6, 4}, StoppedByObstacle, 4},
		},
		{
			name: "zero distance against edge",
			from: Position{0, 0},
			dir:  Up,
			occ:  occupy(),
			want: SlideResult{Position{0, 0}, StoppedByEdge, 0},
		},
		{
			name: "zero distance against adjacent piece",
			from: Position{7, 0},
			dir:  Right,
			occ:  occupy(Position{7, 1}),
			want: SlideResult{Position{7, 0}, StoppedByPiece, 0},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Resolve(board, test.occ, test.from, test.dir)
			if got != test.want {
				t.Errorf("Resolve = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestResolveBlockedIsIdempotent(t *testing.T) {
	t.Parallel()

	walls := emptyWalls(4)
	for d := Up; d <= Left; d++ {
		setWall(walls, Position{2, 2}, d)
	}
	board := mustBoard(t, 4, walls, Position{0, 0})

	for d := Up; d <= Left; d++ {
		res := Resolve(board, occupy(), Position{2, 2}, d)
		if res.Distance != 0 || res.To != (Position{2, 2}) {
			t.Errorf("dir %v: walled-in piece moved: %+v", d, res)
		}
		again := Resolve(board, occupy(), res.To, d)
		if again != res {
			t.Errorf("dir %v: repeated resolve differs: %+v vs %+v", d, again, res)
		}
	}
}
