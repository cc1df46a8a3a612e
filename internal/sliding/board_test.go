package sliding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoardRejectsUnmirroredWalls(t *testing.T) {
	t.Parallel()

	walls := emptyWalls(4)
	walls[1][1] |= WallRight // mirror bit on (1,2) deliberately missing

	_, err := NewBoard(4, walls, Position{0, 0}, nil)
	require.ErrorContains(t, err, "not mirrored")
}

func TestNewBoardRejectsOversize(t *testing.T) {
	t.Parallel()

	_, err := NewBoard(300, emptyWalls(300), Position{0, 0}, nil)
	require.ErrorContains(t, err, "too large")
}

func TestNewBoardRejectsGoalOnObstacle(t *testing.T) {
	t.Parallel()

	_, err := NewBoard(4, emptyWalls(4), Position{1, 1}, []Position{{1, 1}})
	require.ErrorContains(t, err, "goal")
}

func TestNewBoardRejectsTooManyObstacles(t *testing.T) {
	t.Parallel()

	obstacles := []Position{{0, 0}, {0, 2}, {2, 0}}
	_, err := NewBoard(4, emptyWalls(4), Position{3, 3}, obstacles)
	require.Error(t, err)
}

func TestNewBoardRejectsDuplicateObstacles(t *testing.T) {
	t.Parallel()

	_, err := NewBoard(4, emptyWalls(4), Position{3, 3}, []Position{{1, 1}, {1, 1}})
	require.ErrorContains(t, err, "duplicate")
}

func TestNewBoardAcceptsMirroredWalls(t *testing.T) {
	t.Parallel()

	walls := emptyWalls(4)
	setWall(walls, Position{1, 1}, Right)
	setWall(walls, Position{2, 2}, Up)

	b, err := NewBoard(4, walls, Position{0, 3}, []Position{{3, 0}})
	require.NoError(t, err)

	require.True(t, b.WallsAt(Position{1, 1}).Has(Right))
	require.True(t, b.WallsAt(Position{1, 2}).Has(Left))
	require.True(t, b.IsObstacle(Position{3, 0}))
	require.False(t, b.IsObstacle(Position{0, 3}))
}

func TestBoardEdgeWallsNeedNoMirror(t *testing.T) {
	t.Parallel()

	// a wall on the rim side of a border cell has no neighbor to
	// mirror into and must still validate
	walls := emptyWalls(4)
	walls[0][1] |= WallUp

	_, err := NewBoard(4, walls, Position{2, 2}, nil)
	require.NoError(t, err)
}

func TestDirectionRoundTrip(t *testing.T) {
	t.Parallel()

	for d := Up; d <= Left; d++ {
		parsed, err := ParseDirection(d.String())
		require.NoError(t, err)
		require.Equal(t, d, parsed)
		require.Equal(t, d, d.Opposite().Opposite())
	}

	_, err := ParseDirection("sideways")
	require.Error(t, err)
}
