package sliding

import "errors"

var (
	// ErrUnsolvable reports a BFS frontier exhausted with no goal state.
	ErrUnsolvable = errors.New("no sequence of moves reaches the goal")

	// ErrBudgetExceeded covers both a solve that ran past its node budget
	// ("unsolvable within budget") and a generation run that exhausted
	// all of its bounded retries.
	ErrBudgetExceeded = errors.New("budget exceeded")

	// ErrOutOfBand marks a solvable candidate whose certified optimal
	// move count falls outside the difficulty band.
	ErrOutOfBand = errors.New("optimal move count outside difficulty band")

	// ErrStuckWalk marks a reverse walk with no legal reverse move left
	// after the bounded local attempts.
	ErrStuckWalk = errors.New("reverse walk ran out of legal moves")

	// ErrDisconnectedBoard marks a wall layout that fails the flood-fill
	// reachability check.
	ErrDisconnectedBoard = errors.New("wall layout disconnects the board")

	ErrNoSuchPiece   = errors.New("no such piece")
	ErrBlockedMove   = errors.New("piece cannot move in that direction")
	ErrAlreadySolved = errors.New("puzzle already solved")
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
