package sliding

type StopReason uint8

const (
	StoppedByWall StopReason = iota
	StoppedByEdge
	StoppedByPiece
	StoppedByObstacle
)

func (s StopReason) String() string {
	switch s {
	case StoppedByWall:
		return "wall"
	case StoppedByEdge:
		return "edge"
	case StoppedByPiece:
		return "piece"
	case StoppedByObstacle:
		return "obstacle"
	default:
		return "?"
	}
}

type SlideResult struct {
	To        Position
	StoppedBy StopReason
	Distance  int
}

// Resolve slides a piece at from in dir until something stops it and
// reports where it ends up and why. occupied holds the cells of every
// *other* piece. Distance 0 means the piece cannot move at all; callers
// must reject such moves before counting them.
//
// Gameplay, the forward solver and the backward generator all share this
// one rule.
func Resolve(b *Board, occupied map[Position]struct{}, from Position, dir Direction) SlideResult {
	cur := from
	dist := 0
	for {
		if b.WallsAt(cur).Has(dir) {
			return SlideResult{cur, StoppedByWall, dist}
		}
		next := cur.step(dir)
		if !b.InBounds(next) {
			return SlideResult{cur, StoppedByEdge, dist}
		}
		if _, ok := occupied[next]; ok {
			return SlideResult{cur, StoppedByPiece, dist}
		}
		if b.IsObstacle(next) {
			return SlideResult{cur, StoppedByObstacle, dist}
		}
		cur = next
		dist++
	}
}
