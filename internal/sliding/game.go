package sliding

import (
	"bytes"
	"encoding/gob"
)

// GameState tracks one player's progress through a puzzle: the live
// piece positions, the number of moves taken, and whether the target
// has reached the goal. The puzzle itself stays immutable.
type GameState struct {
	Puzzle    *Puzzle
	Pieces    Configuration
	MoveCount int
	Solved    bool
}

func NewGameState(p *Puzzle) *GameState {
	return &GameState{
		Puzzle: p,
		Pieces: p.Pieces.Clone(),
	}
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var g GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (g GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(g)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ApplyMove slides one piece and counts the move. Zero-distance slides
// are rejected with [ErrBlockedMove] and do not count.
func (g *GameState) ApplyMove(pieceID int, dir Direction) (*Move, error) {
	if g.Solved {
		return nil, ErrAlreadySolved
	}
	if pieceID < 0 || pieceID >= len(g.Pieces) {
		return nil, ErrNoSuchPiece
	}

	from := g.Pieces[pieceID]
	res := Resolve(g.Puzzle.Board, g.Pieces.Occupied(pieceID), from, dir)
	if res.Distance == 0 {
		return nil, ErrBlockedMove
	}

	g.Pieces[pieceID] = res.To
	g.MoveCount++
	if pieceID == 0 && res.To == g.Puzzle.Board.Goal {
		g.Solved = true
	}

	return &Move{PieceID: pieceID, Dir: dir, From: from, To: res.To}, nil
}

// Reset puts every piece back on its initial cell and zeroes the move
// counter.
func (g *GameState) Reset() {
	g.Pieces = g.Puzzle.Pieces.Clone()
	g.MoveCount = 0
	g.Solved = false
}
