package sliding

import (
	"math/rand/v2"
	"testing"
)

func TestWalkerProposalsReplayForward(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	r := rand.New(rand.NewPCG(3, 4))

	board, err := generateBoard(cfg, r)
	if err != nil {
		t.Fatal(err)
	}

	w, err := newWalker(board, cfg, r)
	if err != nil {
		t.Fatal(err)
	}
	if w.conf.Target() != board.Goal {
		t.Fatalf("walk starts with target at %v, goal is %v", w.conf.Target(), board.Goal)
	}

	// every accepted step must be the exact inverse of a forward move:
	// sliding the piece from its new cell must come back to its old one
	for range 200 {
		before := w.conf.Clone()
		if !w.step() {
			continue
		}
		rm := w.last

		if before[rm.PieceID] != rm.To {
			t.Fatalf("reverse move claims piece %d was at %v, had %v",
				rm.PieceID, rm.To, before[rm.PieceID])
		}
		if w.conf[rm.PieceID] != rm.From {
			t.Fatalf("reverse move left piece %d at %v, want %v",
				rm.PieceID, w.conf[rm.PieceID], rm.From)
		}

		res := Resolve(board, w.conf.Occupied(rm.PieceID), rm.From, rm.Dir)
		if res.To != rm.To || res.StoppedBy != rm.StoppedBy || res.Distance != rm.Distance {
			t.Fatalf("forward replay %+v does not match reverse move %+v", res, *rm)
		}
		if rm.Distance == 0 {
			t.Fatal("reverse move with zero distance accepted")
		}
	}
}

func TestWalkerFarthestTieBreak(t *testing.T) {
	t.Parallel()

	// an open lane: the farthest origin for a rightward slide into the
	// east edge from (4,7) is all the way back at (4,0)
	board := mustBoard(t, 8, emptyWalls(8), Position{4, 7})
	cfg := DefaultConfig()
	cfg.BlockerCount = 0

	w := &walker{
		board: board,
		cfg:   cfg,
		r:     rand.New(rand.NewPCG(1, 2)),
		conf:  Configuration{{4, 7}},
	}

	rm, ok := w.propose(0, Right)
	if !ok {
		t.Fatal("no proposal for an open lane")
	}
	if rm.From != (Position{4, 0}) || rm.Distance != 7 {
		t.Errorf("farthest tie-break chose %v (distance %d), want {4 0} at 7", rm.From, rm.Distance)
	}
	if rm.StoppedBy != StoppedByEdge {
		t.Errorf("stop reason = %v, want edge", rm.StoppedBy)
	}
}

func TestWalkerRejectsUnstoppedProposals(t *testing.T) {
	t.Parallel()

	// nothing blocks a downward slide beyond (4,4), so no forward move
	// in that direction can rest there
	board := mustBoard(t, 8, emptyWalls(8), Position{4, 4})
	w := &walker{
		board: board,
		cfg:   DefaultConfig(),
		r:     rand.New(rand.NewPCG(1, 2)),
		conf:  Configuration{{4, 4}},
	}

	if _, ok := w.propose(0, Down); ok {
		t.Error("proposal accepted with no stopper beyond the cell")
	}
}

func TestWalkerReplayDivergencePanics(t *testing.T) {
	t.Parallel()

	board := mustBoard(t, 8, emptyWalls(8), Position{4, 7})
	w := &walker{
		board: board,
		cfg:   DefaultConfig(),
		r:     rand.New(rand.NewPCG(1, 2)),
		conf:  Configuration{{4, 7}},
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("divergent reverse move passed validation")
		}
		if _, ok := r.(AssertionError); !ok {
			t.Fatalf("panic value %v is not an assertion failure", r)
		}
	}()

	// claims a rightward slide from (4,0) rests after 3 cells; on an
	// empty row the resolver slides clean through to the east edge
	w.validate(&ReverseMove{
		PieceID:   0,
		From:      Position{4, 0},
		To:        Position{4, 3},
		Dir:       Right,
		StoppedBy: StoppedByPiece,
		Distance:  3,
	})
}

func TestWalkerSuppressesImmediateUndo(t *testing.T) {
	t.Parallel()

	walls := emptyWalls(8)
	setWall(walls, Position{4, 4}, Left)
	board := mustBoard(t, 8, walls, Position{4, 4})

	w := &walker{
		board: board,
		cfg:   DefaultConfig(),
		r:     rand.New(rand.NewPCG(1, 2)),
		conf:  Configuration{{4, 4}},
	}

	// a leftward slide into the wall is a perfectly good proposal...
	if _, ok := w.propose(0, Left); !ok {
		t.Fatal("wall-stopped proposal rejected")
	}

	// ...unless it undoes the step the walk just took
	w.last = &ReverseMove{PieceID: 0, Dir: Right}
	if _, ok := w.propose(0, Left); ok {
		t.Error("immediate undo of the previous step accepted")
	}
}
