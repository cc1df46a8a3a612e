package archive

import (
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/slideout-game/server/internal/sliding"
)

func setupTestArchive() (*Archive, func(), error) {
	f, err := os.CreateTemp("", "puzzle-archive-")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp file: %v", err)
	}

	a, err := Open(f.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %v", err)
	}

	teardown := func() {
		a.Close()
		f.Close()
		os.Remove(f.Name())
	}

	return a, teardown, nil
}

func testPuzzle(t *testing.T, date string, optimalMoves int) *sliding.Puzzle {
	t.Helper()

	walls := make([][]sliding.WallFlags, 4)
	for row := range walls {
		walls[row] = make([]sliding.WallFlags, 4)
	}
	board, err := sliding.NewBoard(4, walls, sliding.Position{Row: 1, Col: 1}, nil)
	if err != nil {
		t.Fatalf("failed to build board: %v", err)
	}
	return &sliding.Puzzle{
		Board:        board,
		Pieces:       sliding.Configuration{{Row: 3, Col: 3}, {Row: 0, Col: 0}},
		OptimalMoves: optimalMoves,
		Seed:         sliding.DailySeed(date),
		Date:         date,
	}
}

func TestArchiveGetMissing(t *testing.T) {
	a, teardown, err := setupTestArchive()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	if _, err := a.Get("2026-01-01"); err != ErrNotFound {
		t.Fatalf("expected not found error, received %v", err)
	}
}

func TestArchivePutAndGet(t *testing.T) {
	a, teardown, err := setupTestArchive()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	p := testPuzzle(t, "2026-01-01", 7)
	if err := a.Put(p); err != nil {
		t.Fatalf("failed to put puzzle: %v", err)
	}

	got, err := a.Get(p.Date)
	if err != nil {
		t.Fatalf("failed to get puzzle: %v", err)
	}
	if !reflect.DeepEqual(p, got) {
		t.Fatalf("expected: %+v, actual: %+v", p, got)
	}
}

func TestArchivePutWithoutDate(t *testing.T) {
	a, teardown, err := setupTestArchive()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	p := testPuzzle(t, "2026-01-01", 7)
	p.Date = ""
	if err := a.Put(p); err == nil {
		t.Fatal("expected an error for a dateless puzzle")
	}
}

func TestArchivePutReplaces(t *testing.T) {
	a, teardown, err := setupTestArchive()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	date := "2026-01-01"
	if err := a.Put(testPuzzle(t, date, 7)); err != nil {
		t.Fatalf("failed to put puzzle: %v", err)
	}
	if err := a.Put(testPuzzle(t, date, 9)); err != nil {
		t.Fatalf("failed to put replacement: %v", err)
	}

	got, err := a.Get(date)
	if err != nil {
		t.Fatalf("failed to get puzzle: %v", err)
	}
	if got.OptimalMoves != 9 {
		t.Fatalf("have optimal moves %d, want 9", got.OptimalMoves)
	}

	if count, err := a.Count(); err != nil {
		t.Fatal(err)
	} else if count != 1 {
		t.Fatalf("have %d rows, want 1", count)
	}
}

func TestArchiveDates(t *testing.T) {
	a, teardown, err := setupTestArchive()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	want := []string{"2026-01-01", "2026-01-02", "2026-01-03"}
	for _, date := range []string{"2026-01-02", "2026-01-01", "2026-01-03"} {
		if err := a.Put(testPuzzle(t, date, 8)); err != nil {
			t.Fatalf("failed to put puzzle: %v", err)
		}
	}

	dates, err := a.Dates()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("have %v, want %v", dates, want)
	}
}
