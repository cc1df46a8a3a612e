package handlers

import (
	"net/url"
	"testing"

	"github.com/slideout-game/server/internal/sliding"
)

func TestParseCreateGameDTODefaults(t *testing.T) {
	dto, err := ParseCreateGameDTO(url.Values{})
	if err != nil {
		t.Fatal(err)
	}
	if !dto.Daily {
		t.Error("empty query must default to the daily puzzle")
	}
	if dto.Config() != sliding.DefaultConfig() {
		t.Error("empty query must map onto the default config")
	}
}

func TestParseCreateGameDTOCustom(t *testing.T) {
	dto, err := ParseCreateGameDTO(url.Values{
		"daily":     {"false"},
		"size":      {"10"},
		"blockers":  {"4"},
		"min_moves": {"9"},
		"max_moves": {"12"},
		"seed":      {"1337"},
		"unknown":   {"ignored"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if dto.Daily {
		t.Error("daily=false must request a custom puzzle")
	}
	if dto.Seed == nil || *dto.Seed != 1337 {
		t.Errorf("have seed %v, want 1337", dto.Seed)
	}

	cfg := dto.Config()
	if cfg.Size != 10 || cfg.BlockerCount != 4 ||
		cfg.MinOptimalMoves != 9 || cfg.MaxOptimalMoves != 12 {
		t.Errorf("config %+v does not reflect the query", cfg)
	}
}

func TestParseCreateGameDTOTunablesAloneStayDaily(t *testing.T) {
	dto, err := ParseCreateGameDTO(url.Values{"size": {"10"}, "seed": {"7"}})
	if err != nil {
		t.Fatal(err)
	}
	if !dto.Daily {
		t.Error("tunables without daily=false must keep the daily path")
	}
}

func TestParseMoveDTORequired(t *testing.T) {
	if _, err := ParseMoveDTO(url.Values{"piece": {"0"}}); err == nil {
		t.Error("missing direction must be rejected")
	}
	if _, err := ParseMoveDTO(url.Values{"direction": {"up"}}); err == nil {
		t.Error("missing piece must be rejected")
	}

	dto, err := ParseMoveDTO(url.Values{"piece": {"2"}, "direction": {"l"}})
	if err != nil {
		t.Fatal(err)
	}
	if dto.Piece != 2 || dto.Direction != "l" {
		t.Errorf("have %+v, want piece 2 direction l", dto)
	}
}

func TestExecCommand(t *testing.T) {
	testCases := []struct {
		command string
		wantErr bool
	}{
		{"g", false},
		{"r", false},
		{"m 0 up", false},
		{"m 0", true},
		{"m zero up", true},
		{"m 0 sideways", true},
		{"", true},
		{"q", true},
	}

	walls := make([][]sliding.WallFlags, 4)
	for row := range walls {
		walls[row] = make([]sliding.WallFlags, 4)
	}
	board, err := sliding.NewBoard(4, walls, sliding.Position{Row: 2, Col: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, test := range testCases {
		game := sliding.NewGameState(&sliding.Puzzle{
			Board:  board,
			Pieces: sliding.Configuration{{Row: 3, Col: 0}},
		})
		err := execCommand(game, test.command)
		if test.wantErr && err == nil {
			t.Errorf("command %q: expected an error", test.command)
		}
		if !test.wantErr && err != nil {
			t.Errorf("command %q: unexpected error %v", test.command, err)
		}
	}
}
