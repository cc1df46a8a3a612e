package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/slideout-game/server/internal/sliding"
)

// SolveRequestDTO describes an externally supplied puzzle position:
// board geometry plus a piece list with the target first.
type SolveRequestDTO struct {
	Board  BoardDTO      `json:"board"`
	Pieces []PositionDTO `json:"pieces"`
}

type SolveResponseDTO struct {
	Distance int           `json:"distance"`
	Path     []PathMoveDTO `json:"path"`
}

func (dto SolveRequestDTO) build() (*sliding.Board, sliding.Configuration, error) {
	walls := make([][]sliding.WallFlags, len(dto.Board.Walls))
	for row := range walls {
		walls[row] = make([]sliding.WallFlags, len(dto.Board.Walls[row]))
		for col, f := range dto.Board.Walls[row] {
			walls[row][col] = sliding.WallFlags(f)
		}
	}
	obstacles := make([]sliding.Position, len(dto.Board.Obstacles))
	for i, o := range dto.Board.Obstacles {
		obstacles[i] = sliding.Position{Row: o.Row, Col: o.Col}
	}

	board, err := sliding.NewBoard(
		dto.Board.Size,
		walls,
		sliding.Position{Row: dto.Board.Goal.Row, Col: dto.Board.Goal.Col},
		obstacles,
	)
	if err != nil {
		return nil, nil, err
	}

	conf := make(sliding.Configuration, len(dto.Pieces))
	for i, p := range dto.Pieces {
		conf[i] = sliding.Position{Row: p.Row, Col: p.Col}
	}
	return board, conf, nil
}

// Solve validates a user-authored position: it returns the certified
// minimum move count and one witness path, or 422 when the position
// cannot be solved (within the solver's node budget).
func (g *GameHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var dto SolveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	board, conf, err := dto.build()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	sol, err := sliding.Solve(board, conf)
	switch {
	case errors.Is(err, sliding.ErrUnsolvable),
		errors.Is(err, sliding.ErrBudgetExceeded):
		w.WriteHeader(http.StatusUnprocessableEntity)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	case err != nil:
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	sendJSONOrLog(w, g.logger, SolveResponseDTO{
		Distance: sol.Distance,
		Path:     NewPathDTO(sol.Path),
	})
}
