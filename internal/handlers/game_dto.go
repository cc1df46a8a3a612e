package handlers

import (
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/slideout-game/server/internal/repository"
	"github.com/slideout-game/server/internal/sliding"
)

// CreateGameDTO selects the puzzle for a new session: today's daily
// unless daily=false asks for a custom generation. The tunables apply
// to the custom path only and are ignored on the daily one.
type CreateGameDTO struct {
	Daily    bool    `schema:"daily"`
	Size     int     `schema:"size"`
	Blockers int     `schema:"blockers"`
	MinMoves int     `schema:"min_moves"`
	MaxMoves int     `schema:"max_moves"`
	Seed     *uint64 `schema:"seed"`
}

func ParseCreateGameDTO(src map[string][]string) (CreateGameDTO, error) {
	dto := CreateGameDTO{Daily: true}
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// Config maps the DTO onto the engine defaults, leaving unset fields
// at their default values.
func (dto CreateGameDTO) Config() sliding.GenerateConfig {
	cfg := sliding.DefaultConfig()
	if dto.Size != 0 {
		cfg.Size = dto.Size
	}
	if dto.Blockers != 0 {
		cfg.BlockerCount = dto.Blockers
	}
	if dto.MinMoves != 0 {
		cfg.MinOptimalMoves = dto.MinMoves
	}
	if dto.MaxMoves != 0 {
		cfg.MaxOptimalMoves = dto.MaxMoves
	}
	return cfg
}

type MoveDTO struct {
	Piece     int    `schema:"piece,required"`
	Direction string `schema:"direction,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type PieceDTO struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type BoardDTO struct {
	Size      int           `json:"size"`
	Walls     [][]uint8     `json:"walls"`
	Goal      PositionDTO   `json:"goal"`
	Obstacles []PositionDTO `json:"obstacles"`
}

type PathMoveDTO struct {
	Piece     int         `json:"piece"`
	Direction string      `json:"direction"`
	From      PositionDTO `json:"from"`
	To        PositionDTO `json:"to"`
}

type PuzzleDTO struct {
	Date         string     `json:"date,omitempty"`
	Board        BoardDTO   `json:"board"`
	Pieces       []PieceDTO `json:"pieces"`
	OptimalMoves int        `json:"optimal_moves"`
}

type GameSessionDTO struct {
	GameSessionID string    `json:"game_session_id"`
	Puzzle        PuzzleDTO `json:"puzzle"`
	Pieces        []PieceDTO `json:"pieces"`
	MoveCount     int        `json:"move_count"`
	Solved        bool       `json:"solved"`
	StartedAt     int64      `json:"started_at"`
	EndedAt       *int64     `json:"ended_at,omitempty"`
}

func NewBoardDTO(b *sliding.Board) BoardDTO {
	walls := make([][]uint8, b.Size)
	for row := range walls {
		walls[row] = make([]uint8, b.Size)
		for col := range walls[row] {
			walls[row][col] = uint8(b.Walls[row][col])
		}
	}
	obstacles := make([]PositionDTO, len(b.Obstacles))
	for i, o := range b.Obstacles {
		obstacles[i] = PositionDTO{o.Row, o.Col}
	}
	return BoardDTO{
		Size:      b.Size,
		Walls:     walls,
		Goal:      PositionDTO{b.Goal.Row, b.Goal.Col},
		Obstacles: obstacles,
	}
}

func newPieceDTOs(pieces []sliding.Piece) []PieceDTO {
	dtos := make([]PieceDTO, len(pieces))
	for i, p := range pieces {
		dtos[i] = PieceDTO{
			ID:   p.ID,
			Type: p.Type.String(),
			Row:  p.Pos.Row,
			Col:  p.Pos.Col,
		}
	}
	return dtos
}

func livePieceDTOs(conf sliding.Configuration) []PieceDTO {
	dtos := make([]PieceDTO, len(conf))
	for id, pos := range conf {
		t := sliding.BlockerPiece
		if id == 0 {
			t = sliding.TargetPiece
		}
		dtos[id] = PieceDTO{ID: id, Type: t.String(), Row: pos.Row, Col: pos.Col}
	}
	return dtos
}

func NewPuzzleDTO(p *sliding.Puzzle) PuzzleDTO {
	return PuzzleDTO{
		Date:         p.Date,
		Board:        NewBoardDTO(p.Board),
		Pieces:       newPieceDTOs(p.PieceList()),
		OptimalMoves: p.OptimalMoves,
	}
}

func NewPathDTO(path []sliding.Move) []PathMoveDTO {
	dtos := make([]PathMoveDTO, len(path))
	for i, m := range path {
		dtos[i] = PathMoveDTO{
			Piece:     m.PieceID,
			Direction: m.Dir.String(),
			From:      PositionDTO{m.From.Row, m.From.Col},
			To:        PositionDTO{m.To.Row, m.To.Col},
		}
	}
	return dtos
}

func NewGameSessionDTO(
	gameSessionID int64,
	startedAt time.Time,
	endedAt *time.Time,
	g *sliding.GameState,
) *GameSessionDTO {
	var endedAtMs *int64
	if endedAt != nil {
		e := endedAt.UnixMilli()
		endedAtMs = &e
	}
	return &GameSessionDTO{
		GameSessionID: strconv.FormatInt(gameSessionID, 10),
		Puzzle:        NewPuzzleDTO(g.Puzzle),
		Pieces:        livePieceDTOs(g.Pieces),
		MoveCount:     g.MoveCount,
		Solved:        g.Solved,
		StartedAt:     startedAt.UnixMilli(),
		EndedAt:       endedAtMs,
	}
}

func sessionDTO(session *repository.GameSession, g *sliding.GameState) *GameSessionDTO {
	return NewGameSessionDTO(session.GameSessionID, session.StartedAt, session.EndedAt, g)
}
