package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slideout-game/server/internal/config"
	"github.com/slideout-game/server/internal/middleware"
	"github.com/slideout-game/server/internal/repository"
	"github.com/slideout-game/server/internal/sliding"
)

// generateWorkers bounds the seed race for custom (non-daily) games.
const generateWorkers = 4

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// dailyPuzzle returns the certified puzzle for a date, generating and
// storing it on first request. Generation is date-seeded, so races
// between instances converge on the same puzzle.
func (g *GameHandler) dailyPuzzle(r *http.Request, date string) (*sliding.Puzzle, error) {
	row, err := g.repo.FetchDailyPuzzle(r.Context(), date)
	if err == nil {
		return sliding.DecodePuzzle(row.State)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	seed := sliding.DailySeed(date)
	puzzle, err := sliding.Generate(seed, sliding.DefaultConfig())
	if err != nil {
		return nil, err
	}
	puzzle.Date = date

	state, err := puzzle.Bytes()
	if err != nil {
		return nil, err
	}
	row, err = g.repo.CreateDailyPuzzle(r.Context(), repository.CreateDailyPuzzleParams{
		PuzzleDate:   date,
		Seed:         int64(seed),
		OptimalMoves: puzzle.OptimalMoves,
		State:        state,
	})
	if err != nil {
		return nil, err
	}
	// the stored row wins if somebody else generated concurrently
	return sliding.DecodePuzzle(row.State)
}

// Daily serves today's puzzle without opening a session.
func (g *GameHandler) Daily(w http.ResponseWriter, r *http.Request) {
	puzzle, err := g.dailyPuzzle(r, today())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to produce daily puzzle", "error", err)
		return
	}
	sendJSONOrLog(w, g.logger, NewPuzzleDTO(puzzle))
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	var (
		puzzle     *sliding.Puzzle
		puzzleDate *string
	)
	if dto.Daily {
		date := today()
		puzzle, err = g.dailyPuzzle(r, date)
		puzzleDate = &date
	} else {
		seed := g.rnd.Uint64()
		if dto.Seed != nil {
			seed = *dto.Seed
		}
		puzzle, err = sliding.GenerateParallel(r.Context(), seed, dto.Config(), generateWorkers)
	}
	if errors.Is(err, sliding.ErrBudgetExceeded) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	if err != nil {
		status := http.StatusInternalServerError
		if !dto.Daily {
			// custom tunables are client input
			status = http.StatusBadRequest
		}
		w.WriteHeader(status)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	game := sliding.NewGameState(puzzle)
	state, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to serialize game state", "error", err)
		return
	}

	var playerID *int64
	if claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims); ok {
		playerID = &claims.PlayerId
	}

	session, err := g.repo.CreateGameSession(r.Context(), repository.CreateGameSessionParams{
		PlayerID:     playerID,
		PuzzleDate:   puzzleDate,
		OptimalMoves: puzzle.OptimalMoves,
		State:        state,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, sessionDTO(session, game))
}

// fetchSession loads a session row and its decoded game state, writing
// the response status itself on failure.
func (g *GameHandler) fetchSession(w http.ResponseWriter, r *http.Request) (*repository.GameSession, *sliding.GameState, bool) {
	sessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("could not fetch session from db", "error", err)
		return nil, nil, false
	}

	game, err := sliding.DecodeGameState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("could not decode session state", "error", err)
		return nil, nil, false
	}

	return session, game, true
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, sessionDTO(session, game))
}

// updateParams assembles the partial update for a played-on session,
// stamping ended_at the first time it becomes solved.
func updateParams(
	session *repository.GameSession, game *sliding.GameState, state []byte,
) repository.UpdateGameSessionParams {
	params := repository.UpdateGameSessionParams{
		MoveCount: &game.MoveCount,
		Solved:    &game.Solved,
		State:     &state,
	}
	if game.Solved && session.EndedAt == nil {
		now := time.Now().UTC()
		params.EndedAt = &now
		session.EndedAt = &now
	}
	return params
}

func (g *GameHandler) persist(
	w http.ResponseWriter, r *http.Request,
	session *repository.GameSession, game *sliding.GameState,
) bool {
	state, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to serialize game state", "error", err)
		return false
	}

	updated, err := g.repo.UpdateGameSession(
		r.Context(), session.GameSessionID, updateParams(session, game, state),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return false
	}
	*session = *updated
	return true
}

func (g *GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	dir, err := sliding.ParseDirection(dto.Direction)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	_, err = game.ApplyMove(dto.Piece, dir)
	switch {
	case errors.Is(err, sliding.ErrNoSuchPiece):
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	case errors.Is(err, sliding.ErrBlockedMove),
		errors.Is(err, sliding.ErrAlreadySolved):
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to apply move", "error", err)
		return
	}

	if !g.persist(w, r, session, game) {
		return
	}
	sendJSONOrLog(w, g.logger, sessionDTO(session, game))
}

func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	game.Reset()

	if !g.persist(w, r, session, game) {
		return
	}
	sendJSONOrLog(w, g.logger, sessionDTO(session, game))
}

// Solution reveals the certified optimal path for a session's puzzle.
func (g *GameHandler) Solution(w http.ResponseWriter, r *http.Request) {
	_, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	sendJSONOrLog(w, g.logger, map[string]any{
		"optimal_moves": game.Puzzle.OptimalMoves,
		"path":          NewPathDTO(game.Puzzle.Path),
	})
}
