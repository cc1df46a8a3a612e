package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/slideout-game/server/internal/repository"
	"github.com/slideout-game/server/internal/sliding"
)

/*
 * Websocket text protocol, one command per line:
 *
 *   g                 no-op, returns the current session frame
 *   m <piece> <dir>   slide a piece (dir is u/r/d/l or a full word)
 *   r                 reset to the initial configuration
 *
 * Every message is answered with one JSON session frame.
 */

func execCommand(game *sliding.GameState, command string) error {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return fmt.Errorf("empty command")
	}

	switch parts[0] {
	case "g":
		return nil
	case "r":
		game.Reset()
		return nil
	case "m":
		if len(parts) != 3 {
			return fmt.Errorf("move command takes a piece and a direction")
		}
		piece, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("piece must be an int")
		}
		dir, err := sliding.ParseDirection(parts[2])
		if err != nil {
			return err
		}
		_, err = game.ApplyMove(piece, dir)
		return err
	}
	return fmt.Errorf("unknown command %q", parts[0])
}

func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", "error", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", "error", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		for _, command := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			if err := execCommand(game, command); err != nil {
				// blocked moves and bad commands are part of normal
				// play over ws; report and keep the connection
				if writeErr := c.WriteJSON(wrapError(err)); writeErr != nil {
					return
				}
			}
		}

		if !g.persistWS(r, session, game) {
			return
		}
		if err := c.WriteJSON(sessionDTO(session, game)); err != nil {
			g.logger.Error("unable to write json", "error", err)
			break
		}
	}
}

// persistWS mirrors persist without an http.ResponseWriter to fail on.
func (g *GameHandler) persistWS(
	r *http.Request,
	session *repository.GameSession, game *sliding.GameState,
) bool {
	state, err := game.Bytes()
	if err != nil {
		g.logger.Error("unable to serialize game state", "error", err)
		return false
	}

	updated, err := g.repo.UpdateGameSession(
		r.Context(), session.GameSessionID, updateParams(session, game, state),
	)
	if err != nil {
		g.logger.Error("unable to update session in db", "error", err)
		return false
	}
	*session = *updated
	return true
}
