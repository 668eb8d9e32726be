package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

const (
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameState = "game:state"
	actionGameRound = "game:round"
	actionUnknown   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID     string               `json:"game_id,omitempty"`
	HumanMark  string               `json:"human_mark,omitempty"`
	Difficulty tictactoe.Difficulty `json:"difficulty,omitempty"`
	Cell       *int                 `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}
