package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendErrorResponse(c, msg.Action, err.Error())
		return nil
	}

	game, err := that.uGame.CreateGame(ctx, payloadReq.HumanMark, payloadReq.Difficulty)
	if err != nil {
		return that.respondError(c, msg.Action, "failed to create a new game", err)
	}

	log.Info("game started", "gameID", game.ID)

	return c.sendMessage(msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendErrorResponse(c, msg.Action, err.Error())
		return nil
	}

	if payloadReq.GameID == "" || payloadReq.Cell == nil {
		that.sendErrorResponse(c, msg.Action, "game_id and cell are required")
		return nil
	}

	game, err := that.uGame.MakeTurn(ctx, payloadReq.GameID, *payloadReq.Cell)
	if err != nil {
		return that.respondError(c, msg.Action, fmt.Sprintf("failed to turn in game %s", payloadReq.GameID), err)
	}

	return c.sendMessage(msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendErrorResponse(c, msg.Action, err.Error())
		return nil
	}

	game, err := that.uGame.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.respondError(c, msg.Action, "failed to get the game", err)
	}

	return c.sendMessage(msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGameRound(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendErrorResponse(c, msg.Action, err.Error())
		return nil
	}

	game, err := that.uGame.NewRound(ctx, payloadReq.GameID)
	if err != nil {
		return that.respondError(c, msg.Action, "failed to start a new round", err)
	}

	return c.sendMessage(msg.Action, ResponsePayload{Game: game})
}

// respondError - tells the client what went wrong. Expected game errors are shown as is,
// anything else is reported to the caller for logging.
func (that *Server) respondError(c *client, action, fallback string, err error) error {
	if isClientError(err) {
		that.sendErrorResponse(c, action, err.Error())
		return nil
	}

	that.sendErrorResponse(c, action, fallback)

	return err
}

func decodePayload(msg *Message) (*RequestPayload, error) {
	var payloadReq RequestPayload
	if len(msg.Payload) == 0 {
		return &payloadReq, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	payloadReq.HumanMark = tictactoe.NormalizeMark(payloadReq.HumanMark)

	if payloadReq.Difficulty != "" {
		difficulty, err := tictactoe.ParseDifficulty(string(payloadReq.Difficulty))
		if err != nil {
			return nil, err
		}
		payloadReq.Difficulty = difficulty
	}

	return &payloadReq, nil
}

func isClientError(err error) bool {
	for _, target := range []error{
		apperror.ErrGameNotFound,
		apperror.ErrGameFinished,
		apperror.ErrCellOccupied,
		apperror.ErrNotYourTurn,
		apperror.ErrInvalidInput,
		entity.ErrInvalidCell,
		entity.ErrInvalidGame,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
