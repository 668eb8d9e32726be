package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameNotFound = errors.New("game not found")
	ErrNotBotTurn   = errors.New("it's not the bot's turn")
	ErrInvalidInput = errors.New("invalid input")
)
