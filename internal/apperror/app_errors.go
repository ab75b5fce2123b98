package apperror

import "errors"

var (
	ErrOutOfRange          = errors.New("coordinate is out of range")
	ErrCellOccupied        = errors.New("cell is already occupied")
	ErrInvalidMark         = errors.New("invalid mark")
	ErrInvalidCommandState = errors.New("invalid command state")
	ErrEmptyHistory        = errors.New("nothing to undo or redo")
	ErrGameFinished        = errors.New("game is already finished")
	ErrUnknownToken        = errors.New("unknown input token")
)
