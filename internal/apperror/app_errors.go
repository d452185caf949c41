package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrNoActiveGames     = errors.New("no active games")
	ErrGameAlreadyExists = errors.New("game already exists")

	ErrInvalidCell         = errors.New("invalid cell index")
	ErrCellOwnedBySelf     = errors.New("cell is already owned by you")
	ErrCellInSuperposition = errors.New("cell is already in superposition")

	ErrInsufficientEntropy  = errors.New("not enough random bits produced")
	ErrNoMeasurements       = errors.New("circuit has no measured qubits")
	ErrNoBackendsRegistered = errors.New("no backends registered")
)
