package tictactoe

import (
	"context"
	"fmt"

	"github.com/dgravitate/quantum-examples/internal/apperror"
	"github.com/dgravitate/quantum-examples/internal/entity"
)

// Collapse records the measured outcome of one superposed cell.
type Collapse struct {
	Cell  int    `json:"cell"`
	Owner string `json:"owner"`
}

type collapser interface {
	Collapse(ctx context.Context, game *entity.Game) ([]Collapse, error)
}

// Controller applies quantum tic-tac-toe move rules to a game:
//   - a move on an empty cell claims it deterministically;
//   - a move on an opponent's deterministic cell pushes it into
//     superposition;
//   - moves on your own or already superposed cells are rejected.
//
// When O finishes a move the round ends and every superposed cell is
// collapsed by a qubit measurement before the board is scored.
type Controller struct {
	collapser collapser
}

func NewController(c collapser) *Controller {
	return &Controller{collapser: c}
}

// MakeTurn validates and applies one move, returning any collapses the
// move triggered.
func (that *Controller) MakeTurn(ctx context.Context, game *entity.Game, mark string, cell int) ([]Collapse, error) {
	if game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if err := validateMove(game, mark, cell); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	applyMove(game, mark, cell)

	var collapses []Collapse
	if mark == entity.PlayerO {
		var err error
		collapses, err = that.collapser.Collapse(ctx, game)
		if err != nil {
			return nil, fmt.Errorf("failed to collapse superpositions: %w", err)
		}
	}

	updateGameStatus(game, mark)

	return collapses, nil
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, mark string, cell int) error {
	if cell < 0 || cell >= len(game.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	target := game.Board[cell]
	if target.IsDeterministic() && target.Owner == mark {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOwnedBySelf, cell)
	}
	if target.IsSuperposed() {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellInSuperposition, cell)
	}

	return nil
}

func applyMove(game *entity.Game, mark string, cell int) {
	if game.Board[cell].IsEmpty() {
		game.Board[cell] = entity.OwnedCell(mark)
	} else {
		// opponent-owned deterministic cell goes into superposition
		game.Board[cell] = entity.SuperposedCell()
	}

	game.Moves = append(game.Moves, entity.Move{Player: mark, Cell: cell})
}

// updateGameStatus - scores the board after a move; the turn passes only
// while the game continues.
func updateGameStatus(game *entity.Game, mark string) {
	game.UpdateGameState()
	if !game.IsFinished() {
		game.Turn = entity.ToggleMark(mark)
	}
}
