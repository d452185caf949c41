package entity

import (
	"testing"

	"github.com/dgravitate/quantum-examples/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// Given: a fresh game
	game := NewGame("123", PrivateType)

	// Then: every cell is empty, X opens, the game waits for players
	assert.Equal(t, "123", game.ID)
	assert.Equal(t, PlayerX, game.Turn)
	assert.Equal(t, StatusWaiting, game.Status)
	for _, cell := range game.Board {
		assert.True(t, cell.IsEmpty())
	}
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown game status")
	})
}

func TestGame_DetermineGameResult(t *testing.T) {
	t.Run("Returns PlayerX when X owns a full row", func(t *testing.T) {
		// Given: X deterministically owns the top row
		game := NewGame("123", PrivateType)
		game.Board[0] = OwnedCell(PlayerX)
		game.Board[1] = OwnedCell(PlayerX)
		game.Board[2] = OwnedCell(PlayerX)

		// Then: X wins
		assert.Equal(t, PlayerX, game.DetermineGameResult())
	})

	t.Run("Superposed cell blocks a line", func(t *testing.T) {
		// Given: two X cells and one superposed cell in a row
		game := NewGame("123", PrivateType)
		game.Board[0] = OwnedCell(PlayerX)
		game.Board[1] = OwnedCell(PlayerX)
		game.Board[2] = SuperposedCell()

		// Then: no result yet
		assert.Equal(t, "", game.DetermineGameResult())
	})

	t.Run("Returns tie when the board is fully deterministic with no winner", func(t *testing.T) {
		// Given: a drawn board
		game := NewGame("123", PrivateType)
		marks := []string{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}
		for i, m := range marks {
			game.Board[i] = OwnedCell(m)
		}

		assert.Equal(t, PlayerTie, game.DetermineGameResult())
	})

	t.Run("Returns empty string while cells remain undecided", func(t *testing.T) {
		game := NewGame("123", PrivateType)
		game.Board[0] = OwnedCell(PlayerX)

		assert.Equal(t, "", game.DetermineGameResult())
	})
}

func TestGame_UpdateGameState(t *testing.T) {
	t.Run("Winner finishes the game and clears the turn", func(t *testing.T) {
		game := NewGame("123", PrivateType)
		game.Status = StatusOngoing
		game.Board[0] = OwnedCell(PlayerO)
		game.Board[4] = OwnedCell(PlayerO)
		game.Board[8] = OwnedCell(PlayerO)

		game.UpdateGameState()

		assert.Equal(t, PlayerO, game.Winner)
		assert.Equal(t, StatusFinished, game.Status)
		assert.Empty(t, game.Turn)
	})

	t.Run("Undecided board keeps the game ongoing", func(t *testing.T) {
		game := NewGame("123", PrivateType)
		game.Board[0] = OwnedCell(PlayerX)

		game.UpdateGameState()

		assert.Equal(t, StatusOngoing, game.Status)
		assert.Empty(t, game.Winner)
	})
}

func TestGame_SuperposedCells(t *testing.T) {
	game := NewGame("123", PrivateType)
	game.Board[2] = SuperposedCell()
	game.Board[7] = SuperposedCell()

	assert.Equal(t, []int{2, 7}, game.SuperposedCells())
}

func TestGame_GetRandomMarks(t *testing.T) {
	game := NewGame("123", PublicType)

	first, second := game.GetRandomMarks()

	assert.NotEqual(t, first, second)
	assert.Contains(t, []string{PlayerX, PlayerO}, first)
	assert.Contains(t, []string{PlayerX, PlayerO}, second)
}

func TestToggleMark(t *testing.T) {
	assert.Equal(t, PlayerO, ToggleMark(PlayerX))
	assert.Equal(t, PlayerX, ToggleMark(PlayerO))
}
