package entity

import (
	"fmt"
	"math/rand"

	"github.com/dgravitate/quantum-examples/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"
)

const (
	PublicType  = "public"
	PrivateType = "private"
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move records one accepted turn.
type Move struct {
	Player string `json:"player"`
	Cell   int    `json:"cell"`
}

type Game struct {
	ID      string    `json:"id"`
	Board   [9]Cell   `json:"board"`
	Winner  string    `json:"winner"`
	Status  string    `json:"status"`
	Turn    string    `json:"player_turn"`
	Players []*Player `json:"players,omitempty"`
	Type    string    `json:"type,omitempty"`
	Moves   []Move    `json:"moves,omitempty"`
}

func NewGame(id, gameType string) *Game {
	game := &Game{
		ID:     id,
		Turn:   PlayerX,
		Status: StatusWaiting,
		Type:   gameType,
	}
	for i := range game.Board {
		game.Board[i] = EmptyCell()
	}
	return game
}

// DetermineGameResult returns the winning mark, PlayerTie when every
// cell is deterministic with no winner, or "" while the game continues.
// Only deterministically owned cells count toward a line; a superposed
// cell blocks it.
func (that *Game) DetermineGameResult() string {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if !a.IsDeterministic() || !b.IsDeterministic() || !c.IsDeterministic() {
			continue
		}
		if a.Owner == b.Owner && b.Owner == c.Owner {
			return a.Owner
		}
	}

	// the game continues until every cell is deterministically owned
	for _, cell := range that.Board {
		if !cell.IsDeterministic() {
			return ""
		}
	}

	return PlayerTie
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = ""
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	// game continues
	default:
		that.Status = StatusOngoing
	}
}

// SuperposedCells returns the indices of every cell awaiting collapse.
func (that *Game) SuperposedCells() []int {
	var cells []int
	for i, cell := range that.Board {
		if cell.IsSuperposed() {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("unknown game status: %s", that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // mark assignment is not security sensitive
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}

// ToggleMark returns the opposing mark.
func ToggleMark(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
