package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgravitate/quantum-examples/internal/apperror"
	"github.com/dgravitate/quantum-examples/internal/entity"
	"github.com/dgravitate/quantum-examples/internal/tictactoe"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play quantum tic-tac-toe in the terminal",
	Long: "Two players share the keyboard. A move on an empty cell claims it outright. " +
		"A move on an opponent's cell puts it into superposition. After every O move " +
		"each superposed cell is measured on the simulator and collapses to X or O.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		logger := newLogger()
		collapser := tictactoe.NewQuantumCollapser(logger, newBackend())
		controller := tictactoe.NewController(collapser)

		game := entity.NewGame("local", entity.PrivateType)
		game.Status = entity.StatusOngoing

		return runPlayLoop(ctx, controller, game, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

const boardLegend = `  X/O = Deterministically owned
  ?   = In quantum superposition
  0-8 = Available`

func init() {
	rootCmd.AddCommand(playCmd)
}

// runPlayLoop drives one local game. Input arrives over a channel so the
// prompt reacts to cancellation without waiting for the next line.
func runPlayLoop(ctx context.Context, controller *tictactoe.Controller, game *entity.Game, in io.Reader, out io.Writer) error {
	lines := readLines(in)

	fmt.Fprintln(out, "Quantum tic-tac-toe. Enter a cell number, or q to quit.")
	fmt.Fprintln(out, boardLegend)

	for !game.IsFinished() {
		fmt.Fprintln(out, renderBoard(game))
		fmt.Fprintf(out, "%s move [0-8, q to quit]: ", game.Turn)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\ninterrupted")
			return nil
		case input, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			line = input
		}

		cell, quit, err := parseCell(line)
		if quit {
			fmt.Fprintln(out, "bye")
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}

		collapses, err := controller.MakeTurn(ctx, game, game.Turn, cell)
		if err != nil {
			if isRuleViolation(err) {
				fmt.Fprintf(out, "move rejected: %v\n", err)
				continue
			}
			return fmt.Errorf("failed to make turn: %w", err)
		}

		for _, c := range collapses {
			fmt.Fprintf(out, "cell %d collapsed to %s\n", c.Cell, c.Owner)
		}
	}

	fmt.Fprintln(out, renderBoard(game))

	if game.Winner == entity.PlayerTie {
		fmt.Fprintln(out, "It's a tie!")
	} else {
		fmt.Fprintf(out, "%s wins!\n", game.Winner)
	}

	return nil
}

// readLines pumps scanner lines into a channel, closed on EOF.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// parseCell interprets one line of player input.
func parseCell(input string) (cell int, quit bool, err error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "q") {
		return 0, true, nil
	}

	cell, err = strconv.Atoi(input)
	if err != nil {
		return 0, false, fmt.Errorf("enter a number between 0 and 8, or q")
	}

	return cell, false, nil
}

func isRuleViolation(err error) bool {
	return errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrCellOwnedBySelf) ||
		errors.Is(err, apperror.ErrCellInSuperposition)
}

// renderBoard draws the 3x3 grid. Empty cells show their index so the
// prompt and the board use the same numbering.
func renderBoard(game *entity.Game) string {
	var b strings.Builder

	for row := 0; row < 3; row++ {
		b.WriteString(" ")
		for col := 0; col < 3; col++ {
			idx := row*3 + col
			b.WriteString(cellSymbol(game.Board[idx], idx))
			if col < 2 {
				b.WriteString(" | ")
			}
		}
		if row < 2 {
			b.WriteString("\n---+---+---")
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func cellSymbol(cell entity.Cell, idx int) string {
	switch {
	case cell.IsDeterministic():
		return cell.Owner
	case cell.IsSuperposed():
		return "?"
	default:
		return strconv.Itoa(idx)
	}
}
