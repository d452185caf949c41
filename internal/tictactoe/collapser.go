package tictactoe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgravitate/quantum-examples/internal/entity"
	"github.com/dgravitate/quantum-examples/internal/quantum"
)

type backend interface {
	Run(ctx context.Context, circuit *quantum.Circuit, shots int) (*quantum.Result, error)
}

// QuantumCollapser resolves superposed cells with independent qubit
// measurements: one Hadamard circuit per cell, outcome 0 goes to X,
// outcome 1 goes to O.
type QuantumCollapser struct {
	logger  *slog.Logger
	backend backend
}

func NewQuantumCollapser(logger *slog.Logger, b backend) *QuantumCollapser {
	return &QuantumCollapser{
		logger:  logger.With("component", "collapser"),
		backend: b,
	}
}

func (that *QuantumCollapser) Collapse(ctx context.Context, game *entity.Game) ([]Collapse, error) {
	superposed := game.SuperposedCells()
	if len(superposed) == 0 {
		return nil, nil
	}

	collapses := make([]Collapse, 0, len(superposed))

	for _, cell := range superposed {
		circuit := quantum.NewCircuit(1).H(0).Measure(0)

		result, err := that.backend.Run(ctx, circuit, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to measure cell %d: %w", cell, err)
		}

		owner := entity.PlayerX
		if result.Memory[0] == "1" {
			owner = entity.PlayerO
		}

		game.Board[cell] = entity.OwnedCell(owner)
		collapses = append(collapses, Collapse{Cell: cell, Owner: owner})

		that.logger.Debug("cell collapsed", "game", game.ID, "cell", cell, "owner", owner)
	}

	return collapses, nil
}
