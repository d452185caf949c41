package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgravitate/quantum-examples/internal/walk"
)

var (
	walkSteps     int
	walkPositions int
	walkStart     int
)

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Run a discrete-time quantum walk on a line",
	Long: "Simulates a Hadamard-coin quantum walk on a finite lattice with reflecting " +
		"boundaries and prints the position probability distribution.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := walk.Config{
			Steps:     walkSteps,
			Positions: walkPositions,
			StartPos:  walkStart,
		}

		dist, err := walk.Simulate(cfg)
		if err != nil {
			return fmt.Errorf("failed to simulate walk: %w", err)
		}

		fmt.Printf("steps: %d, positions: %d\n", walkSteps, walkPositions)

		for pos, prob := range dist {
			bar := strings.Repeat("█", int(prob*50))
			fmt.Printf("%3d  %.4f  %s\n", pos, prob, bar)
		}

		return nil
	},
}

func init() {
	defaults := walk.DefaultConfig()

	walkCmd.Flags().IntVar(&walkSteps, "steps", defaults.Steps, "number of walk steps")
	walkCmd.Flags().IntVar(&walkPositions, "positions", defaults.Positions, "number of lattice sites")
	walkCmd.Flags().IntVar(&walkStart, "start", walk.CenterStart, "starting site, -1 means the middle of the lattice")

	rootCmd.AddCommand(walkCmd)
}
