package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dgravitate/quantum-examples/internal/quantum"
)

var helloShots int

var helloCmd = &cobra.Command{
	Use:   "hello",
	Short: "Put one qubit in superposition and sample it",
	Long: "Builds the smallest interesting circuit, a single Hadamard gate, picks the " +
		"least busy backend from a simulated fleet and prints the measurement counts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := quantum.NewRegistry(
			newBackend(),
			quantum.NewSimulator(quantum.WithName("fake_brisbane"), quantum.WithQueueDepth(12)),
			quantum.NewSimulator(quantum.WithName("fake_kyiv"), quantum.WithQueueDepth(4)),
		)

		backend, err := registry.LeastBusy()
		if err != nil {
			return fmt.Errorf("failed to pick a backend: %w", err)
		}

		circuit := quantum.NewCircuit(1).H(0).MeasureAll()

		result, err := backend.Run(cmd.Context(), circuit, helloShots)
		if err != nil {
			return fmt.Errorf("failed to run circuit: %w", err)
		}

		fmt.Printf("backend: %s\n", backend.Name())
		fmt.Printf("shots:   %d\n", result.Shots)

		bitstrings := make([]string, 0, len(result.Counts))
		for bits := range result.Counts {
			bitstrings = append(bitstrings, bits)
		}
		sort.Strings(bitstrings)

		for _, bits := range bitstrings {
			fmt.Printf("  %s: %d\n", bits, result.Counts[bits])
		}

		return nil
	},
}

func init() {
	helloCmd.Flags().IntVar(&helloShots, "shots", quantum.DefaultShots, "number of circuit executions")

	rootCmd.AddCommand(helloCmd)
}
