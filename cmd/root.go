package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgravitate/quantum-examples/internal/quantum"
)

var (
	logLevel string
	seed     uint64
)

var rootCmd = &cobra.Command{
	Use:   "quantum-examples",
	Short: "Quantum circuit demos on a local statevector simulator",
	Long: "A collection of small quantum computing demonstrations: random bytes and " +
		"cryptographic keys from simulated measurements, a discrete-time quantum walk, " +
		"and tic-tac-toe with superposition moves, playable locally or over WebSocket.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log verbosity: debug or info")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "simulator seed, 0 means random")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if logLevel == "debug" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newBackend builds the local simulator every demo command runs on.
func newBackend() *quantum.Simulator {
	if seed == 0 {
		return quantum.NewSimulator()
	}

	return quantum.NewSimulator(quantum.WithSeed(seed))
}
