package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgravitate/quantum-examples/internal/entropy"
)

var randomBytesCount int

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Generate random bytes from simulated qubit measurements",
	RunE: func(cmd *cobra.Command, args []string) error {
		source := entropy.NewSource(newBackend())

		data, err := source.RandomBytes(cmd.Context(), randomBytesCount)
		if err != nil {
			return fmt.Errorf("failed to generate random bytes: %w", err)
		}

		fmt.Println(hex.EncodeToString(data))

		return nil
	},
}

func init() {
	randomCmd.Flags().IntVar(&randomBytesCount, "bytes", 16, "number of random bytes")

	rootCmd.AddCommand(randomCmd)
}
