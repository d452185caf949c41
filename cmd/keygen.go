package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgravitate/quantum-examples/internal/entropy"
)

var keygenBits int

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Derive a symmetric key from quantum measurement outcomes",
	Long: "Runs a 16-qubit entangling circuit enough times to collect the requested " +
		"number of measurement bits and folds them through SHA-256 into a key.",
	RunE: func(cmd *cobra.Command, args []string) error {
		source := entropy.NewSource(newBackend())

		key, err := source.GenerateKey(cmd.Context(), keygenBits)
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}

		fmt.Println(hex.EncodeToString(key))

		return nil
	},
}

func init() {
	keygenCmd.Flags().IntVar(&keygenBits, "bits", entropy.KeyBits, "measurement bits to collect before hashing")

	rootCmd.AddCommand(keygenCmd)
}
