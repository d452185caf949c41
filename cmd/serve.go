package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/dgravitate/quantum-examples/internal"
	"github.com/dgravitate/quantum-examples/internal/config"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game server with its HTTP and WebSocket transports",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if !filepath.IsAbs(path) {
			baseDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(baseDir, path)
		}

		conf := config.MustLoad(path)
		logger := newLogger()

		if err := app.RunApp(logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "config.yml", "path to the config file")

	rootCmd.AddCommand(serveCmd)
}
