package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/coldmail/internal/app"
	"github.com/Rorical/coldmail/internal/config"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "coldmail",
	Short: "Terminal client for the cold email generator",
	Long: `coldmail talks to a cold email generator server: it walks you through the
questions, shows the generated email, and manages the server's API keys.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runApp(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

// loadConfig loads the config and applies the --server override
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.SetServerURL(serverURL)
	return cfg
}

func runApp(cfg *config.Config) {
	application, err := app.NewApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "generator server URL (overrides the active profile)")
	rootCmd.AddCommand(profileCmd)
}
