package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/ui/components"
)

const probeTimeout = 15 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check which providers the server can reach",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		client := api.NewClient(cfg.GetServerURL())

		ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
		defer cancel()

		res, err := client.CheckAPI(ctx)
		if err != nil {
			log.Fatalf("Failed to reach %s: %v", client.BaseURL(), err)
		}

		fmt.Printf("Server: %s\n", client.BaseURL())
		fmt.Println(components.Badge(api.ProviderDeepSeek, res.APIs.DeepSeek))
		fmt.Println(components.Badge(api.ProviderGroq, res.APIs.Groq))
		if res.Message != "" {
			fmt.Println(res.Message)
		}
		if res.Degraded() {
			fmt.Println("No provider is usable; the server will answer with fallback templates.")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
