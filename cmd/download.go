package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/internal/config"
	"github.com/Rorical/coldmail/internal/core"
)

var downloadDir string

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Save the email from the last chat session to cold_email.txt",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		cfg.SetDownloadDir(downloadDir)

		ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
		defer cancel()

		path, err := downloadLastEmail(ctx, cfg)
		if err != nil {
			log.Fatalf("Download failed: %v", err)
		}
		fmt.Printf("Saved %s\n", path)
	},
}

// downloadLastEmail resumes the conversation the chat app last had with the
// configured server and writes its email into the download directory.
func downloadLastEmail(ctx context.Context, cfg *config.Config) (string, error) {
	client := api.NewClient(cfg.GetServerURL())

	cookies, err := config.LoadSession(client.BaseURL())
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if len(cookies) == 0 {
		return "", fmt.Errorf("no conversation with %s yet, generate an email first", client.BaseURL())
	}
	client.SetCookies(cookies)

	return core.DownloadEmail(ctx, client, cfg.GetDownloadDir())
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadDir, "out", "o", "", "directory to write cold_email.txt into")
	rootCmd.AddCommand(downloadCmd)
}
