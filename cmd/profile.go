package cmd

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/coldmail/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage server profiles",
	Long:  `Manage profiles for different cold email generator servers.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range profileNames(cfg, "") {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Server: %s\n", profile.ServerURL)
			if profile.DownloadDir != "" {
				fmt.Printf("    Download dir: %s\n", profile.DownloadDir)
			}
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Server URL: %s\n", profile.ServerURL)
		fmt.Printf("Download dir: %s\n", orDefault(profile.DownloadDir, "."))
		fmt.Printf("DeepSeek base URL: %s\n", orDefault(profile.DeepSeekAPIBase, "(server default)"))
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			var err error
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(config.DefaultProfile())

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		profileName := selectProfile(cfg, args, "Select profile to edit", "")
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(profile)

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		profileName := selectProfile(cfg, args, "Select profile to delete", "")
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		delete(cfg.Profiles, profileName)

		if cfg.ActiveProfile == profileName {
			remaining := profileNames(cfg, "")
			if len(remaining) == 0 {
				// Last profile gone, start over from the default
				cfg.Profiles["default"] = config.DefaultProfile()
				remaining = []string{"default"}
			}
			cfg.ActiveProfile = remaining[0]
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if len(args) == 0 && len(profileNames(cfg, cfg.ActiveProfile)) == 0 {
			fmt.Println("No other profiles available to switch to")
			return
		}

		profileName := selectProfile(cfg, args, "Select profile to switch to", cfg.ActiveProfile)
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.ActiveProfile = profileName
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

// profileNames returns the sorted profile names, leaving out skip
func profileNames(cfg *config.Config, skip string) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if name != skip {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func selectProfile(cfg *config.Config, args []string, label, skip string) string {
	if len(args) > 0 {
		return args[0]
	}

	names := profileNames(cfg, skip)
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func promptProfile(profile config.Profile) config.Profile {
	var err error

	serverPrompt := promptui.Prompt{
		Label:    "Server URL",
		Default:  profile.ServerURL,
		Validate: validateURL(true),
	}
	if profile.ServerURL, err = serverPrompt.Run(); err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}

	dirPrompt := promptui.Prompt{
		Label:   "Download directory (optional)",
		Default: profile.DownloadDir,
	}
	if profile.DownloadDir, err = dirPrompt.Run(); err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}

	basePrompt := promptui.Prompt{
		Label:    "DeepSeek base URL (optional)",
		Default:  profile.DeepSeekAPIBase,
		Validate: validateURL(false),
	}
	if profile.DeepSeekAPIBase, err = basePrompt.Run(); err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}

	return profile
}

func validateURL(required bool) promptui.ValidateFunc {
	return func(input string) error {
		if input == "" {
			if required {
				return errors.New("URL is required")
			}
			return nil
		}
		u, err := url.Parse(input)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New("must be an http(s) URL")
		}
		return nil
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
