package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultServerURL = "http://localhost:5000"
	DefaultLogLevel  = "info"
)

// Profile points the client at one generator server
type Profile struct {
	ServerURL       string `json:"server_url"`
	DownloadDir     string `json:"download_dir,omitempty"`
	DeepSeekAPIBase string `json:"deepseek_api_base,omitempty"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	LogLevel       string             `json:"log_level,omitempty"`
	currentProfile *Profile
}

// overrides are applied on top of the active profile and never saved
type overrides struct {
	ServerURL   string `env:"COLDMAIL_SERVER_URL"`
	DownloadDir string `env:"COLDMAIL_DOWNLOAD_DIR"`
	LogLevel    string `env:"COLDMAIL_LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, nil
}

func (c *Config) GetServerURL() string {
	if c.currentProfile == nil || c.currentProfile.ServerURL == "" {
		return DefaultServerURL
	}
	return c.currentProfile.ServerURL
}

// SetServerURL overrides the server for this run only.
func (c *Config) SetServerURL(url string) {
	if url == "" {
		return
	}
	if c.currentProfile == nil {
		c.currentProfile = &Profile{}
	}
	c.currentProfile.ServerURL = url
}

func (c *Config) GetDownloadDir() string {
	if c.currentProfile == nil || c.currentProfile.DownloadDir == "" {
		return "."
	}
	return c.currentProfile.DownloadDir
}

// SetDownloadDir overrides the download directory for this run only.
func (c *Config) SetDownloadDir(dir string) {
	if dir == "" {
		return
	}
	if c.currentProfile == nil {
		c.currentProfile = &Profile{}
	}
	c.currentProfile.DownloadDir = dir
}

func (c *Config) GetDeepSeekAPIBase() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.DeepSeekAPIBase
}

func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// GetLogPath returns the log file location next to the config file.
func GetLogPath() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "coldmail.log"), nil
}

func getConfigPath() (string, error) {
	var configDir string

	// Use COLDMAIL_HOME if set, otherwise use user's home directory
	if home := os.Getenv("COLDMAIL_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".coldmail", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func DefaultProfile() Profile {
	return Profile{ServerURL: DefaultServerURL}
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": DefaultProfile(),
		},
		ActiveProfile: "default",
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if c.Profiles == nil {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}

func (c *Config) applyEnv() error {
	var o overrides
	if err := env.Parse(&o); err != nil {
		return err
	}
	c.SetServerURL(o.ServerURL)
	c.SetDownloadDir(o.DownloadDir)
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	return nil
}
