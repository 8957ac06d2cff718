package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	WeeklyGoal          int `mapstructure:"weekly_goal"`
	RuleSweepMinutes    int `mapstructure:"rule_sweep_minutes"`
	InsightSweepMinutes int `mapstructure:"insight_sweep_minutes"`
	// Per-column board capacity limits; 0 or absent means unlimited
	Capacities map[string]int `mapstructure:"capacities"`
}

var AppConfig *Config

// Initialize loads or creates the configuration file
func Initialize() error {
	configDir, err := Dir()
	if err != nil {
		return err
	}
	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("weekly_goal", 5)
	viper.SetDefault("rule_sweep_minutes", 60)
	viper.SetDefault("insight_sweep_minutes", 30)
	viper.SetDefault("capacities", map[string]int{})

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// Dir returns the jobpipe data directory
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".jobpipe"), nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Jobpipe Configuration

# Target number of applications to send per rolling week
weekly_goal: 5

# Sweep intervals for the watch command (minutes)
rule_sweep_minutes: 60
insight_sweep_minutes: 30

# Per-column board capacity limits (0 = unlimited)
capacities:
  pending: 0
  discussing: 0
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	dir, _ := Dir()
	return filepath.Join(dir, "config.yaml")
}
