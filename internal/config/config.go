package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"pinctl/internal/cmdlet"
	"pinctl/internal/output"
	"pinctl/pkg/aws"
	pinerrors "pinctl/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. PINCTL_DEFAULT_REGION
const EnvPrefix = "PINCTL"

// Config represents the application configuration
type Config struct {
	// Default AWS region for service calls (name or shortcode)
	DefaultRegion string `mapstructure:"default_region" yaml:"default_region"`

	// AWS shared config profile; empty uses the SDK default chain
	Profile string `mapstructure:"profile" yaml:"profile,omitempty"`

	// Output format: json, yaml, table or text
	Output string `mapstructure:"output" yaml:"output"`

	// What to do when a required parameter is missing: error or warn
	RequiredParameters string `mapstructure:"required_parameters" yaml:"required_parameters"`

	// Endpoint override for the messaging services
	EndpointURL string `mapstructure:"endpoint_url" yaml:"endpoint_url,omitempty"`

	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Interactive InteractiveConfig `mapstructure:"interactive" yaml:"interactive"`
	Audit       AuditConfig       `mapstructure:"audit" yaml:"audit"`

	// Check GitHub for a newer release when printing the version
	UpdateCheck bool `mapstructure:"update_check" yaml:"update_check"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	// Log directory path
	Directory string `mapstructure:"directory" yaml:"directory"`

	// Enable file logging
	FileLogging bool `mapstructure:"file_logging" yaml:"file_logging"`

	// Log level (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level"`
}

// InteractiveConfig controls terminal prompts
type InteractiveConfig struct {
	// Offer a fuzzy project picker when --application-id is omitted on a terminal
	SelectApplication bool `mapstructure:"select_application" yaml:"select_application"`
}

// AuditConfig configures the invocation audit feed
type AuditConfig struct {
	NATSURL string `mapstructure:"nats_url" yaml:"nats_url,omitempty"`
	Subject string `mapstructure:"subject" yaml:"subject,omitempty"`
}

var (
	// Global configuration instance
	cfg *Config
)

// Load reads the config file (configFile, or $HOME/.pinctl.yaml when empty) and
// PINCTL_ environment overrides into the global configuration. A missing default
// file is not an error.
func Load(configFile string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return pinerrors.NewConfigError("unable to find home directory", err)
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pinctl")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return pinerrors.NewConfigError("failed to read configuration file", err)
		}
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return pinerrors.NewConfigError("failed to unmarshal configuration", err)
	}
	loaded.Logging.Directory = expandPath(loaded.Logging.Directory)

	if err := validate(loaded); err != nil {
		return err
	}

	cfg = loaded
	return nil
}

// Get returns the global configuration instance
func Get() *Config {
	if cfg == nil {
		setDefaults()
		cfg = &Config{}
		if err := viper.Unmarshal(cfg); err != nil {
			cfg = &Config{DefaultRegion: "us-east-1", Output: "json", RequiredParameters: "error"}
		}
	}
	return cfg
}

// FileUsed returns the path of the loaded config file, if any
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("default_region", "us-east-1")
	viper.SetDefault("profile", "")
	viper.SetDefault("output", string(output.FormatJSON))
	viper.SetDefault("required_parameters", string(cmdlet.RequireError))
	viper.SetDefault("endpoint_url", "")

	// Empty directory defers to the platform log location
	viper.SetDefault("logging.directory", "")
	viper.SetDefault("logging.file_logging", false)
	viper.SetDefault("logging.level", "info")

	viper.SetDefault("interactive.select_application", true)

	viper.SetDefault("audit.nats_url", "")
	viper.SetDefault("audit.subject", "pinctl.audit")

	viper.SetDefault("update_check", true)
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// validate validates the configuration and normalizes the region and format names
func validate(c *Config) error {
	if c.DefaultRegion != "" {
		region, err := aws.ValidateRegionInput(c.DefaultRegion)
		if err != nil {
			return pinerrors.NewConfigError("invalid default_region", err)
		}
		c.DefaultRegion = region
	}

	format, err := output.ParseFormat(c.Output)
	if err != nil {
		return pinerrors.NewConfigError("invalid output", err)
	}
	c.Output = string(format)

	policy, err := cmdlet.ParseRequiredPolicy(c.RequiredParameters)
	if err != nil {
		return pinerrors.NewConfigError("invalid required_parameters", err)
	}
	c.RequiredParameters = string(policy)

	if c.Logging.Level != "" && !logLevels[strings.ToLower(c.Logging.Level)] {
		return pinerrors.NewValidationError(fmt.Sprintf("invalid logging.level %q (expected debug, info, warn or error)", c.Logging.Level))
	}

	if c.Audit.NATSURL != "" && !strings.Contains(c.Audit.NATSURL, "://") {
		return pinerrors.NewValidationError(fmt.Sprintf("invalid audit.nats_url %q (expected nats://host:port)", c.Audit.NATSURL))
	}
	return nil
}

// Validate checks a configuration without loading it
func Validate(c *Config) error {
	copied := *c
	return validate(&copied)
}

// CreateSampleConfig creates a sample configuration file
func CreateSampleConfig(configPath string) error {
	sampleConfig := `# pinctl Configuration File
# Every key can be overridden with an environment variable, e.g. PINCTL_DEFAULT_REGION

# Default AWS region for service calls (full name or shortcode such as use1)
default_region: "us-east-1"

# AWS shared config profile (empty uses the default credential chain)
profile: ""

# Output format: json, yaml, table or text
output: "json"

# Missing required parameters: "error" stops before calling the service,
# "warn" logs a warning and sends the request anyway
required_parameters: "error"

# Logging configuration
logging:
  # Directory for log files (empty uses the platform default)
  directory: ""

  # Enable file logging (in addition to console)
  file_logging: false

  # Log level: debug, info, warn, error
  level: "info"

# Terminal prompts
interactive:
  # Pick a Pinpoint project interactively when --application-id is omitted
  select_application: true

# Invocation audit feed (disabled when nats_url is empty)
audit:
  nats_url: ""
  subject: "pinctl.audit"

# Check for new releases when running 'pinctl version'
update_check: true
`

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return pinerrors.NewConfigError("failed to create config directory", err)
	}

	if err := os.WriteFile(configPath, []byte(sampleConfig), 0600); err != nil {
		return pinerrors.NewConfigError("failed to write sample config", err)
	}

	return nil
}

// DefaultPath returns the default configuration file path
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pinctl.yaml")
}

// Exists checks if the default configuration file exists
func Exists() bool {
	_, err := os.Stat(DefaultPath())
	return err == nil
}

// expandPath expands paths with tilde (~) to the user's home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}
