package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"pinctl/internal/config"
	"pinctl/internal/system"
	"pinctl/pkg/aws"
	"pinctl/pkg/colors"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long: `Manage pinctl configuration including initialization, validation, and display.

Examples:
  pinctl config init                    # Create a sample configuration
  pinctl config init --interactive      # Answer a few questions instead
  pinctl config show                    # Show the effective configuration
  pinctl config validate                # Check the configuration file
  pinctl config check                   # Check credentials, region and endpoints`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Initialize pinctl configuration by creating $HOME/.pinctl.yaml (or the --config path).
With --interactive the core settings are prompted for instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		interactive, _ := cmd.Flags().GetBool("interactive")

		if err := initializeConfigFile(configPath(), force, interactive, os.Stdin, cmd.OutOrStdout()); err != nil {
			GetLogger().Error("Configuration initialization failed", "error", err)
			os.Exit(1)
		}
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long:  `Display the effective pinctl configuration: file values, PINCTL_ environment overrides and defaults.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := showConfiguration(cmd.OutOrStdout()); err != nil {
			GetLogger().Error("Failed to display configuration", "error", err)
			os.Exit(1)
		}
	},
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long:  `Validate the pinctl configuration file for syntax and allowed values.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := validateConfiguration(cmd.OutOrStdout()); err != nil {
			GetLogger().Error("Configuration validation failed", "error", err)
			os.Exit(1)
		}
	},
}

// configCheckCmd represents the config check command
var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check credentials, region and service endpoints",
	Long: `Check that pinctl can work with the current settings: the region offers Pinpoint,
the credentials are accepted by STS, the service endpoints resolve in DNS and the
audit server (when configured) accepts connections.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := checkRequirements(ctx, services.credentials, cmd.OutOrStdout()); err != nil {
			GetLogger().Error("Requirements check failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd, configValidateCmd, configCheckCmd)

	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing configuration file")
	configInitCmd.Flags().BoolP("interactive", "i", false, "prompt for the core settings")
}

// configPath returns the --config path or the default location
func configPath() string {
	if configFile != "" {
		return configFile
	}
	return config.DefaultPath()
}

// initializeConfigFile handles the config initialization logic and returns errors instead of calling os.Exit
func initializeConfigFile(path string, force, interactive bool, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "\n⚠️  Configuration file already exists at %s\n", path)
		fmt.Fprintln(out, "Would you like to overwrite it? (yes/no)")

		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "yes" && response != "y" {
			fmt.Fprintln(out, "Configuration initialization cancelled.")
			return nil
		}
	}

	if interactive {
		if _, err := config.InteractiveSetup(reader, out, path); err != nil {
			return fmt.Errorf("interactive configuration failed: %w", err)
		}
		return nil
	}

	if err := config.CreateSampleConfig(path); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	fmt.Fprintf(out, "Sample configuration created at %s\n", path)
	fmt.Fprintln(out, "Edit it as needed, then try 'pinctl auth whoami' and 'pinctl app list'.")
	return nil
}

// showConfiguration prints the effective configuration as YAML
func showConfiguration(out io.Writer) error {
	cfg := config.Get()

	colors.FprintHeader(out, "=== Current Configuration ===\n")
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return err
	}

	if cfg.DefaultRegion != "" {
		fmt.Fprintf(out, "\nRegion: %s (%s)\n", cfg.DefaultRegion, aws.GetRegionDescription(cfg.DefaultRegion))
		if !aws.SupportsMessaging(cfg.DefaultRegion) {
			colors.Warning.Fprintf(out, "⚠ %s is not a known Pinpoint region\n", cfg.DefaultRegion)
		}
	}

	if used := config.FileUsed(); used != "" {
		fmt.Fprintf(out, "Config File: %s\n", used)
	} else {
		fmt.Fprintln(out, "Config File: Not found (using defaults)")
		fmt.Fprintln(out, "Run 'pinctl config init' to create configuration file")
	}
	return nil
}

// newChecker is swapped in tests
var newChecker = system.NewRequirementsChecker

// checkRequirements runs the environment checks and prints one line per result
func checkRequirements(ctx context.Context, validate credentialsFunc, out io.Writer) error {
	if configErr != nil {
		return configErr
	}
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	cfg := config.Get()
	checker := newChecker(GetLogger(), system.CheckOptions{
		Region:       s.Region,
		EndpointURL:  s.EndpointURL,
		AuditURL:     cfg.Audit.NATSURL,
		AuditSubject: cfg.Audit.Subject,
		Profile:      s.Profile,
		Credentials: func(ctx context.Context) error {
			return validate(ctx, s)
		},
	})

	results := checker.CheckAll(ctx)
	for _, result := range results {
		if result.Passed {
			fmt.Fprintf(out, "✅ %s", result.Name)
			if result.Detail != "" {
				fmt.Fprintf(out, ": %s", result.Detail)
			}
			fmt.Fprintln(out)
			continue
		}
		fmt.Fprintf(out, "❌ %s: %s\n", result.Name, colors.ColorError("%s", result.Error))
		if result.Suggestion != "" {
			fmt.Fprintf(out, "   💡 %s\n", colors.ColorWarning("%s", result.Suggestion))
		}
	}

	if !system.AllPassed(results) {
		return fmt.Errorf("some requirements are not met")
	}
	fmt.Fprintln(out, colors.ColorSuccess("All requirements met ✅"))
	return nil
}

// validateConfiguration re-loads the configuration and reports the first problem
func validateConfiguration(out io.Writer) error {
	if err := config.Load(configFile); err != nil {
		return err
	}

	fmt.Fprintln(out, colors.ColorSuccess("Configuration validation passed ✅"))
	return nil
}
