package main

import (
	"fmt"
	"os"
	"strings"

	"pinctl/internal/cmdlet"
	"pinctl/internal/config"
	"pinctl/internal/output"
	"pinctl/internal/splash"
	"pinctl/pkg/aws"
	"pinctl/pkg/colors"
	"pinctl/pkg/logging"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Version represents the current version of pinctl
	// Override at build time with -ldflags "-X main.Version=X.Y.Z"
	Version     = "0.1.0"
	configFile  string
	debug       bool
	noColor     bool
	regionFlag  string
	profileFlag string
	outputFlag  string
	selectFlag  string
	endpointURL string
	showSplash  bool
	logger      *logging.Logger
	services    *runner
	// configErr holds the configuration load failure, reported by every non-config command
	configErr error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pinctl",
	Short: "Command-line wrappers for Amazon Pinpoint, Pinpoint Email and SMS/Voice",
	Long: `pinctl exposes Amazon Pinpoint, Pinpoint Email and Pinpoint SMS and Voice
operations as commands. Each command collects its parameters from flags, builds the
service request, makes one call and prints the selected part of the response.

Selecting output:
  --select '*'            the whole response (default for most commands)
  --select Field          one top-level response field
  --select '^Param'       echo an input parameter without calling the service

Examples:
  pinctl app list -o table
  pinctl email send --from ops@example.com --to dev@example.com --subject Hi --text Hello
  pinctl voice send --to +15555550100 --text "Your code is 1234" -r use1
  pinctl message send --app-id 1a2b --addresses @addresses.json --sms-body Hello`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config commands must stay usable with a broken file
		if configErr != nil && !isConfigCommand(cmd) {
			return configErr
		}
		maybeShowSplash(cmd)
		return nil
	},
}

// maybeShowSplash shows the welcome screen on stderr for the first run of a version
func maybeShowSplash(cmd *cobra.Command) {
	switch cmd.Name() {
	case "help", "version", "completion", "__complete":
		return
	}
	if !showSplash && !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}
	if _, err := splash.ShowSplash(os.Stderr, Version, showSplash); err != nil {
		GetLogger().Debug("Splash screen skipped", "error", err)
	}
}

// isConfigCommand reports whether cmd is "config" or one of its subcommands
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	defer logging.CloseLogger()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.pinctl.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&regionFlag, "region", "r", "", "AWS region or shortcode (e.g. us-east-1, use1)")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "AWS shared config profile")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output format: json, yaml, table or text")
	rootCmd.PersistentFlags().StringVarP(&selectFlag, "select", "s", "", "result selector: '*', a response field, or '^Param'")
	rootCmd.PersistentFlags().StringVar(&endpointURL, "endpoint-url", "", "override the messaging service endpoint")
	rootCmd.PersistentFlags().BoolVar(&showSplash, "show-splash", false, "force display of welcome splash screen")

	rootCmd.AddCommand(configCmd, authCmd, versionCmd, completionCmd)
	services = newRunner()
	if err := addServiceCommands(rootCmd, services); err != nil {
		// The registry is static; a failure here is a programming error
		panic(err)
	}
	addApplicationCommands(rootCmd, services)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	logger = logging.NewLogger(debug)

	configErr = setupConfiguration()
	if configErr != nil {
		logger.Error("Configuration setup failed", "error", configErr)
	}
}

// setupConfiguration loads the configuration and applies its logging and color settings
func setupConfiguration() error {
	if err := config.Load(configFile); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := config.Get()
	if strings.EqualFold(cfg.Logging.Level, "debug") {
		debug = true
		logger = logging.NewLogger(true)
	}
	logging.ConfigureFileLogging(cfg.Logging.FileLogging, cfg.Logging.Directory)

	colors.SetEnabled(!noColor && term.IsTerminal(int(os.Stdout.Fd())))

	if used := config.FileUsed(); used != "" {
		logger.Debug("Using config file", "file", used)
	}
	return nil
}

// GetLogger returns the shared logger, creating it if configuration has not run
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewLogger(debug)
	}
	return logger
}

// settings are the per-invocation values resolved from flags and configuration
type settings struct {
	Region      string
	Profile     string
	Format      output.Format
	Selector    string
	Policy      cmdlet.RequiredPolicy
	EndpointURL string
}

// resolveSettings merges the global flags over the loaded configuration
func resolveSettings() (settings, error) {
	cfg := config.Get()
	s := settings{
		Region:      cfg.DefaultRegion,
		Profile:     cfg.Profile,
		Selector:    selectFlag,
		EndpointURL: cfg.EndpointURL,
	}

	if regionFlag != "" {
		region, err := aws.ValidateRegionInput(regionFlag)
		if err != nil {
			return s, err
		}
		s.Region = region
	}
	if profileFlag != "" {
		s.Profile = profileFlag
	}
	if endpointURL != "" {
		s.EndpointURL = endpointURL
	}

	format := cfg.Output
	if outputFlag != "" {
		format = outputFlag
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return s, err
	}
	s.Format = f

	policy, err := cmdlet.ParseRequiredPolicy(cfg.RequiredParameters)
	if err != nil {
		return s, err
	}
	s.Policy = policy

	return s, nil
}
