// Package splash prints the welcome screen shown on the first run of each pinctl version.
package splash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pinctl/pkg/security"
	"pinctl/pkg/version"

	"github.com/fatih/color"
)

const (
	banner = `
           _            _   _
     _ __ (_)_ __   ___| |_| |
    | '_ \| | '_ \ / __| __| |
    | |_) | | | | | (__| |_| |
    | .__/|_|_| |_|\___|\__|_|
    |_|
        Amazon Pinpoint from the shell
`

	// versionTrackingFile records the last version that showed the splash
	versionTrackingFile = ".pinctl_version"
)

// SplashConfig contains configuration for the splash screen
type SplashConfig struct {
	AppVersion   string
	AppName      string
	Description  string
	Features     []string
	IsFirstRun   bool
	IsNewVersion bool
}

var features = []string{
	"📨 Pinpoint, Pinpoint Email and SMS/Voice operations as plain commands",
	"🎯 --select to print one response field, or ^Param to echo an input",
	"📄 JSON, YAML, table and text output",
	"📦 Raw payloads from files, stdin or s3://bucket/key",
	"🔍 Fuzzy project picker when --application-id is left out",
	"📡 Optional NATS audit feed of every invocation",
}

// ShowSplash writes the splash to w when version differs from the last recorded
// one (or nothing is recorded yet) and records version. force shows it regardless.
// It reports whether the splash was shown.
func ShowSplash(w io.Writer, version string, force bool) (bool, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return false, fmt.Errorf("failed to get home directory: %w", err)
	}

	versionFile := filepath.Join(homeDir, versionTrackingFile)
	if err := security.ValidateFilePath(versionFile, homeDir); err != nil {
		return false, fmt.Errorf("invalid version file path: %w", err)
	}

	isFirstRun := false
	isNewVersion := false

	lastVersion, err := os.ReadFile(versionFile) // #nosec G304
	switch {
	case os.IsNotExist(err):
		isFirstRun = true
	case err != nil:
		return false, fmt.Errorf("failed to read version file: %w", err)
	case strings.TrimSpace(string(lastVersion)) != version:
		isNewVersion = true
	}

	if !isFirstRun && !isNewVersion && !force {
		return false, nil
	}

	displaySplash(w, SplashConfig{
		AppVersion:   version,
		AppName:      "pinctl",
		Description:  "Command-line wrappers for Amazon Pinpoint",
		Features:     features,
		IsFirstRun:   isFirstRun || force,
		IsNewVersion: isNewVersion,
	})

	if err := os.WriteFile(versionFile, []byte(version), 0600); err != nil {
		return true, fmt.Errorf("failed to write version file: %w", err)
	}
	return true, nil
}

// displaySplash renders the colored splash screen
func displaySplash(w io.Writer, config SplashConfig) {
	titleColor := color.New(color.FgHiWhite, color.Bold)
	versionColor := color.New(color.FgHiGreen, color.Bold)
	descColor := color.New(color.FgWhite)
	featureColor := color.New(color.FgHiCyan)
	headerColor := color.New(color.FgHiYellow, color.Bold)
	accentColor := color.New(color.FgHiMagenta, color.Bold)
	bannerColor := color.New(color.FgHiBlue, color.Bold)

	_, _ = bannerColor.Fprint(w, banner) // #nosec G104

	fmt.Fprint(w, "\n")
	_, _ = titleColor.Fprintf(w, "  %s ", config.AppName)       // #nosec G104
	_, _ = versionColor.Fprintf(w, "v%s\n", config.AppVersion)  // #nosec G104
	_, _ = descColor.Fprintf(w, "  %s\n\n", config.Description) // #nosec G104

	if config.IsFirstRun {
		_, _ = headerColor.Fprintln(w, "  🎉 Welcome to pinctl!") // #nosec G104
	} else if config.IsNewVersion {
		_, _ = headerColor.Fprintf(w, "  ✨ pinctl v%s is ready!\n", config.AppVersion) // #nosec G104
	}

	fmt.Fprintln(w)
	_, _ = headerColor.Fprintln(w, "  ✨ Features:")                // #nosec G104
	_, _ = headerColor.Fprintln(w, "  "+strings.Repeat("═", 40)) // #nosec G104
	for _, feature := range config.Features {
		_, _ = featureColor.Fprintf(w, "    %s\n", feature) // #nosec G104
	}

	fmt.Fprintln(w)
	_, _ = headerColor.Fprintln(w, "  🚀 Quick Start:")              // #nosec G104
	_, _ = headerColor.Fprintln(w, "  "+strings.Repeat("═", 25)) // #nosec G104
	if config.IsFirstRun {
		_, _ = accentColor.Fprintln(w, "    1. Configure your settings:") // #nosec G104
		fmt.Fprintln(w, "       pinctl config init --interactive")
		_, _ = accentColor.Fprintln(w, "    2. Check credentials and endpoints:") // #nosec G104
		fmt.Fprintln(w, "       pinctl config check")
		_, _ = accentColor.Fprintln(w, "    3. List your projects:") // #nosec G104
		fmt.Fprintln(w, "       pinctl app list -o table")
	} else {
		_, _ = accentColor.Fprintln(w, "    • View help:           pinctl --help")      // #nosec G104
		_, _ = accentColor.Fprintln(w, "    • Check configuration: pinctl config show") // #nosec G104
	}

	if page := version.ReleasePage(); page != "" {
		fmt.Fprintln(w)
		_, _ = featureColor.Fprintln(w, "    • Releases: "+page) // #nosec G104
	}
	fmt.Fprintln(w)
}
