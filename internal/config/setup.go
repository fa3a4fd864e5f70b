package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pinctl/internal/cmdlet"
	"pinctl/internal/output"
	"pinctl/pkg/aws"
	"pinctl/pkg/colors"
	pinerrors "pinctl/pkg/errors"

	"gopkg.in/yaml.v3"
)

// Answers holds the values collected by InteractiveSetup
type Answers struct {
	DefaultRegion      string
	Profile            string
	Output             string
	RequiredParameters string
}

// InteractiveSetup prompts for the core settings on in, echoing prompts to out, and
// merges the answers into the YAML file at path. Blank answers keep the default.
func InteractiveSetup(in io.Reader, out io.Writer, path string) (*Answers, error) {
	reader := bufio.NewReader(in)
	ask := func(prompt, def string) string {
		colors.Data.Fprintf(out, "%s [%s]: ", prompt, def)
		line, _ := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
		return def
	}

	colors.FprintHeader(out, "\n=== pinctl Configuration ===\n")

	answers := &Answers{}

	regionInput := ask("Default region (name or shortcode, e.g. use1)", "us-east-1")
	region, err := aws.ValidateRegionInput(regionInput)
	if err != nil {
		return nil, err
	}
	if !aws.SupportsMessaging(region) {
		colors.Warning.Fprintf(out, "⚠ %s (%s) is not a known Pinpoint region\n", region, aws.GetRegionDescription(region))
	}
	answers.DefaultRegion = region

	answers.Profile = ask("AWS profile (blank for the default chain)", "")

	format, err := output.ParseFormat(ask("Output format (json, yaml, table, text)", string(output.FormatJSON)))
	if err != nil {
		return nil, err
	}
	answers.Output = string(format)

	policy, err := cmdlet.ParseRequiredPolicy(ask("Missing required parameters (error, warn)", string(cmdlet.RequireError)))
	if err != nil {
		return nil, err
	}
	answers.RequiredParameters = string(policy)

	if err := saveAnswers(path, answers); err != nil {
		return nil, err
	}

	colors.Success.Fprintf(out, "✓ Configuration saved to %s\n", path)
	return answers, nil
}

// saveAnswers updates only the prompted keys, preserving the rest of the file
func saveAnswers(path string, answers *Answers) error {
	existing := make(map[string]interface{})
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &existing); err != nil {
			return pinerrors.NewConfigError(fmt.Sprintf("could not parse existing config %s", path), err)
		}
		if existing == nil {
			existing = make(map[string]interface{})
		}
	}

	existing["default_region"] = answers.DefaultRegion
	existing["output"] = answers.Output
	existing["required_parameters"] = answers.RequiredParameters
	if answers.Profile != "" {
		existing["profile"] = answers.Profile
	} else {
		delete(existing, "profile")
	}

	data, err := yaml.Marshal(existing)
	if err != nil {
		return pinerrors.NewConfigError("failed to marshal config", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return pinerrors.NewConfigError("failed to create config directory", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return pinerrors.NewConfigError("failed to write config file", err)
	}
	return nil
}
