package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pinctl/internal/config"
	"pinctl/internal/system"
	"pinctl/pkg/colors"
	pinerrors "pinctl/pkg/errors"
	"pinctl/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigFile(t *testing.T) {
	tests := []struct {
		name        string
		existing    string
		force       bool
		interactive bool
		input       string
		wantOut     string
		wantContent string
		unchanged   bool
	}{
		{
			name:        "creates sample",
			wantOut:     "Sample configuration created",
			wantContent: "required_parameters: \"error\"",
		},
		{
			name:      "existing declined",
			existing:  "output: yaml\n",
			input:     "no\n",
			wantOut:   "cancelled",
			unchanged: true,
		},
		{
			name:        "existing confirmed",
			existing:    "output: yaml\n",
			input:       "yes\n",
			wantOut:     "Would you like to overwrite it?",
			wantContent: "# pinctl Configuration File",
		},
		{
			name:        "force skips prompt",
			existing:    "output: yaml\n",
			force:       true,
			wantContent: "# pinctl Configuration File",
		},
		{
			name:        "interactive after confirmation",
			existing:    "output: yaml\n",
			interactive: true,
			input:       "y\nuse1\n\ntext\nwarn\n",
			wantContent: "required_parameters: warn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := loadTestConfig(t, "")
			path := filepath.Join(home, "conf", "pinctl.yaml")
			if tt.existing != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0600))
			}

			var out bytes.Buffer
			err := initializeConfigFile(path, tt.force, tt.interactive, strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOut)
			if tt.force {
				assert.NotContains(t, out.String(), "overwrite")
			}

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			if tt.unchanged {
				assert.Equal(t, tt.existing, string(data))
				return
			}
			assert.Contains(t, string(data), tt.wantContent)
		})
	}
}

func TestShowConfiguration(t *testing.T) {
	enabled := colors.Enabled()
	colors.SetEnabled(false)
	t.Cleanup(func() { colors.SetEnabled(enabled) })

	t.Run("from file", func(t *testing.T) {
		home := loadTestConfig(t, "default_region: cac1\noutput: table\n")

		var out bytes.Buffer
		require.NoError(t, showConfiguration(&out))
		got := out.String()
		assert.Contains(t, got, "default_region: ca-central-1")
		assert.Contains(t, got, "output: table")
		assert.Contains(t, got, "Region: ca-central-1")
		assert.Contains(t, got, "Config File: "+filepath.Join(home, ".pinctl.yaml"))
	})

	t.Run("defaults", func(t *testing.T) {
		loadTestConfig(t, "")

		var out bytes.Buffer
		require.NoError(t, showConfiguration(&out))
		assert.Contains(t, out.String(), "required_parameters: error")
		assert.Contains(t, out.String(), "Not found (using defaults)")
	})
}

func TestValidateConfiguration(t *testing.T) {
	home := loadTestConfig(t, "")

	good := filepath.Join(home, "good.yaml")
	require.NoError(t, config.CreateSampleConfig(good))
	configFile = good

	var out bytes.Buffer
	require.NoError(t, validateConfiguration(&out))
	assert.Contains(t, out.String(), "validation passed")

	bad := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("required_parameters: sometimes\n"), 0600))
	configFile = bad
	assert.Error(t, validateConfiguration(&bytes.Buffer{}))
}

func TestConfigPath(t *testing.T) {
	home := loadTestConfig(t, "")
	assert.Equal(t, filepath.Join(home, ".pinctl.yaml"), configPath())

	configFile = "/tmp/custom.yaml"
	assert.Equal(t, "/tmp/custom.yaml", configPath())
}

func TestCheckRequirements(t *testing.T) {
	loadTestConfig(t, "default_region: euw1\nprofile: ops\n")

	var gotOpts system.CheckOptions
	orig := newChecker
	t.Cleanup(func() { newChecker = orig })
	newChecker = func(logger *logging.Logger, opts system.CheckOptions) *system.RequirementsChecker {
		gotOpts = opts
		return orig(logger, system.CheckOptions{
			Region:      "af-south-1",
			EndpointURL: "not a url",
			Profile:     opts.Profile,
			Credentials: opts.Credentials,
		})
	}

	var validated settings
	validate := func(ctx context.Context, s settings) error {
		validated = s
		return nil
	}

	var out bytes.Buffer
	err := checkRequirements(context.Background(), validate, &out)
	require.Error(t, err)

	assert.Equal(t, "eu-west-1", gotOpts.Region)
	assert.Equal(t, "eu-west-1", validated.Region)
	assert.Equal(t, "ops", validated.Profile)

	assert.Contains(t, out.String(), "❌ Pinpoint Region")
	assert.Contains(t, out.String(), "✅ AWS Credentials: profile ops")
}

func TestCheckRequirementsRejectedCredentials(t *testing.T) {
	loadTestConfig(t, "default_region: use1\n")

	orig := newChecker
	t.Cleanup(func() { newChecker = orig })
	newChecker = func(logger *logging.Logger, opts system.CheckOptions) *system.RequirementsChecker {
		opts.EndpointURL = "not a url"
		return orig(logger, opts)
	}

	validate := func(ctx context.Context, s settings) error {
		return pinerrors.NewAWSError("failed to get caller identity", errors.New("ExpiredToken"))
	}

	var out bytes.Buffer
	require.Error(t, checkRequirements(context.Background(), validate, &out))
	assert.Contains(t, out.String(), "❌ AWS Credentials")
	assert.Contains(t, out.String(), "✅ Pinpoint Region")
}
