package main

import (
	"testing"

	"pinctl/internal/config"
	"pinctl/internal/testutil"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// loadTestConfig isolates HOME, writes content as the config file when non-empty and
// loads it. Global flag values are reset afterwards.
func loadTestConfig(t *testing.T, content string) string {
	t.Helper()
	home := testutil.IsolateHome(t)
	viper.Reset()
	if content != "" {
		testutil.WriteConfig(t, home, content)
	}
	require.NoError(t, config.Load(""))

	resetGlobalFlags()
	t.Cleanup(func() {
		resetGlobalFlags()
		viper.Reset()
	})
	return home
}

func resetGlobalFlags() {
	configFile = ""
	regionFlag = ""
	profileFlag = ""
	outputFlag = ""
	selectFlag = ""
	endpointURL = ""
	showSplash = false
	configErr = nil
}
