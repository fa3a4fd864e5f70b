package main

import (
	"context"
	"time"

	"pinctl/internal/config"
	"pinctl/pkg/version"

	"github.com/spf13/cobra"
)

// versionCmd prints the version and checks for newer releases
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pinctl version and check for updates",
	Long: `Print the pinctl version. Builds that name their release repository look up the
latest GitHub release, at most once a day, unless update_check is disabled in the
configuration or --no-check is passed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		noCheck, _ := cmd.Flags().GetBool("no-check")

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		version.NewChecker().PrintVersionWithCheck(ctx, cmd.OutOrStdout(), Version, config.Get().UpdateCheck && !noCheck)
	},
}

func init() {
	versionCmd.Flags().Bool("no-check", false, "skip the release check")
}
