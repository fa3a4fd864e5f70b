package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"pinctl/internal/output"
	"pinctl/pkg/logging"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

// openURL is swapped in tests
var openURL = browser.OpenURL

// addApplicationCommands adds the interactive project commands to the generated "app" group
func addApplicationCommands(root *cobra.Command, r *runner) {
	appCmd, _, err := root.Find([]string{"app"})
	if err != nil || appCmd == root {
		appCmd = &cobra.Command{Use: "app", Short: groupShort["app"]}
		root.AddCommand(appCmd)
	}

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a Pinpoint project interactively and print it",
		Long: `List the projects in the region in a fuzzy finder and print the chosen one.
Use with --select Id (or -o text) to feed the ID into other commands:

  pinctl app get --app-id "$(pinctl app pick -s Id -o text)"`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := r.runPick(cmd.Context()); err != nil {
				logging.LogError("Application selection failed: %v", err)
				os.Exit(1)
			}
		},
	}

	consoleCmd := &cobra.Command{
		Use:   "console",
		Short: "Open a Pinpoint project in the AWS console",
		Long: `Open the Pinpoint console dashboard of a project in the default browser.
Without --application-id the project is chosen interactively.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			appID, _ := cmd.Flags().GetString("application-id")
			printOnly, _ := cmd.Flags().GetBool("print")
			if err := r.runConsole(cmd.Context(), appID, printOnly); err != nil {
				logging.LogError("Failed to open console: %v", err)
				os.Exit(1)
			}
		},
	}
	consoleCmd.Flags().String("application-id", "", "Pinpoint project (application) ID")
	consoleCmd.Flags().Bool("print", false, "print the console URL instead of opening a browser")

	appCmd.AddCommand(pickCmd, consoleCmd)
}

func (r *runner) runPick(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	app, err := r.pickApplication(ctx, s)
	if err != nil {
		return err
	}

	var result interface{} = app
	switch strings.ToLower(strings.TrimSpace(s.Selector)) {
	case "", "*":
	case "id":
		result = app.ID
	case "name":
		result = app.Name
	case "arn":
		result = app.Arn
	default:
		return fmt.Errorf("unknown selector %q for app pick (expected Id, Name or Arn)", s.Selector)
	}
	return output.NewRenderer(r.stdout, s.Format).Render(result)
}

func (r *runner) runConsole(ctx context.Context, appID string, printOnly bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	if appID == "" {
		app, err := r.pickApplication(ctx, s)
		if err != nil {
			return err
		}
		appID = app.ID
	}

	link := consoleURL(s.Region, appID)
	if printOnly {
		_, err := fmt.Fprintln(r.stdout, link)
		return err
	}

	if err := openURL(link); err != nil {
		logging.LogWarn("Failed to open browser automatically | error=%v", err)
		return printLink(r.stdout, link)
	}
	logging.LogSuccess("Opened %s", link)
	return nil
}

func printLink(w io.Writer, link string) error {
	_, err := fmt.Fprintf(w, "Open this URL in your browser:\n%s\n", link)
	return err
}

// consoleURL builds the Pinpoint dashboard URL of a project
func consoleURL(region, appID string) string {
	host := "console.aws.amazon.com"
	if strings.HasPrefix(region, "us-gov-") {
		host = "console.amazonaws-us-gov.com"
	}
	return fmt.Sprintf("https://%s.%s/pinpoint/home?region=%s#/apps/%s/dashboard",
		region, host, url.QueryEscape(region), url.PathEscape(appID))
}
