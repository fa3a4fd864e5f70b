package interactive

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"pinctl/pkg/colors"

	pinpointtypes "github.com/aws/aws-sdk-go-v2/service/pinpoint/types"
	"github.com/ktr0731/go-fuzzyfinder"
)

// ErrSelectionCancelled is returned when the user aborts the picker
var ErrSelectionCancelled = errors.New("application selection cancelled")

// Application is a Pinpoint project as shown in the picker
type Application struct {
	ID           string
	Name         string
	Arn          string
	CreationDate string
	Tags         map[string]string
}

// ApplicationSelector picks one application from a list
type ApplicationSelector interface {
	SelectApplication(apps []Application) (*Application, error)
}

// FuzzyApplicationSelector selects applications with the terminal fuzzy finder
type FuzzyApplicationSelector struct{}

// SelectApplication uses a fuzzy finder to select an application from a list.
func (s *FuzzyApplicationSelector) SelectApplication(apps []Application) (*Application, error) {
	return SelectApplication(apps, "Select Pinpoint Application")
}

// finder is swapped in tests
var finder = FuzzyFind

// ApplicationsFromResponses converts GetApps results, sorted by name then ID
func ApplicationsFromResponses(items []pinpointtypes.ApplicationResponse) []Application {
	apps := make([]Application, 0, len(items))
	for _, item := range items {
		app := Application{Tags: item.Tags}
		if item.Id != nil {
			app.ID = *item.Id
		}
		if item.Name != nil {
			app.Name = *item.Name
		}
		if item.Arn != nil {
			app.Arn = *item.Arn
		}
		if item.CreationDate != nil {
			app.CreationDate = *item.CreationDate
		}
		apps = append(apps, app)
	}
	sort.SliceStable(apps, func(i, j int) bool {
		if apps[i].Name != apps[j].Name {
			return apps[i].Name < apps[j].Name
		}
		return apps[i].ID < apps[j].ID
	})
	return apps
}

// SelectApplication provides a common interface for application selection
func SelectApplication(apps []Application, title string) (*Application, error) {
	if len(apps) == 0 {
		return nil, fmt.Errorf("no applications available")
	}

	idx, err := finder(apps,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", displayName(apps[i]), apps[i].ID)
		},
		fmt.Sprintf("%s (%d available)", title, len(apps)),
		func(i, w, h int) string {
			if i < 0 || i >= len(apps) {
				return ""
			}
			return applicationPreview(apps[i])
		},
	)

	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			colors.PrintError("❌ Application selection cancelled\n")
			return nil, ErrSelectionCancelled
		}
		return nil, fmt.Errorf("application selection failed: %w", err)
	}

	colors.PrintSuccess("✅ Selected: %s (%s)\n", displayName(apps[idx]), apps[idx].ID)
	return &apps[idx], nil
}

func displayName(app Application) string {
	if app.Name == "" {
		return "N/A"
	}
	return app.Name
}

// applicationPreview renders the preview pane for one application
func applicationPreview(app Application) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:          %s\n", displayName(app))
	fmt.Fprintf(&b, "Application:   %s\n", colors.ColorData("%s", app.ID))
	if app.CreationDate != "" {
		fmt.Fprintf(&b, "Created:       %s\n", app.CreationDate)
	}
	if app.Arn != "" {
		fmt.Fprintf(&b, "ARN:           %s\n", app.Arn)
	}

	if len(app.Tags) > 0 {
		keys := make([]string, 0, len(app.Tags))
		for k := range app.Tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("Tags:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s = %s\n", k, app.Tags[k])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
