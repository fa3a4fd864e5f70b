package interactive

import (
	"errors"
	"testing"

	"pinctl/pkg/colors"

	"github.com/aws/aws-sdk-go-v2/aws"
	pinpointtypes "github.com/aws/aws-sdk-go-v2/service/pinpoint/types"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFinder(t *testing.T, fn func(items interface{}, itemFunc func(int) string, header string, preview func(i, w, h int) string) (int, error)) {
	t.Helper()
	orig := finder
	finder = fn
	t.Cleanup(func() { finder = orig })
}

func TestApplicationsFromResponses(t *testing.T) {
	apps := ApplicationsFromResponses([]pinpointtypes.ApplicationResponse{
		{Id: aws.String("b2"), Name: aws.String("marketing"), Arn: aws.String("arn:aws:mobiletargeting:us-east-1:123:apps/b2")},
		{Id: aws.String("a1"), Name: aws.String("alerts"), Tags: map[string]string{"team": "ops"}},
		{Id: aws.String("c3")},
	})

	require.Len(t, apps, 3)
	assert.Equal(t, "c3", apps[0].ID, "unnamed applications sort first")
	assert.Equal(t, "alerts", apps[1].Name)
	assert.Equal(t, "ops", apps[1].Tags["team"])
	assert.Equal(t, "marketing", apps[2].Name)
	assert.Contains(t, apps[2].Arn, "apps/b2")
}

func TestSelectApplication(t *testing.T) {
	apps := []Application{{ID: "a1", Name: "alerts"}, {ID: "b2", Name: ""}}

	var labels []string
	var header string
	stubFinder(t, func(items interface{}, itemFunc func(int) string, h string, preview func(i, w, h int) string) (int, error) {
		header = h
		for i := range apps {
			labels = append(labels, itemFunc(i))
		}
		assert.Empty(t, preview(-1, 0, 0))
		return 1, nil
	})

	got, err := SelectApplication(apps, "Pick")
	require.NoError(t, err)
	assert.Equal(t, "b2", got.ID)
	assert.Equal(t, []string{"alerts (a1)", "N/A (b2)"}, labels)
	assert.Equal(t, "Pick (2 available)", header)
}

func TestSelectApplicationErrors(t *testing.T) {
	_, err := SelectApplication(nil, "Pick")
	require.Error(t, err)

	stubFinder(t, func(interface{}, func(int) string, string, func(i, w, h int) string) (int, error) {
		return -1, fuzzyfinder.ErrAbort
	})
	_, err = SelectApplication([]Application{{ID: "a1"}}, "Pick")
	assert.ErrorIs(t, err, ErrSelectionCancelled)

	stubFinder(t, func(interface{}, func(int) string, string, func(i, w, h int) string) (int, error) {
		return -1, errors.New("terminal not available")
	})
	_, err = SelectApplication([]Application{{ID: "a1"}}, "Pick")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal not available")
}

func TestApplicationPreview(t *testing.T) {
	enabled := colors.Enabled()
	colors.SetEnabled(false)
	defer colors.SetEnabled(enabled)

	got := applicationPreview(Application{
		ID:           "a1",
		Name:         "alerts",
		CreationDate: "2024-01-15T10:30:00.000Z",
		Tags:         map[string]string{"team": "ops", "env": "prod"},
	})

	assert.Contains(t, got, "Name:          alerts")
	assert.Contains(t, got, "Application:   a1")
	assert.Contains(t, got, "Created:       2024-01-15T10:30:00.000Z")
	assert.NotContains(t, got, "ARN:")
	assert.Contains(t, got, "  env = prod\n  team = ops")
}

func TestFuzzyApplicationSelectorImplementsInterface(t *testing.T) {
	var _ ApplicationSelector = &FuzzyApplicationSelector{}
}
