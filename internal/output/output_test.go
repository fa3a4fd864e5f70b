package output

import (
	"bytes"
	"strings"
	"testing"

	"pinctl/pkg/colors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metadata struct {
	values map[string]string
}

type identity struct {
	IdentityName *string
	IdentityType string
	Verified     bool
}

type listIdentitiesOutput struct {
	EmailIdentities []identity
	NextToken       *string
	ResultMetadata  metadata
}

type accountOutput struct {
	SendingEnabled  bool
	EnforcementCode *string
	Quota           *quota
	ResultMetadata  metadata
}

type quota struct {
	Max24HourSend   float64
	MaxSendRate     float64
	SentLast24Hours float64
}

func strPtr(s string) *string {
	return &s
}

func withoutColors(t *testing.T) {
	t.Helper()
	enabled := colors.Enabled()
	colors.SetEnabled(false)
	t.Cleanup(func() { colors.SetEnabled(enabled) })
}

func render(t *testing.T, format Format, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, format).Render(v))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{" table ", FormatTable, false},
		{"text", FormatText, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDropsMetadataAndNulls(t *testing.T) {
	out := &accountOutput{SendingEnabled: true}

	doc, err := Normalize(out)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"SendingEnabled": true}, doc)
}

func TestNormalizeNil(t *testing.T) {
	doc, err := Normalize(nil)
	require.NoError(t, err)
	assert.Nil(t, doc)

	var missing *string
	doc, err = Normalize(missing)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestRenderJSON(t *testing.T) {
	got := render(t, FormatJSON, []string{"transactional", "marketing"})
	assert.JSONEq(t, `["transactional","marketing"]`, got)
	assert.True(t, strings.HasSuffix(got, "\n"))

	got = render(t, FormatJSON, &accountOutput{Quota: &quota{MaxSendRate: 14}})
	assert.JSONEq(t, `{"SendingEnabled":false,"Quota":{"Max24HourSend":0,"MaxSendRate":14,"SentLast24Hours":0}}`, got)
	assert.NotContains(t, got, "ResultMetadata")
}

func TestRenderYAML(t *testing.T) {
	got := render(t, FormatYAML, &listIdentitiesOutput{
		EmailIdentities: []identity{{IdentityName: strPtr("example.com"), IdentityType: "DOMAIN", Verified: true}},
	})

	assert.Contains(t, got, "EmailIdentities:")
	assert.Contains(t, got, "IdentityName: example.com")
	assert.NotContains(t, got, "NextToken")
	assert.NotContains(t, got, "ResultMetadata")
}

func TestRenderTableRecords(t *testing.T) {
	withoutColors(t)

	got := render(t, FormatTable, []identity{
		{IdentityName: strPtr("example.com"), IdentityType: "DOMAIN", Verified: true},
		{IdentityName: strPtr("ops@example.com"), IdentityType: "EMAIL_ADDRESS"},
	})

	upper := strings.ToUpper(got)
	assert.Contains(t, upper, "IDENTITYNAME")
	assert.Contains(t, upper, "IDENTITYTYPE")
	assert.Contains(t, got, "example.com")
	assert.Contains(t, got, "EMAIL_ADDRESS")
	assert.Contains(t, got, "true")
}

func TestRenderTableWrappedList(t *testing.T) {
	withoutColors(t)

	got := render(t, FormatTable, &listIdentitiesOutput{
		EmailIdentities: []identity{{IdentityName: strPtr("example.com"), IdentityType: "DOMAIN"}},
		NextToken:       strPtr("abc"),
	})

	assert.True(t, strings.HasPrefix(got, "EmailIdentities\n"))
	assert.Contains(t, got, "example.com")
}

func TestRenderTableRecord(t *testing.T) {
	withoutColors(t)

	got := render(t, FormatTable, &accountOutput{SendingEnabled: true, Quota: &quota{MaxSendRate: 14}})

	upper := strings.ToUpper(got)
	assert.Contains(t, upper, "PROPERTY")
	assert.Contains(t, got, "SendingEnabled")
	assert.Contains(t, got, `"MaxSendRate":14`)
}

func TestRenderTableEmptyList(t *testing.T) {
	withoutColors(t)
	assert.Equal(t, "No items found\n", render(t, FormatTable, []string{}))
}

func TestRenderText(t *testing.T) {
	withoutColors(t)

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"scalar pointer", strPtr("0100018b-message"), "0100018b-message\n"},
		{"list", []string{"a", "b"}, "a\nb\n"},
		{"record", map[string]interface{}{"b": 2, "a": "x"}, "a\tx\nb\t2\n"},
		{"nil", nil, ""},
		{"float", 2.5, "2.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, FormatText, tt.in))
		})
	}
}

func TestCellColorsStatuses(t *testing.T) {
	enabled := colors.Enabled()
	colors.SetEnabled(true)
	defer colors.SetEnabled(enabled)

	assert.NotEqual(t, "DELIVERED", cell("DELIVERED"))
	assert.Contains(t, cell("DELIVERED"), "DELIVERED")
	assert.Equal(t, "hello", cell("hello"))
}

func TestRenderKeepNulls(t *testing.T) {
	subs := map[string][]string{"FirstName": {"Ana"}, "Coupon": nil}

	assert.JSONEq(t, `{"FirstName":["Ana"]}`, render(t, FormatJSON, subs))

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatJSON).KeepNulls().Render(subs))
	assert.JSONEq(t, `{"FirstName":["Ana"],"Coupon":null}`, buf.String())

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatJSON).KeepNulls().Render(&accountOutput{SendingEnabled: true}))
	assert.NotContains(t, buf.String(), "ResultMetadata")
}
