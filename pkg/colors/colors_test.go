package colors

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColorVariables(t *testing.T) {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()
	color.NoColor = false

	tests := []struct {
		name       string
		colorVar   *color.Color
		shouldBold bool
	}{
		{"Header", Header, true},
		{"Data", Data, false},
		{"Success", Success, true},
		{"Error", Error, true},
		{"Warning", Warning, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.colorVar.Sprint("test")
			if !strings.Contains(result, "test") {
				t.Errorf("%s color should keep the text, got %q", tt.name, result)
			}

			if tt.shouldBold && !strings.Contains(result, ";1m") {
				t.Errorf("%s should be bold, got: %q", tt.name, result)
			}
		})
	}
}

func TestPrintFunctions(t *testing.T) {
	originalNoColor := color.NoColor
	defer func() {
		color.NoColor = originalNoColor
		color.Output = os.Stdout
	}()
	color.NoColor = false

	tests := []struct {
		name      string
		printFunc func(string, ...interface{})
		expected  string
	}{
		{"PrintSuccess", PrintSuccess, "Applications"},
		{"PrintError", PrintError, "Applications"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			color.Output = &buf

			tt.printFunc("%s", tt.expected)

			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("%s output should contain %q, got %q", tt.name, tt.expected, buf.String())
			}
		})
	}
}

func TestFprintHeader(t *testing.T) {
	var buf bytes.Buffer
	FprintHeader(&buf, "%s\n", "ConfigurationSets")

	if !strings.Contains(buf.String(), "ConfigurationSets") {
		t.Errorf("FprintHeader output = %q", buf.String())
	}
}

func TestSetEnabled(t *testing.T) {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	SetEnabled(false)
	if Enabled() {
		t.Error("Enabled() should be false after SetEnabled(false)")
	}

	result := ColorData("Data text")
	if strings.Contains(result, "\x1b[") {
		t.Errorf("disabled colors should not emit ANSI codes, got %q", result)
	}

	SetEnabled(true)
	if !Enabled() {
		t.Error("Enabled() should be true after SetEnabled(true)")
	}
}

func TestColorStatus(t *testing.T) {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()
	color.NoColor = true

	tests := []string{"SUCCESSFUL", "THROTTLED", "PERMANENT_FAILURE", "CUSTOM"}
	for _, status := range tests {
		t.Run(status, func(t *testing.T) {
			if got := ColorStatus(status); got != status {
				t.Errorf("ColorStatus(%q) with colors disabled = %q", status, got)
			}
		})
	}

	color.NoColor = false
	if got := ColorStatus("SUCCESSFUL"); !strings.Contains(got, "\x1b[") {
		t.Errorf("ColorStatus should color known statuses, got %q", got)
	}
	if got := ColorStatus("CUSTOM"); got != "CUSTOM" {
		t.Errorf("ColorStatus should leave unknown statuses plain, got %q", got)
	}
}
