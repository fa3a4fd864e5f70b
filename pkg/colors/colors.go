package colors

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Standardized color definitions for pinctl console output

var (
	// Header colors section titles and table headings
	Header = color.New(color.FgHiYellow, color.Bold)

	// Data colors identifiers such as application ids, message ids and phone numbers
	Data = color.New(color.FgHiCyan)

	// Success colors positive feedback and delivered statuses
	Success = color.New(color.FgHiGreen, color.Bold)

	// Error colors error messages and failed statuses
	Error = color.New(color.FgHiRed, color.Bold)

	// Warning colors warnings
	Warning = color.New(color.FgHiYellow, color.Bold)
)

// SetEnabled turns ANSI colors on or off globally (--no-color, non-terminal output)
func SetEnabled(enabled bool) {
	color.NoColor = !enabled
}

// Enabled reports whether ANSI colors are currently emitted
func Enabled() bool {
	return !color.NoColor
}

func PrintSuccess(format string, args ...interface{}) {
	Success.Printf(format, args...)
}

func PrintError(format string, args ...interface{}) {
	Error.Printf(format, args...)
}

// FprintHeader writes a colored header line to w
func FprintHeader(w io.Writer, format string, args ...interface{}) {
	_, _ = Header.Fprintf(w, format, args...)
}

// Color formatting functions that return colored strings
func ColorData(format string, args ...interface{}) string {
	return Data.Sprintf(format, args...)
}

func ColorSuccess(format string, args ...interface{}) string {
	return Success.Sprintf(format, args...)
}

func ColorError(format string, args ...interface{}) string {
	return Error.Sprintf(format, args...)
}

func ColorWarning(format string, args ...interface{}) string {
	return Warning.Sprintf(format, args...)
}

// ColorStatus colors a delivery or resource status returned by the messaging APIs
func ColorStatus(status string) string {
	switch status {
	case "SUCCESSFUL", "DELIVERED", "ACTIVE", "SUCCESS", "VERIFIED":
		return ColorSuccess("%s", status)
	case "PENDING", "QUEUED", "THROTTLED", "UNKNOWN_FAILURE", "TEMPORARY_FAILURE":
		return ColorWarning("%s", status)
	case "PERMANENT_FAILURE", "OPT_OUT", "DUPLICATE", "FAILED", "TIMEOUT", "FAILURE":
		return ColorError("%s", status)
	default:
		return fmt.Sprint(status)
	}
}
