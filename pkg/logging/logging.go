package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"pinctl/pkg/colors"
	"pinctl/pkg/security"
)

var (
	fileLogger  *log.Logger
	logFile     *os.File // Store file handle for proper cleanup
	loggerMutex sync.RWMutex

	// consoleOut receives the colored console lines. Command results go to stdout,
	// so diagnostics stay on stderr.
	consoleOut io.Writer = os.Stderr
)

func init() {
	setupFileLogger("")
}

// getDefaultLogDir returns platform-appropriate default log directory
func getDefaultLogDir(homeDir string) string {
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, "pinctl", "logs")
		}
		return filepath.Join(homeDir, "AppData", "Local", "pinctl", "logs")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "pinctl")
	default:
		// XDG Base Directory
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			return filepath.Join(xdgData, "pinctl", "logs")
		}
		return filepath.Join(homeDir, ".local", "share", "pinctl", "logs")
	}
}

// getFilePermissions returns platform-appropriate file permissions
func getFilePermissions() os.FileMode {
	if runtime.GOOS == "windows" {
		return 0666
	}
	return 0600
}

// getDirPermissions returns platform-appropriate directory permissions
func getDirPermissions() os.FileMode {
	if runtime.GOOS == "windows" {
		return 0777
	}
	return 0755
}

// setupFileLogger opens the dated log file. An empty dir falls back to PINCTL_LOG_DIR
// and then to the platform default.
func setupFileLogger(dir string) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine home directory, file logging disabled: %v\n", err)
		return
	}

	logDirPath := dir
	if logDirPath == "" {
		logDirPath = os.Getenv("PINCTL_LOG_DIR")
	}
	if logDirPath == "" {
		logDirPath = getDefaultLogDir(homeDir)
	}

	if security.ContainsUnsafePath(logDirPath) {
		fmt.Fprintf(os.Stderr, "Warning: Invalid log directory path %s, using default location\n", logDirPath)
		logDirPath = getDefaultLogDir(homeDir)
	}

	if err := os.MkdirAll(logDirPath, getDirPermissions()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create log directory %s, file logging disabled: %v\n", logDirPath, err)
		return
	}

	logFilePath := filepath.Join(logDirPath, fmt.Sprintf("pinctl-%s.log", time.Now().Format("2006-01-02")))
	// #nosec G304 - logDirPath is validated above and log filename is controlled by application
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, getFilePermissions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create/open log file %s, file logging disabled: %v\n", logFilePath, err)
		return
	}

	loggerMutex.Lock()
	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error closing previous log file: %v\n", err)
		}
	}
	logFile = file
	fileLogger = log.New(file, "", 0)
	loggerMutex.Unlock()
}

// ConfigureFileLogging applies the logging section of the configuration once it is loaded.
// Disabling closes the current file; enabling reopens it under dir.
func ConfigureFileLogging(enabled bool, dir string) {
	if !enabled {
		CloseLogger()
		return
	}
	setupFileLogger(dir)
}

// CloseLogger properly closes the log file to prevent resource leaks
func CloseLogger() {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error closing log file: %v\n", err)
		}
		logFile = nil
		fileLogger = nil
	}
}

func getTimestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// logToFile writes a timestamped message to the log file (thread-safe)
func logToFile(level string, message string) {
	loggerMutex.RLock()
	logger := fileLogger
	loggerMutex.RUnlock()

	if logger != nil {
		logger.Printf("%s [%s] %s", getTimestamp(), level, message)
	}
}

// LogInfo logs an info message - colored to console, timestamped to file
func LogInfo(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = colors.Success.Fprintf(consoleOut, "[INFO] %s\n", message)
	logToFile("INFO", message)
}

// LogWarn logs a warning message - colored to console, timestamped to file
func LogWarn(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = colors.Warning.Fprintf(consoleOut, "[WARN] %s\n", message)
	logToFile("WARN", message)
}

// LogError logs an error message - colored to console, timestamped to file
func LogError(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = colors.Error.Fprintf(consoleOut, "[ERROR] %s\n", message)
	logToFile("ERROR", message)
}

// LogDebug logs a debug message - colored to console, timestamped to file
func LogDebug(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = colors.Data.Fprintf(consoleOut, "[DEBUG] %s\n", message)
	logToFile("DEBUG", message)
}

// LogSuccess logs a success message - colored to console, timestamped to file
func LogSuccess(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = colors.Success.Fprintf(consoleOut, "[SUCCESS] %s\n", message)
	logToFile("SUCCESS", message)
}

// Logger carries key/value fields onto the package-level log functions and
// gates debug output.
type Logger struct {
	debugEnabled bool
	noOp         bool
}

// NewLogger creates a new logger instance with debug level control
func NewLogger(debug bool) *Logger {
	return &Logger{
		debugEnabled: debug,
	}
}

// NewNoOpLogger creates a logger that discards all output
func NewNoOpLogger() *Logger {
	return &Logger{
		debugEnabled: false,
		noOp:         true,
	}
}

// DebugEnabled reports whether debug lines are emitted
func (l *Logger) DebugEnabled() bool {
	return !l.noOp && l.debugEnabled
}

// formatFields converts key-value pairs to a formatted string
func (l *Logger) formatFields(fields ...interface{}) string {
	if len(fields) == 0 {
		return ""
	}

	var parts []string
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			parts = append(parts, fmt.Sprintf("%v=%v", fields[i], fields[i+1]))
		} else {
			parts = append(parts, fmt.Sprintf("%v=<no_value>", fields[i]))
		}
	}

	return " | " + strings.Join(parts, " ")
}

// Info logs an info message using centralized logging
func (l *Logger) Info(msg string, fields ...interface{}) {
	if l.noOp {
		return
	}
	LogInfo("%s%s", msg, l.formatFields(fields...))
}

// Debug logs a debug message using centralized logging (respects debug flag)
func (l *Logger) Debug(msg string, fields ...interface{}) {
	if !l.DebugEnabled() {
		return
	}
	LogDebug("%s%s", msg, l.formatFields(fields...))
}

// Warn logs a warning message using centralized logging
func (l *Logger) Warn(msg string, fields ...interface{}) {
	if l.noOp {
		return
	}
	LogWarn("%s%s", msg, l.formatFields(fields...))
}

// Error logs an error message using centralized logging
func (l *Logger) Error(msg string, fields ...interface{}) {
	if l.noOp {
		return
	}
	LogError("%s%s", msg, l.formatFields(fields...))
}
