package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// captureConsole redirects console output for the duration of a test
func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	original := consoleOut
	consoleOut = buf
	t.Cleanup(func() { consoleOut = original })
	return buf
}

func logFilePath(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("pinctl-%s.log", time.Now().Format("2006-01-02")))
}

func TestGetDefaultLogDir(t *testing.T) {
	tests := []struct {
		name        string
		goos        string
		homeDir     string
		envVars     map[string]string
		expectedDir string
	}{
		{
			name:        "Windows with LOCALAPPDATA",
			goos:        "windows",
			homeDir:     "C:\\Users\\testuser",
			envVars:     map[string]string{"LOCALAPPDATA": "C:\\Users\\testuser\\AppData\\Local"},
			expectedDir: "C:\\Users\\testuser\\AppData\\Local\\pinctl\\logs",
		},
		{
			name:        "macOS",
			goos:        "darwin",
			homeDir:     "/Users/testuser",
			envVars:     map[string]string{},
			expectedDir: "/Users/testuser/Library/Logs/pinctl",
		},
		{
			name:        "Linux with XDG_DATA_HOME",
			goos:        "linux",
			homeDir:     "/home/testuser",
			envVars:     map[string]string{"XDG_DATA_HOME": "/home/testuser/.local/share"},
			expectedDir: "/home/testuser/.local/share/pinctl/logs",
		},
		{
			name:        "Linux without XDG_DATA_HOME",
			goos:        "linux",
			homeDir:     "/home/testuser",
			envVars:     map[string]string{},
			expectedDir: "/home/testuser/.local/share/pinctl/logs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOCALAPPDATA", "")
			t.Setenv("XDG_DATA_HOME", "")
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			result := getDefaultLogDir(tt.homeDir)

			// runtime.GOOS cannot be mocked; only the matching platform is checked exactly
			if runtime.GOOS == tt.goos {
				if result != tt.expectedDir {
					t.Errorf("getDefaultLogDir() = %v, want %v", result, tt.expectedDir)
				}
			} else if result == "" {
				t.Error("getDefaultLogDir() returned empty string")
			}
		})
	}
}

func TestGetPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		if getFilePermissions() != 0666 || getDirPermissions() != 0777 {
			t.Error("unexpected Windows permissions")
		}
		return
	}

	if getFilePermissions() != 0600 {
		t.Errorf("getFilePermissions() = %v, want 0600", getFilePermissions())
	}
	if getDirPermissions() != 0755 {
		t.Errorf("getDirPermissions() = %v, want 0755", getDirPermissions())
	}
}

func TestSetupFileLoggerFromEnv(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("PINCTL_LOG_DIR", tempDir)

	setupFileLogger("")
	defer CloseLogger()

	loggerMutex.RLock()
	hasLogger := fileLogger != nil
	loggerMutex.RUnlock()

	if !hasLogger {
		t.Fatal("setupFileLogger() did not create fileLogger")
	}

	if _, err := os.Stat(logFilePath(tempDir)); os.IsNotExist(err) {
		t.Errorf("Expected log file %s was not created", logFilePath(tempDir))
	}
}

func TestConfigureFileLogging(t *testing.T) {
	tempDir := t.TempDir()

	ConfigureFileLogging(true, tempDir)
	if _, err := os.Stat(logFilePath(tempDir)); err != nil {
		t.Fatalf("explicit directory should be used: %v", err)
	}

	ConfigureFileLogging(false, tempDir)

	loggerMutex.RLock()
	defer loggerMutex.RUnlock()
	if fileLogger != nil || logFile != nil {
		t.Error("disabling file logging should close the log file")
	}
}

func TestGetTimestamp(t *testing.T) {
	timestamp := getTimestamp()

	if len(timestamp) != 19 {
		t.Errorf("getTimestamp() returned wrong length: got %d, want 19", len(timestamp))
	}

	if _, err := time.Parse("2006-01-02 15:04:05", timestamp); err != nil {
		t.Errorf("getTimestamp() returned invalid timestamp format: %v", err)
	}
}

func TestLogFunctions(t *testing.T) {
	tempDir := t.TempDir()
	setupFileLogger(tempDir)
	defer CloseLogger()
	console := captureConsole(t)

	tests := []struct {
		name    string
		logFunc func(string, ...interface{})
		level   string
		message string
		args    []interface{}
	}{
		{"LogInfo", LogInfo, "INFO", "Test info message", nil},
		{"LogWarn", LogWarn, "WARN", "Test warning message", nil},
		{"LogError", LogError, "ERROR", "Test error message", nil},
		{"LogDebug", LogDebug, "DEBUG", "Test debug message", nil},
		{"LogSuccess", LogSuccess, "SUCCESS", "Test success message", nil},
		{"LogInfo with args", LogInfo, "INFO", "Sent %s to %d endpoints", []interface{}{"message", 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = os.Truncate(logFilePath(tempDir), 0)
			console.Reset()

			tt.logFunc(tt.message, tt.args...)

			content, err := os.ReadFile(logFilePath(tempDir))
			if err != nil {
				t.Fatalf("Failed to read log file: %v", err)
			}

			expectedMessage := fmt.Sprintf(tt.message, tt.args...)
			if !strings.Contains(string(content), "["+tt.level+"] "+expectedMessage) {
				t.Errorf("Log file does not contain %q: %s", expectedMessage, content)
			}

			if !strings.Contains(console.String(), expectedMessage) {
				t.Errorf("Console output does not contain %q", expectedMessage)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(true)
	if !logger.debugEnabled || logger.noOp {
		t.Error("NewLogger(true) should enable debug and not be noOp")
	}
	if !logger.DebugEnabled() {
		t.Error("DebugEnabled() should be true")
	}

	noop := NewNoOpLogger()
	if !noop.noOp || noop.DebugEnabled() {
		t.Error("NewNoOpLogger() should create a silent logger")
	}
}

func TestLoggerFormatFields(t *testing.T) {
	logger := NewLogger(true)

	tests := []struct {
		name     string
		fields   []interface{}
		expected string
	}{
		{"no fields", []interface{}{}, ""},
		{"single pair", []interface{}{"command", "email send"}, " | command=email send"},
		{"multiple pairs", []interface{}{"region", "us-east-1", "attempt", 1}, " | region=us-east-1 attempt=1"},
		{"odd fields", []interface{}{"key1", "value1", "key2"}, " | key1=value1 key2=<no_value>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := logger.formatFields(tt.fields...); result != tt.expected {
				t.Errorf("formatFields() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	tempDir := t.TempDir()
	setupFileLogger(tempDir)
	defer CloseLogger()
	captureConsole(t)

	tests := []struct {
		name          string
		logger        *Logger
		method        func(*Logger)
		expectedLog   bool
		expectedLevel string
	}{
		{"Info", NewLogger(false), func(l *Logger) { l.Info("test info", "key", "value") }, true, "INFO"},
		{"Debug enabled", NewLogger(true), func(l *Logger) { l.Debug("test debug", "key", "value") }, true, "DEBUG"},
		{"Debug disabled", NewLogger(false), func(l *Logger) { l.Debug("test debug", "key", "value") }, false, "DEBUG"},
		{"Warn", NewLogger(false), func(l *Logger) { l.Warn("test warn", "key", "value") }, true, "WARN"},
		{"Error", NewLogger(false), func(l *Logger) { l.Error("test error", "key", "value") }, true, "ERROR"},
		{"NoOp info", NewNoOpLogger(), func(l *Logger) { l.Info("test info", "key", "value") }, false, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = os.Truncate(logFilePath(tempDir), 0)

			tt.method(tt.logger)

			content, _ := os.ReadFile(logFilePath(tempDir))
			hasLogEntry := strings.Contains(string(content), "["+tt.expectedLevel+"]")

			if tt.expectedLog != hasLogEntry {
				t.Errorf("log entry present = %v, want %v (%s)", hasLogEntry, tt.expectedLog, content)
			}

			if tt.expectedLog && !strings.Contains(string(content), "key=value") {
				t.Error("Log entry should contain formatted fields")
			}
		})
	}
}

func TestConcurrentLogging(t *testing.T) {
	tempDir := t.TempDir()
	setupFileLogger(tempDir)
	defer CloseLogger()
	captureConsole(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logToFile("INFO", fmt.Sprintf("message %d", n))
		}(i)
	}
	wg.Wait()

	content, err := os.ReadFile(logFilePath(tempDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 20 {
		t.Errorf("expected 20 log lines, got %d", len(lines))
	}
}
