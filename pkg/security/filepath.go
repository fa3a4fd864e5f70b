package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateFilePath ensures the path is within the allowed base directory (CWE-22)
func ValidateFilePath(targetPath, baseDir string) error {
	cleanTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("failed to resolve target path: %w", err)
	}

	cleanBase, err := filepath.Abs(filepath.Clean(baseDir))
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	relPath, err := filepath.Rel(cleanBase, cleanTarget)
	if err != nil {
		return fmt.Errorf("failed to compute relative path: %w", err)
	}

	if containsDirectoryTraversal(relPath) {
		return fmt.Errorf("path escapes base directory: %s", targetPath)
	}

	return nil
}

// ContainsUnsafePath reports whether a user-supplied path carries traversal segments,
// null bytes or doubled separators. The check runs on the raw string so that
// filepath.Clean cannot normalize an attack away first.
func ContainsUnsafePath(path string) bool {
	if path == "" {
		return false
	}

	if strings.ContainsRune(path, 0) {
		return true
	}

	if strings.Contains(path, "//") || strings.Contains(path, `\\`) {
		return true
	}

	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, segment := range segments {
		if segment == ".." {
			return true
		}
	}

	return false
}

// containsDirectoryTraversal checks a relative path (as produced by filepath.Rel) for
// patterns that escape the base directory, for both Unix and Windows separators.
func containsDirectoryTraversal(relPath string) bool {
	if filepath.IsAbs(relPath) || relPath == ".." {
		return true
	}

	hasParentPrefix := strings.HasPrefix(relPath, "../") || strings.HasPrefix(relPath, "..\\")
	hasEmbeddedParent := strings.Contains(relPath, "/../") || strings.Contains(relPath, "\\..\\")
	hasParentSuffix := strings.HasSuffix(relPath, "/..") || strings.HasSuffix(relPath, "\\..")

	return hasParentPrefix || hasEmbeddedParent || hasParentSuffix
}
