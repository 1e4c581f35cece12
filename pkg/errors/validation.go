package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentName validates a stored document name for safety.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "document name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "document name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "document name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "document name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateSourceURL validates an image source URL for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateSourceURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "source URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "source URL must use http or https scheme")
	}

	return nil
}
