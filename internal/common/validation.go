package common

import (
	"fmt"
	"slices"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// ValidateContentSize rejects input text larger than the configured limit.
// A limit of zero or less means unlimited.
func ValidateContentSize(name string, content string, maxBytes int64) error {
	if maxBytes <= 0 {
		return nil
	}
	if int64(len(content)) > maxBytes {
		return fmt.Errorf("%s exceeds maximum size of %d bytes (got %d)", name, maxBytes, len(content))
	}
	return nil
}

// GetSupportedFormats returns the list of supported formats
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
