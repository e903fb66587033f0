package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxTextLen bounds station and note labels.
const maxTextLen = 4096

// ValidateText validates a station or note label.
//
// A label is written verbatim after the glyph run of its row, so it must not
// contain line breaks (a label spanning lines would break the one-row-per-line
// structure of the diagram) or other control characters except tab.
func ValidateText(text string) error {
	if len(text) > maxTextLen {
		return New(ErrCodeInvalidText, "text too long (max %d bytes)", maxTextLen)
	}
	for _, r := range text {
		if r == '\n' || r == '\r' {
			return New(ErrCodeInvalidText, "text must not contain line breaks: %q", text)
		}
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidText, "text contains invalid control characters: %q", text)
		}
	}
	return nil
}

// ValidateScriptPath validates a script path given on the command line.
// "-" denotes standard input and is always accepted.
func ValidateScriptPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "script path cannot be empty")
	}
	if path == "-" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "script path contains a null byte")
	}
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "script path must be a file, got directory %q", path)
	}
	return nil
}
