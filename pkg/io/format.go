package io

import (
	"path/filepath"
	"strings"

	metroerrors "github.com/matzehuels/metro/pkg/errors"
)

// Format is a script encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported script formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", metroerrors.New(metroerrors.ErrCodeInvalidFormat, "unknown script format %q (want json, yaml or toml)", s)
}

// FormatFromPath derives the script format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", metroerrors.New(metroerrors.ErrCodeInvalidFormat, "cannot determine script format of %q: no extension", path)
	}
	return ParseFormat(ext)
}
