// Package paramio serializes parameter sets to files and loads them back,
// routing loaded values through a store's gatekeeping.
package paramio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a parameter serialization format.
type Format string

const (
	// FormatCSV produces parameter,value rows with a header.
	FormatCSV Format = "csv"

	// FormatCSVRow produces a header row of names and a row of values.
	FormatCSVRow Format = "csvrow"

	// FormatJSON produces a JSON document keyed by parameter name.
	FormatJSON Format = "json"

	// FormatYAML produces a YAML document keyed by parameter name.
	FormatYAML Format = "yaml"

	// FormatGob produces a binary document that keeps native value types.
	FormatGob Format = "gob"
)

// FormatInfo provides metadata about a serialization format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatCSV: {
		Name:        FormatCSV,
		MIMEType:    "text/csv",
		Extension:   ".csv",
		Description: "CSV - one parameter,value pair per row",
	},
	FormatCSVRow: {
		Name:        FormatCSVRow,
		MIMEType:    "text/csv",
		Extension:   ".csv",
		Description: "CSV - header row of names, data rows of values",
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON - document keyed by parameter name",
	},
	FormatYAML: {
		Name:        FormatYAML,
		MIMEType:    "application/yaml",
		Extension:   ".yaml",
		Description: "YAML - document keyed by parameter name",
	},
	FormatGob: {
		Name:        FormatGob,
		MIMEType:    "application/octet-stream",
		Extension:   ".gob",
		Description: "gob - binary document keeping native value types",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// FormatForExtension picks the format a file extension names. The extension
// matches with or without its leading dot, case-insensitively.
func FormatForExtension(ext string) (Format, error) {
	normalized := strings.ToLower(strings.TrimPrefix(ext, "."))
	switch normalized {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "gob":
		return FormatGob, nil
	}
	return "", &UnsupportedFormatError{Source: ext}
}

// FormatForPath picks the format a path's extension names.
func FormatForPath(path string) (Format, error) {
	format, err := FormatForExtension(filepath.Ext(path))
	if err != nil {
		return "", &UnsupportedFormatError{Source: path}
	}
	return format, nil
}

// UnsupportedFormatError reports a path or format tag no codec handles.
type UnsupportedFormatError struct {
	Source string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("paramio: unsupported file format for parameter loading: %s", e.Source)
}
