// FILE: pymodule/config/loader.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the file read when no --config option is given.
const DefaultConfigFile = "config.toml"

// FileDescriptor names the configuration file for one resolution.
// An empty Path means no file was requested. That is a deliberate bypass and not an error.
type FileDescriptor struct {
	Path string
}

// FileAt requests the file at path.
func FileAt(path string) FileDescriptor { return FileDescriptor{Path: path} }

// NoFile requests that no configuration file be read.
func NoFile() FileDescriptor { return FileDescriptor{} }

// Requested reports whether a file should be read.
func (f FileDescriptor) Requested() bool { return f.Path != "" }

func (f FileDescriptor) String() string {
	if !f.Requested() {
		return "<none>"
	}
	return f.Path
}

// LoadFile reads and parses the configuration file named by fd.
// The format follows the extension: .toml/.tml, .json, .yaml/.yml. Any other
// extension is detected from the content, trying JSON, YAML and TOML in turn. A missing file yields *NotFoundError and a
// malformed one *ParseError. When no file is requested the result is an empty
// tree and no error.
func LoadFile(fd FileDescriptor) (Tree, error) {
	if !fd.Requested() {
		return Tree{}, nil
	}
	path := fd.Path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var doc map[string]any
	format := detectFileFormat(path)
	if format == "" {
		format, doc, err = sniffDocument(data)
	} else {
		doc, err = decodeDocument(format, data)
	}
	if err != nil {
		return nil, newParseError(path, format, err)
	}

	tree, err := FromNative(doc)
	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}
	return tree, nil
}

// decodeDocument parses raw file data into a nested map.
func decodeDocument(format string, data []byte) (map[string]any, error) {
	doc := make(map[string]any)
	switch format {
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Integers must not pass through float64
		if err := decoder.Decode(&doc); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func newParseError(path, format string, err error) *ParseError {
	perr := &ParseError{Path: path, Format: format, Err: err}

	// Only the TOML parser reports a structured position; YAML and JSON
	// errors carry it in their message.
	var tomlErr toml.ParseError
	if errors.As(err, &tomlErr) {
		perr.Line = tomlErr.Position.Line
	}
	return perr
}

// detectFileFormat determines format from file extension. It returns "" when
// the extension does not name a format.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// sniffDocument decodes data as JSON, then YAML (a superset of JSON, so
// checked after it), then TOML, keeping the first that yields a table.
// When none does, the TOML error is reported.
func sniffDocument(data []byte) (string, map[string]any, error) {
	var err error
	for _, format := range []string{"json", "yaml", "toml"} {
		var doc map[string]any
		if doc, err = decodeDocument(format, data); err == nil {
			return format, doc, nil
		}
	}
	return "toml", nil, err
}
