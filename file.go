// FILE: lixenwraith/deconfig/file.go
package deconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Supported formats for FileAdapter
const (
	FormatAuto = "auto"
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FileOption configures a FileAdapter.
type FileOption func(a *FileAdapter)

// FileFormat forces the file format instead of detecting it.
func FileFormat(format string) FileOption {
	return func(a *FileAdapter) {
		a.format = format
	}
}

type fileKeyOption struct{}

// FileKey overrides the dotted key looked up for a field in file documents.
func FileKey(key string) Modifier {
	return func(m *MethodBuilder) {
		m.Option(fileKeyOption{}, key)
	}
}

// FileAdapter resolves fields from a TOML, YAML or JSON document. Dotted field
// names address nested tables. The file is read on every access and a
// missing file reports every field as not found.
type FileAdapter struct {
	path   string
	format string
}

// NewFileAdapter creates an adapter over path. The format is detected from
// the extension, then from the content, unless FileFormat is given.
func NewFileAdapter(path string, opts ...FileOption) *FileAdapter {
	a := &FileAdapter{path: path, format: FormatAuto}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements Named.
func (a *FileAdapter) Name() string { return "file:" + filepath.Base(a.path) }

// Path returns the configured file path.
func (a *FileAdapter) Path() string { return a.path }

// GetField implements Adapter.
func (a *FileAdapter) GetField(name string, field *Field, _ ...any) (any, error) {
	key := name
	if v, ok := field.Option(fileKeyOption{}); ok {
		key = v.(string)
	}

	doc, err := a.load()
	if err != nil {
		return nil, err
	}

	value, ok := lookupPath(doc, key)
	if !ok {
		return nil, notFoundf("key %s not found in %s", key, a.path)
	}
	return value, nil
}

// load reads and parses the file
func (a *FileAdapter) load() (map[string]any, error) {
	fileData, err := os.ReadFile(a.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFoundf("config file '%s' does not exist", a.path)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", a.path, err)
	}

	format := a.format
	if format == "" || format == FormatAuto {
		// Try extension first
		format = detectFileFormat(a.path)
		if format == "" {
			format = detectFormatFromContent(fileData)
		}
	}

	doc := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(fileData, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config file '%s': %w", a.path, err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(fileData))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file '%s': %w", a.path, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(fileData, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", a.path, err)
		}
	default:
		return nil, fmt.Errorf("unable to determine config format for file '%s'", a.path)
	}

	return doc, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// JSON first, YAML accepts it too
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return ""
}
