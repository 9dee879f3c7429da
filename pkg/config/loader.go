package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrInvalidInclude   = errors.New("included file may only contain actions")
)

// LoadFromFile reads a configuration from a JSON or YAML file, checks it
// against the schema, appends the actions of included files and validates
// the result. Unset fields keep their Default values.
func LoadFromFile(path string) (*Config, error) {
	doc, data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := Default()
	if err := decodeInto(data, path, cfg); err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	for i := range cfg.Actions {
		cfg.Actions[i].baseDir = baseDir
	}

	included, err := loadIncludes(cfg.Include, baseDir, path)
	if err != nil {
		return nil, err
	}
	cfg.Actions = append(cfg.Actions, included...)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// readDocument reads path and decodes it into a generic document. data is the
// document re-encoded as JSON.
func readDocument(path string) (any, []byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	var doc any
	if isYAML(path) {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("%w in %s: %v", ErrInvalidYAML, path, err)
		}
		doc = normalizeYAML(doc)
	} else {
		if !json.Valid(raw) {
			return nil, nil, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("%w in %s: %v", ErrInvalidJSON, path, err)
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert %s: %w", path, err)
	}
	return doc, data, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// normalizeYAML replaces the map[any]any values yaml.v3 produces for
// non-string keys with map[string]any so the document can be encoded as JSON.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}

func decodeInto(data []byte, path string, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// includeFile is the shape of a file named by an include glob.
type includeFile struct {
	Actions []ActionConfig `json:"actions"`
}

// loadIncludes expands patterns relative to baseDir and returns the actions
// of every matched file, in sorted file order. self is skipped.
func loadIncludes(patterns []string, baseDir, self string) ([]ActionConfig, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	selfAbs, _ := filepath.Abs(self)
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		resolved := pattern
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(baseDir, pattern)
		}
		matches, err := doublestar.FilepathGlob(resolved)
		if err != nil {
			return nil, fmt.Errorf("expanding include pattern %q: %w", pattern, err)
		}
		// Not an error when nothing matches.
		slices.Sort(matches)
		for _, match := range matches {
			abs, _ := filepath.Abs(match)
			if abs == selfAbs || seen[abs] {
				continue
			}
			seen[abs] = true
			files = append(files, match)
		}
	}

	var actions []ActionConfig
	for _, file := range files {
		loaded, err := loadIncludeFile(file)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", file, err)
		}
		actions = append(actions, loaded...)
	}
	return actions, nil
}

func loadIncludeFile(path string) ([]ActionConfig, error) {
	doc, data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrInvalidInclude
	}
	for key := range m {
		if key != "actions" {
			return nil, fmt.Errorf("%w: unexpected key %q", ErrInvalidInclude, key)
		}
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var inc includeFile
	if err := decodeInto(data, path, &inc); err != nil {
		return nil, err
	}
	baseDir := filepath.Dir(path)
	for i := range inc.Actions {
		inc.Actions[i].baseDir = baseDir
	}
	return inc.Actions, nil
}
