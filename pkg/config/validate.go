package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// FieldError is a single configuration validation error.
type FieldError struct {
	Field   string // Config path, e.g. "actions[0].path"
	Message string
}

func (e FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult collects every validation error of a Config.
type ValidationResult struct {
	Errors []FieldError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns all messages, one per line.
func (r *ValidationResult) Error() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// Validate checks the configuration. The returned error is a
// *ValidationResult listing every problem found.
func (c *Config) Validate() error {
	result := &ValidationResult{}

	if c.Port < 0 || c.Port > 65535 {
		result.AddError("port", fmt.Sprintf("invalid port %d, must be 0-65535", c.Port))
	}
	if c.Threads < 1 {
		result.AddError("threads", fmt.Sprintf("invalid thread count %d, must be at least 1", c.Threads))
	}
	if c.ReadTimeout < 0 {
		result.AddError("readTimeout", "must not be negative")
	}
	if c.WriteTimeout < 0 {
		result.AddError("writeTimeout", "must not be negative")
	}

	for i := range c.Actions {
		c.Actions[i].validate(fmt.Sprintf("actions[%d]", i), result)
	}

	if result.IsValid() {
		return nil
	}
	return result
}

func (a *ActionConfig) validate(field string, result *ValidationResult) {
	switch a.Type {
	case ActionJSON:
		if a.Method != "" && a.Method != http.MethodGet && a.Method != http.MethodPost {
			result.AddError(field+".method", fmt.Sprintf("unsupported method %q, expected GET or POST", a.Method))
		}
		validatePath(a.Path, field+".path", result)
	case ActionRedirect:
		validatePath(a.From, field+".from", result)
		if a.To == "" {
			result.AddError(field+".to", "required")
		}
	case ActionStatic:
		validatePath(a.Prefix, field+".prefix", result)
		validateDir(a.ResolvedDir(), field+".dir", result)
	case ActionUpload:
		validatePath(a.Path, field+".path", result)
		validateDir(a.ResolvedDir(), field+".dir", result)
		if a.Redirect == "" {
			result.AddError(field+".redirect", "required")
		}
	case "":
		result.AddError(field+".type", "required")
	default:
		result.AddError(field+".type", fmt.Sprintf("unknown action type %q", a.Type))
	}
}

func validatePath(path, field string, result *ValidationResult) {
	switch {
	case path == "":
		result.AddError(field, "required")
	case !strings.HasPrefix(path, "/"):
		result.AddError(field, fmt.Sprintf("%q must start with /", path))
	}
}

func validateDir(dir, field string, result *ValidationResult) {
	if dir == "" {
		result.AddError(field, "required")
		return
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			result.AddError(field, fmt.Sprintf("directory does not exist: %s", dir))
			return
		}
		result.AddError(field, fmt.Sprintf("cannot access directory: %v", err))
		return
	}
	if !info.IsDir() {
		result.AddError(field, fmt.Sprintf("not a directory: %s", dir))
	}
}
