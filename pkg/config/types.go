package config

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rzarajczyk/actions-server/pkg/logging"
)

// Defaults applied by Default and LoadFromFile.
const (
	DefaultPort    = 8080
	DefaultThreads = 10
)

// Action types.
const (
	ActionJSON     = "json"
	ActionRedirect = "redirect"
	ActionStatic   = "static"
	ActionUpload   = "upload"
)

// Config is the server configuration file.
type Config struct {
	// Port to listen on. 0 picks a free port.
	Port int `json:"port" yaml:"port"`
	// Threads is the number of workers serving connections.
	Threads int `json:"threads" yaml:"threads"`
	// ReadTimeout bounds reading a request. Zero disables it.
	ReadTimeout Duration `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	// WriteTimeout bounds writing a response. Zero disables it.
	WriteTimeout Duration `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
	// Logging configures the operational log.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	// Include lists doublestar globs of files contributing more actions.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
	// Actions in match priority order.
	Actions []ActionConfig `json:"actions" yaml:"actions"`
}

// LoggingConfig configures the operational log.
type LoggingConfig struct {
	Level      string `json:"level" yaml:"level"`
	Format     string `json:"format" yaml:"format"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty" yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `json:"maxBackups,omitempty" yaml:"maxBackups,omitempty"`
	MaxAgeDays int    `json:"maxAgeDays,omitempty" yaml:"maxAgeDays,omitempty"`
	Compress   bool   `json:"compress,omitempty" yaml:"compress,omitempty"`
	// Console keeps writing to stderr when File is set.
	Console bool `json:"console,omitempty" yaml:"console,omitempty"`
}

// ActionConfig describes one action. Which fields apply depends on Type.
type ActionConfig struct {
	Type string `json:"type" yaml:"type"`

	// json
	Method  string `json:"method,omitempty" yaml:"method,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
	// Echo makes a json action answer with the request's params (and body,
	// for POST) instead of Payload.
	Echo bool `json:"echo,omitempty" yaml:"echo,omitempty"`

	// redirect
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`

	// static
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// static, upload
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// upload
	Redirect string `json:"redirect,omitempty" yaml:"redirect,omitempty"`

	// baseDir resolves a relative Dir. It is the directory of the file the
	// action was declared in.
	baseDir string
}

// Default returns a configuration with default values and no actions.
func Default() *Config {
	return &Config{
		Port:    DefaultPort,
		Threads: DefaultThreads,
		Logging: LoggingConfig{
			Level:      "info",
			Format:     string(logging.FormatText),
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// ToLogging converts the logging section into a logging.Config.
func (l LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(l.Level)
	cfg.Format = logging.ParseFormat(l.Format)
	cfg.Console = l.Console
	cfg.File = logging.FileConfig{
		Path:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
	return cfg
}

// Duration is a time.Duration written as a Go duration string ("30s", "1m").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	return d.parse(s)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}
