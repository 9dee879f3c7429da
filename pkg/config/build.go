package config

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/rzarajczyk/actions-server/pkg/action"
	"github.com/rzarajczyk/actions-server/pkg/engine"
	"github.com/rzarajczyk/actions-server/pkg/upload"
)

// ResolvedDir returns Dir, resolved against the directory of the file that
// declared the action when it is relative.
func (a *ActionConfig) ResolvedDir() string {
	if a.Dir == "" || filepath.IsAbs(a.Dir) || a.baseDir == "" {
		return a.Dir
	}
	return filepath.Join(a.baseDir, a.Dir)
}

// BuildActions creates the configured actions in order.
func (c *Config) BuildActions() ([]action.Action, error) {
	actions := make([]action.Action, 0, len(c.Actions))
	for i := range c.Actions {
		a, err := c.Actions[i].Build()
		if err != nil {
			return nil, fmt.Errorf("actions[%d]: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Build creates the action described by a.
func (a *ActionConfig) Build() (action.Action, error) {
	switch a.Type {
	case ActionJSON:
		return a.buildJSON(), nil
	case ActionRedirect:
		return action.NewRedirect(a.From, a.To), nil
	case ActionStatic:
		return action.NewStaticResources(a.Prefix, a.ResolvedDir()), nil
	case ActionUpload:
		return a.buildUpload(), nil
	default:
		return nil, fmt.Errorf("unknown action type %q", a.Type)
	}
}

func (a *ActionConfig) buildJSON() action.Action {
	payload, echo := a.Payload, a.Echo
	if a.Method == http.MethodPost {
		return action.NewJSONPost(a.Path, func(params url.Values, body any) (any, error) {
			if echo {
				return map[string]any{"params": params, "body": body}, nil
			}
			return payload, nil
		})
	}
	return action.NewJSONGet(a.Path, func(params url.Values) (any, error) {
		if echo {
			return map[string]any{"params": params}, nil
		}
		return payload, nil
	})
}

// buildUpload saves every uploaded part into the action's directory under
// the client's file name, or the form field name when none was sent.
func (a *ActionConfig) buildUpload() action.Action {
	dir := a.ResolvedDir()
	location := a.Redirect
	return action.NewUploadThenRedirect(a.Path, func(_ url.Values, files map[string]*upload.File) (string, error) {
		for _, f := range files {
			name := f.FileName
			if name == "" {
				name = f.FormName
			}
			name = filepath.Base(name)
			if name == "." || name == ".." || name == string(filepath.Separator) {
				return "", action.Validationf("invalid upload file name %q", f.FileName)
			}
			if err := f.SaveAs(filepath.Join(dir, name)); err != nil {
				return "", err
			}
		}
		return location, nil
	})
}

// ServerOptions returns the engine options matching the configuration.
func (c *Config) ServerOptions(log *slog.Logger) []engine.ServerOption {
	return []engine.ServerOption{
		engine.WithThreadCount(c.Threads),
		engine.WithReadTimeout(c.ReadTimeout.Std()),
		engine.WithWriteTimeout(c.WriteTimeout.Std()),
		engine.WithLogger(log),
	}
}

// NewServer builds the configured actions and binds a server for them.
func (c *Config) NewServer(log *slog.Logger) (*engine.Server, error) {
	actions, err := c.BuildActions()
	if err != nil {
		return nil, err
	}
	return engine.NewServer(c.Port, actions, c.ServerOptions(log)...)
}
