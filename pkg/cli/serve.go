package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rzarajczyk/actions-server/pkg/cli/internal/output"
	"github.com/rzarajczyk/actions-server/pkg/cli/internal/parse"
	"github.com/rzarajczyk/actions-server/pkg/config"
	"github.com/rzarajczyk/actions-server/pkg/logging"
)

// serveFlags holds the values bound to the serve command's flags.
type serveFlags struct {
	configPath   string
	port         int
	threads      int
	static       []string
	redirects    []string
	readTimeout  time.Duration
	writeTimeout time.Duration
	logLevel     string
	logFormat    string
	logFile      string
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server (foreground)",
	Long: `Start the server and block until SIGINT or SIGTERM.

Actions come from the configuration file, followed by the actions given with
--static and --redirect in the order they appear. Flags override the values
of the configuration file.`,
	Example: `  # Serve a configuration file
  actions-server serve --config actions.yaml

  # Serve a directory of files on port 3000 with 4 workers
  actions-server serve --port 3000 --threads 4 --static /files=./public

  # Redirect the root to a static page
  actions-server serve --static /static=./public --redirect /=/static/index.html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serveFlagVals.load(cmd)
		if err != nil {
			return err
		}
		return runServer(cfg)
	},
}

func init() {
	serveFlagVals.bind(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func (v *serveFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&v.configPath, "config", "c", "", "Path to a YAML or JSON configuration file")
	f.IntVarP(&v.port, "port", "p", config.DefaultPort, "Port to listen on")
	f.IntVarP(&v.threads, "threads", "t", config.DefaultThreads, "Number of worker threads")
	f.StringArrayVar(&v.static, "static", nil, "Serve files of a directory: /prefix=dir (repeatable)")
	f.StringArrayVar(&v.redirects, "redirect", nil, "Permanent redirect: /from=to (repeatable)")
	f.DurationVar(&v.readTimeout, "read-timeout", 0, "Maximum time to read a request (0 = no limit)")
	f.DurationVar(&v.writeTimeout, "write-timeout", 0, "Maximum time to write a response (0 = no limit)")
	f.StringVar(&v.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&v.logFormat, "log-format", "", "Log format: text, json")
	f.StringVar(&v.logFile, "log-file", "", "Write logs to a size-rotated file")
}

// load builds the effective configuration: the configuration file, if any,
// with explicitly set flags applied on top.
func (f *serveFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.LoadFromFile(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = f.port
	}
	if flags.Changed("threads") {
		cfg.Threads = f.threads
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout = config.Duration(f.readTimeout)
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout = config.Duration(f.writeTimeout)
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	if f.logFile != "" {
		cfg.Logging.File = f.logFile
	}

	for _, s := range f.static {
		prefix, dir, err := parse.Mapping(s)
		if err != nil {
			return nil, fmt.Errorf("--static: %w", err)
		}
		cfg.Actions = append(cfg.Actions, config.ActionConfig{Type: config.ActionStatic, Prefix: prefix, Dir: dir})
	}
	for _, r := range f.redirects {
		from, to, err := parse.Mapping(r)
		if err != nil {
			return nil, fmt.Errorf("--redirect: %w", err)
		}
		cfg.Actions = append(cfg.Actions, config.ActionConfig{Type: config.ActionRedirect, From: from, To: to})
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	if len(cfg.Actions) == 0 {
		output.Warn("no actions configured, every request will be answered with 404")
	}
	return cfg, nil
}

// runServer starts the configured server and blocks until a shutdown signal
// has been handled.
func runServer(cfg *config.Config) error {
	log := logging.New(cfg.Logging.ToLogging())

	srv, err := cfg.NewServer(log)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	stopped := make(chan error, 1)
	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, shutting down", "signal", sig.String())
			stopped <- srv.Stop()
		case <-srv.Done():
			stopped <- nil
		}
	}()

	output.Success("actions-server listening on %s (%d threads, %d actions)", srv.Addr(), srv.ThreadCount(), len(cfg.Actions))

	if err := srv.Start(true); err != nil {
		_ = srv.Stop()
		return err
	}
	if err := <-stopped; err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	output.Info("server stopped")
	return nil
}
