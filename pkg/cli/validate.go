package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzarajczyk/actions-server/pkg/cli/internal/output"
	"github.com/rzarajczyk/actions-server/pkg/config"
)

// ValidateOutput represents JSON output format of the validate command.
type ValidateOutput struct {
	Valid   bool            `json:"valid"`
	Port    int             `json:"port"`
	Threads int             `json:"threads"`
	Actions []ActionSummary `json:"actions"`
}

// ActionSummary describes one configured action.
type ActionSummary struct {
	Type   string `json:"type"`
	Route  string `json:"route"`
	Target string `json:"target,omitempty"`
}

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file and list its actions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(validateConfigPath)
		if err != nil {
			return err
		}
		if _, err := cfg.BuildActions(); err != nil {
			return err
		}

		out := summarize(cfg)
		if jsonOutput {
			return output.JSON(out)
		}

		output.Success("Configuration is valid: %d actions, port %d, %d threads", len(out.Actions), out.Port, out.Threads)
		if len(out.Actions) == 0 {
			return nil
		}
		tw := output.Table()
		fmt.Fprintln(tw, "#\tTYPE\tROUTE\tTARGET")
		for i, a := range out.Actions {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, a.Type, a.Route, a.Target)
		}
		return tw.Flush()
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigPath, "config", "c", "", "Path to a YAML or JSON configuration file")
	_ = validateCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(validateCmd)
}

func summarize(cfg *config.Config) ValidateOutput {
	out := ValidateOutput{
		Valid:   true,
		Port:    cfg.Port,
		Threads: cfg.Threads,
		Actions: make([]ActionSummary, 0, len(cfg.Actions)),
	}
	for _, a := range cfg.Actions {
		s := ActionSummary{Type: a.Type}
		switch a.Type {
		case config.ActionJSON:
			method := a.Method
			if method == "" {
				method = "GET"
			}
			s.Route = method + " " + a.Path
		case config.ActionRedirect:
			s.Route, s.Target = a.From, a.To
		case config.ActionStatic:
			s.Route, s.Target = a.Prefix, a.ResolvedDir()
		case config.ActionUpload:
			s.Route, s.Target = "POST "+a.Path, a.ResolvedDir()+" -> "+a.Redirect
		}
		out.Actions = append(out.Actions, s)
	}
	return out
}
