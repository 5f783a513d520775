package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"sparsefields/internal/model"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Models []string `json:"models,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "validate [models-dir]",
		Short:         "Load and link field maps without resolving anything",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := rootOpts.ModelsDir
			if len(args) == 1 {
				dir = args[0]
			}
			return runValidate(rootOpts, dir, cmd)
		},
	}
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	res := ValidationResult{Valid: true}
	loadErr := model.InitRegistry(dir)
	if loadErr != nil {
		res.Valid = false
		res.Error = loadErr.Error()
	} else {
		for name := range model.Registry {
			res.Models = append(res.Models, name)
		}
		sort.Strings(res.Models)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		if err := json.NewEncoder(out).Encode(res); err != nil {
			return err
		}
	} else if res.Valid {
		fmt.Fprintf(out, "✓ %d model(s) valid\n", len(res.Models))
	} else {
		fmt.Fprintf(out, "✗ %s\n", res.Error)
	}
	return loadErr
}
