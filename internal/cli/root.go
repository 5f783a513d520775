// Package cli implements the sparsectl command line.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sparsefields/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	ModelsDir string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for sparsectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sparsectl",
		Short: "Resolve sparse fieldsets against YAML field maps",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			// события логгера уходят в stderr, чтобы не портить JSON
			if opts.Verbose {
				logger.SetOutput(cmd.ErrOrStderr())
				logger.SetDebug(true)
			} else {
				logger.SetOutput(io.Discard)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ModelsDir, "models", "./db", "directory with *.yml field maps")

	cmd.AddCommand(NewColumnsCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
