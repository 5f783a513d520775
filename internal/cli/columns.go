package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sparsefields/internal/model"
	"sparsefields/internal/resolver"
	"sparsefields/internal/sparse"
)

type columnsOptions struct {
	Fields    string
	Relations []string
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &columnsOptions{}

	cmd := &cobra.Command{
		Use:   "columns <model>",
		Short: "Resolve requested fields and relations to columns",
		Long: `Resolve a sparse fieldset against the model's field map and print the
columns plus the SQL that would load the model and its relations.

  sparsectl columns Post --fields title,body --relation author:name --relation tags`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fields, "fields", "", "comma-separated fields of the model")
	// StringArray, а не StringSlice: запятые внутри "rel:a,b" значимы
	cmd.Flags().StringArrayVarP(&opts.Relations, "relation", "r", nil, "relation spec, e.g. author:name,email (repeatable)")

	return cmd
}

func runColumns(rootOpts *RootOptions, opts *columnsOptions, modelName string, cmd *cobra.Command) error {
	if err := model.InitRegistry(rootOpts.ModelsDir); err != nil {
		return err
	}

	params := sparse.Params{}
	if opts.Fields != "" {
		params["fields"] = opts.Fields
	}
	if len(opts.Relations) > 0 {
		params["relations"] = opts.Relations
	}

	res, err := resolver.Resolve(cmd.Context(), modelName, params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rootOpts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return writeColumnsText(out, res)
}

func writeColumnsText(w io.Writer, res *resolver.ColumnsResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", res.Model, strings.Join(res.Columns, ", "))
	for _, rel := range res.Relations {
		fmt.Fprintf(&b, "  %s: %s\n", rel.Name, strings.Join(rel.Columns, ", "))
	}
	for _, name := range res.Skipped {
		fmt.Fprintf(&b, "  %s: skipped (not defined)\n", name)
	}
	b.WriteString("\n")
	for _, q := range res.Queries {
		if q.Name == "" {
			fmt.Fprintf(&b, "%s;\n", q.SQL)
			continue
		}
		fmt.Fprintf(&b, "-- %s\n%s;\n", q.Name, q.SQL)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
