package cli

import (
	"github.com/spf13/cobra"

	"github.com/marinerlabs/tidedb/internal/schema"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the station document JSON Schema",
		Long: `Print the JSON Schema describing station documents.

The enumerations (countries, timezones, units, datums, constituents) are
read from the configured default store, so the schema always matches what
the stores will accept.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, cmd)
		},
	}
}

func runSchema(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := OpenEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	return formatter.Success(schema.Build(env.Vocab))
}
