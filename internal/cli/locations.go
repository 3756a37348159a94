package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/marinerlabs/tidedb/internal/harmonics"
	"github.com/marinerlabs/tidedb/internal/station"
)

// LocationsOptions holds flags for the locations command.
type LocationsOptions struct {
	*RootOptions
	Type          string
	ReferenceOnly bool
	Name          string
}

// NewLocationsCommand creates the locations command.
func NewLocationsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LocationsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List known stations",
		Long: `List every station across the configured stores in canonical order.

Each entry carries the station index and external id used to address the
station in other commands.

Example:
  tidedb locations --db ./harmonics.db
  tidedb locations --db ./harmonics.db --type current --reference-only`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocations(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "only stations of this type (tide|current)")
	cmd.Flags().BoolVar(&opts.ReferenceOnly, "reference-only", false, "only reference stations")
	cmd.Flags().StringVar(&opts.Name, "name", "", "only stations whose name contains this text")

	return cmd
}

func runLocations(opts *LocationsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	filter := station.ParseTypeFilter(opts.Type)

	env, err := OpenEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	nameNeedle := strings.ToLower(opts.Name)

	summaries := make([]harmonics.Summary, 0, env.Dir.Len())
	for _, ref := range env.Dir.All() {
		if !filter.Qualifies(ref) {
			continue
		}
		if opts.ReferenceOnly && !ref.IsReferenceStation {
			continue
		}
		if nameNeedle != "" && !strings.Contains(strings.ToLower(ref.Name), nameNeedle) {
			continue
		}
		summaries = append(summaries, env.Translator.Summarize(ref))
	}

	formatter.VerboseLog("%d of %d stations matched", len(summaries), env.Dir.Len())
	return formatter.Success(summaries)
}
