package cli

import (
	"github.com/spf13/cobra"

	"github.com/marinerlabs/tidedb/internal/geo"
	"github.com/marinerlabs/tidedb/internal/harmonics"
	"github.com/marinerlabs/tidedb/internal/nearest"
	"github.com/marinerlabs/tidedb/internal/station"
)

// NearestOptions holds flags for the nearest command.
type NearestOptions struct {
	*RootOptions
	Lat           float64
	Lng           float64
	Count         int
	Type          string
	ReferenceOnly bool
}

// NearestEntry is one result row: a station summary plus its great-circle
// distance from the origin in kilometers.
type NearestEntry struct {
	DistanceKm float64           `json:"distanceKm"`
	Station    harmonics.Summary `json:"station"`
}

// NewNearestCommand creates the nearest command.
func NewNearestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NearestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "Find the stations closest to a position",
		Long: `Find the stations closest to a geographic position, ordered by
great-circle distance.

Example:
  tidedb nearest --db ./harmonics.db --lat 41.5 --lng -71.3 --count 5
  tidedb nearest --db ./harmonics.db --lat 41.5 --lng -71.3 --type current --reference-only`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNearest(opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Lat, "lat", 0, "origin latitude in signed degrees (required)")
	cmd.Flags().Float64Var(&opts.Lng, "lng", 0, "origin longitude in signed degrees (required)")
	cmd.Flags().IntVar(&opts.Count, "count", 10, "maximum number of stations to return")
	cmd.Flags().StringVar(&opts.Type, "type", "", "only stations of this type (tide|current)")
	cmd.Flags().BoolVar(&opts.ReferenceOnly, "reference-only", false, "only reference stations")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}

func runNearest(opts *NearestOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	filter := station.ParseTypeFilter(opts.Type)

	env, err := OpenEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	origin := geo.Point{Lat: opts.Lat, Lng: opts.Lng}
	finder := nearest.New(origin, opts.Count)
	for _, ref := range env.Dir.All() {
		if !filter.Qualifies(ref) {
			continue
		}
		if opts.ReferenceOnly && !ref.IsReferenceStation {
			continue
		}
		finder.Check(ref)
	}

	results := make([]NearestEntry, 0, finder.Count())
	for _, entry := range finder.Entries() {
		results = append(results, NearestEntry{
			DistanceKm: entry.Distance,
			Station:    env.Translator.Summarize(entry.Ref),
		})
	}

	formatter.VerboseLog("%d stations within reach of (%g, %g)", len(results), opts.Lat, opts.Lng)
	return formatter.Success(results)
}
