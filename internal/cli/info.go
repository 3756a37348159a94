package cli

import (
	"github.com/spf13/cobra"

	"github.com/marinerlabs/tidedb/internal/harmonics"
)

// StoreInfo describes one configured store.
type StoreInfo struct {
	Path   string           `json:"path"`
	Header harmonics.Header `json:"header"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show store headers",
		Long: `Show the header of every configured store: schema revision, covered
year span, and record count.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, cmd)
		},
	}
}

func runInfo(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := OpenEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	infos := make([]StoreInfo, 0, len(env.Set.Paths()))
	for _, path := range env.Set.Paths() {
		st, err := env.Set.Store(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "open store "+path, err)
		}
		hdr, err := st.Header()
		if err != nil {
			return WrapExitError(ExitCommandError, "read header of "+path, err)
		}
		infos = append(infos, StoreInfo{Path: path, Header: hdr})
	}

	return formatter.Success(infos)
}
