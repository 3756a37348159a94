package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/marinerlabs/tidedb/internal/harmonics"
)

// NewHarmonicsCommand creates the harmonics command group.
func NewHarmonicsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harmonics",
		Short: "Read and write full station documents",
	}

	cmd.AddCommand(newHarmonicsGetCommand(rootOpts))
	cmd.AddCommand(newHarmonicsPutCommand(rootOpts))

	return cmd
}

func newHarmonicsGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <station>",
		Short: "Fetch one station as a JSON document",
		Long: `Fetch the full harmonic document for one station.

The station may be addressed by external id ("<context>:<stationId>") or by
the index number shown by the locations command.

Example:
  tidedb harmonics get --db ./harmonics.db "NOAA:8443970"
  tidedb harmonics get --db ./harmonics.db 42`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarmonicsGet(rootOpts, args[0], cmd)
		},
	}
}

func runHarmonicsGet(opts *RootOptions, stationKey string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	env, err := OpenEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	index, err := env.Cache.Resolve(stationKey)
	if err != nil {
		return formatter.FailDocument(harmonics.NotFound(stationKey, err))
	}

	doc, err := env.Translator.Document(index)
	if err != nil {
		return formatter.FailDocument(err)
	}
	return formatter.Success(doc)
}

func newHarmonicsPutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "put <document.json>",
		Short: "Insert or update a station from a JSON document",
		Long: `Apply a station document to the stores.

A document carrying a known identity (matching "source.context" and
"source.stationId", or an explicit index) updates that station in place;
otherwise a new station is added to the default store. Use "-" to read the
document from stdin.

Example:
  tidedb harmonics put --db ./harmonics.db newport.json
  cat newport.json | tidedb harmonics put --db ./harmonics.db -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarmonicsPut(rootOpts, args[0], cmd)
		},
	}
}

func runHarmonicsPut(opts *RootOptions, docPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := readDocumentFile(docPath, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "read document", err)
	}

	var doc harmonics.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return WrapExitError(ExitFailure, "parse document", err)
	}

	env, err := OpenEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	index, err := env.Translator.Apply(&doc)
	if err != nil {
		return formatter.FailDocument(err)
	}
	return formatter.Success(harmonics.Result(index, nil))
}

// readDocumentFile reads a document from a path, or from stdin for "-".
func readDocumentFile(path string, cmd *cobra.Command) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
