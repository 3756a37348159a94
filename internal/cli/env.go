package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/marinerlabs/tidedb/internal/harmonics"
	"github.com/marinerlabs/tidedb/internal/station"
	"github.com/marinerlabs/tidedb/internal/tcdb"
)

// Env bundles the open stores and the in-memory layers every data command
// needs. Callers must Close it when done.
type Env struct {
	Set        *tcdb.Set
	Dir        *station.Directory
	Cache      *station.Cache
	Vocab      harmonics.Vocabulary
	Translator *harmonics.Translator
	Log        *slog.Logger
}

// OpenEnv opens the configured stores and wires the directory, identity
// cache, and translator on top of them.
func OpenEnv(opts *RootOptions) (*Env, error) {
	log := newLogger(opts)

	paths, err := resolveStores(opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "configuration", err)
	}

	set, err := tcdb.NewSet(paths)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open stores", err)
	}

	vocab, err := set.Vocabulary()
	if err != nil {
		_ = set.Close()
		return nil, WrapExitError(ExitCommandError, "open default store", err)
	}

	log.Info("loading station directory", "stores", len(paths))
	dir, err := tcdb.LoadDirectory(set)
	if err != nil {
		_ = set.Close()
		return nil, WrapExitError(ExitCommandError, "load station directory", err)
	}
	log.Info("station directory loaded", "stations", dir.Len())

	cache := station.NewCache(dir, set.ReadExternalID, log)

	return &Env{
		Set:        set,
		Dir:        dir,
		Cache:      cache,
		Vocab:      vocab,
		Translator: harmonics.NewTranslator(dir, cache, set, vocab, log),
		Log:        log,
	}, nil
}

// Close releases the stores.
func (e *Env) Close() error {
	return e.Set.Close()
}

// newLogger configures structured logging on stderr. Verbose mode enables
// debug-level records.
func newLogger(opts *RootOptions) *slog.Logger {
	// Quiet by default so command output stays clean.
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newFormatter builds the standard formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
