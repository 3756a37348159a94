package cli

import (
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
	"cuelang.org/go/encoding/jsonschema"
	"github.com/spf13/cobra"

	"github.com/marinerlabs/tidedb/internal/harmonics"
	"github.com/marinerlabs/tidedb/internal/schema"
)

// ValidationResult holds validation results for one document.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document.json>",
		Short: "Validate a station document against the schema",
		Long: `Check a station document against the station JSON Schema without
writing anything.

The schema's enumerations come from the configured default store. Use "-"
to read the document from stdin.

Example:
  tidedb validate --db ./harmonics.db newport.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, docPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := readDocumentFile(docPath, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "read document", err)
	}

	env, err := OpenEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	problems, err := validateDocument(env.Vocab, docPath, data)
	if err != nil {
		return WrapExitError(ExitCommandError, "build schema", err)
	}

	if len(problems) > 0 {
		_ = formatter.Success(ValidationResult{Valid: false, Errors: problems})
		return NewExitError(ExitFailure, fmt.Sprintf("document failed validation with %d error(s)", len(problems)))
	}
	return formatter.Success(ValidationResult{Valid: true})
}

// validateDocument unifies the document with the CUE form of the station
// schema and reports every concrete violation. The conditional per-kind
// required sets are checked directly; everything structural goes through CUE.
func validateDocument(vocab harmonics.Vocabulary, name string, data []byte) ([]string, error) {
	ctx := cuecontext.New()

	// The conditional combos are enforced below; CUE's JSON Schema decoder
	// handles the unconditional structure.
	root := schema.Build(vocab)
	delete(root, "allOf")

	schemaJSON, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaJSON)
	if err := schemaVal.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	schemaAST, err := jsonschema.Extract(schemaVal, &jsonschema.Config{})
	if err != nil {
		return nil, fmt.Errorf("extract schema: %w", err)
	}
	constraint := ctx.BuildFile(schemaAST)
	if err := constraint.Err(); err != nil {
		return nil, fmt.Errorf("build schema constraints: %w", err)
	}

	expr, err := cuejson.Extract(name, data)
	if err != nil {
		return []string{err.Error()}, nil
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return []string{err.Error()}, nil
	}

	var problems []string
	unified := constraint.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		for _, e := range cueerrors.Errors(err) {
			problems = append(problems, e.Error())
		}
	}
	problems = append(problems, missingSections(data)...)
	return problems, nil
}

// missingSections enforces the per-kind required field sets that the schema
// expresses as if/then combos.
func missingSections(data []byte) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil // structural errors already reported
	}

	var kind struct {
		Type             string `json:"type"`
		ReferenceStation bool   `json:"referenceStation"`
	}
	if err := json.Unmarshal(data, &kind); err != nil {
		return nil
	}
	if kind.Type != harmonics.StationTypeTide && kind.Type != harmonics.StationTypeCurrent {
		return []string{fmt.Sprintf("type: must be %q or %q", harmonics.StationTypeTide, harmonics.StationTypeCurrent)}
	}

	var problems []string
	for _, section := range harmonics.RequiredSections(kind.Type, kind.ReferenceStation) {
		if _, ok := fields[section]; !ok {
			problems = append(problems, fmt.Sprintf("%s: required for %s %s stations",
				section, stationKind(kind.ReferenceStation), kind.Type))
		}
	}
	return problems
}

func stationKind(referenceStation bool) string {
	if referenceStation {
		return "reference"
	}
	return "subordinate"
}
