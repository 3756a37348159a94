package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinerlabs/tidedb/internal/harmonics"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"result": "success"})
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("not-found", "no station", 404)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not-found", resp.Error.Code)
	assert.Equal(t, "no station", resp.Error.Message)
	assert.Equal(t, 404, resp.Error.Status)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Error("duplicate-identity", "station exists", 400)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [duplicate-identity]: station exists")
}

func TestOutputFormatter_VerboseLogGoesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	diag := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "json",
		Writer:    out,
		ErrWriter: diag,
		Verbose:   true,
	}

	formatter.VerboseLog("loaded %d stations", 3)
	assert.Empty(t, out.String())
	assert.Contains(t, diag.String(), "loaded 3 stations")

	formatter.Verbose = false
	diag.Reset()
	formatter.VerboseLog("suppressed")
	assert.Empty(t, diag.String())
}

func TestFailDocument_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			"client rejection",
			&harmonics.Error{Category: harmonics.CategoryDuplicateIdentity, Message: "exists"},
			ExitFailure,
		},
		{
			"unknown station",
			&harmonics.Error{Category: harmonics.CategoryNotFound, Message: "gone"},
			ExitFailure,
		},
		{
			"store failure",
			&harmonics.Error{Category: harmonics.CategoryStoreUnavailable, Message: "broken", Err: assert.AnError},
			ExitCommandError,
		},
		{
			"untyped error",
			assert.AnError,
			ExitCommandError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: buf}

			err := formatter.FailDocument(tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, GetExitCode(err))
			assert.NotEmpty(t, buf.String(), "error envelope must be written")
		})
	}
}

func TestFailDocument_StoreDiagnosticInEnvelope(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.FailDocument(&harmonics.Error{
		Category: harmonics.CategoryStoreUnavailable,
		Message:  "could not update database record number 7",
		Err:      errors.New("database is locked"),
	})
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "store-unavailable", resp.Error.Code)
	assert.Equal(t, "could not update database record number 7: database is locked", resp.Error.Message)
	assert.Equal(t, 500, resp.Error.Status)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))

	wrapped := WrapExitError(ExitFailure, "outer", assert.AnError)
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Contains(t, wrapped.Error(), "outer")
}
