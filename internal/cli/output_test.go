package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFindings, GetExitCode(NewExitError(ExitFindings, "diffs")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad", errors.New("boom"))))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("plain error")))
}

func TestGetExitCodeUnwrapsWrappedErrors(t *testing.T) {
	inner := NewExitError(ExitFindings, "findings")
	wrapped := fmt.Errorf("context: %w", inner)

	assert.Equal(t, ExitFindings, GetExitCode(wrapped))
}

func TestFormatterTextMode(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &Formatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success("hello\n", map[string]int{"n": 1}))
	assert.Equal(t, "hello\n", buf.String())
}

func TestFormatterJSONMode(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &Formatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success("ignored", map[string]int{"n": 1}))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotContains(t, buf.String(), "ignored")
}

func TestFormatterFail(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &Formatter{Format: "json", Writer: buf}

	require.NoError(t, f.Fail("MALFORMED_HEADER", "not a pcap"))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MALFORMED_HEADER", resp.Error.Code)
}
