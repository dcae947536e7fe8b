package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// whatever was written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	r.Close()

	return buf.String()
}

func TestRenderStatusTable(t *testing.T) {
	outputFmt = "table"

	out := captureStdout(t, func() {
		err := renderStatus(StatusResult{Status: "selected", Branch: "devops"}, "Switched to branch devops")
		require.NoError(t, err)
	})

	assert.Equal(t, "Switched to branch devops\n", out)
}

func TestRenderStatusJSON(t *testing.T) {
	outputFmt = "json"
	defer func() { outputFmt = "table" }()

	out := captureStdout(t, func() {
		err := renderStatus(StatusResult{Status: "selected", Branch: "devops"}, "Switched to branch devops")
		require.NoError(t, err)
	})

	var result StatusResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "selected", result.Status)
	assert.Equal(t, "devops", result.Branch)
	assert.NotContains(t, out, "Switched to branch", "json output carries no plain-text message")
}

func TestRenderStatusJSONOmitsEmptyBranch(t *testing.T) {
	outputFmt = "json"
	defer func() { outputFmt = "table" }()

	out := captureStdout(t, func() {
		err := renderStatus(StatusResult{Status: "refreshed"}, "Index refreshed")
		require.NoError(t, err)
	})

	assert.NotContains(t, out, "branch", "refresh status has no branch field")
}

func TestRenderLinkJSON(t *testing.T) {
	outputFmt = "json"
	defer func() { outputFmt = "table" }()

	out := captureStdout(t, func() {
		err := renderLink(LinkResult{DocType: "urlmaps", ID: "__default__", Path: "/config/prod/urlmaps/__default__"})
		require.NoError(t, err)
	})

	var result LinkResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "/config/prod/urlmaps/__default__", result.Path)
}
