package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/pindex/test/testutil"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pindex version")
}

func TestHelpCommand(t *testing.T) {
	out, err := runRoot(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "scan")
}

func TestScanCommand(t *testing.T) {
	root := testutil.SeedPackages(t,
		"requests-2.31.0.tar.gz",
		"requests-2.31.0-py3-none-any.whl",
		"sub/nested-1.0.zip",
	)

	out, err := runRoot(t, "scan", root)
	require.NoError(t, err)
	assert.Contains(t, out, "requests\t2.31.0\trequests-2.31.0.tar.gz")
	assert.Contains(t, out, "nested\t1.0\tsub/nested-1.0.zip")
}

func TestScanCommandBadRoot(t *testing.T) {
	_, err := runRoot(t, "scan", "/definitely/not/a/directory")
	assert.Error(t, err)
}
