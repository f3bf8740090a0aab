package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCommand(t, NewVersionCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "pindex version")
}

func TestScanCmd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "mypkg-1.0.tar.gz"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "other-2.0.zip"), []byte("y"), 0o644))

	out, err := runCommand(t, NewScanCmd(), root)
	require.NoError(t, err)
	assert.Contains(t, out, "mypkg\t1.0\tmypkg-1.0.tar.gz")
	assert.Contains(t, out, "other\t2.0\tother-2.0.zip")
}

func TestScanCmdCount(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "mypkg-1.0.tar.gz"), []byte("x"), 0o644))

	out, err := runCommand(t, NewScanCmd(), "--count", root)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestScanCmdMissingRoot(t *testing.T) {
	_, err := runCommand(t, NewScanCmd(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pindex.yaml")

	out, err := runCommand(t, NewConfigCmd(), "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	// A second init without --force refuses to clobber the file.
	_, err = runCommand(t, NewConfigCmd(), "init", path)
	assert.Error(t, err)

	_, err = runCommand(t, NewConfigCmd(), "init", "--force", path)
	assert.NoError(t, err)

	ConfigPath = &path
	defer func() { ConfigPath = nil }()

	out, err = runCommand(t, NewConfigCmd(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "port: 8080")
}
