package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAllowAll(t *testing.T) {
	a := AllowAll{}
	assert.True(t, a.Authenticate("anyone", "anything"))
	assert.True(t, a.Authenticate("", ""))
}

func TestHtpasswdAuthenticator(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "htpasswd")
	content := fmt.Sprintf("# comment line\n\nalice:%s\n", hash)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	a, err := NewHtpasswdAuthenticator(path)
	require.NoError(t, err)

	assert.True(t, a.Authenticate("alice", "s3cret"))
	assert.False(t, a.Authenticate("alice", "wrong"))
	assert.False(t, a.Authenticate("bob", "s3cret"))
}

func TestHtpasswdMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "htpasswd")
	require.NoError(t, os.WriteFile(path, []byte("no-colon-here\n"), 0o600))

	_, err := NewHtpasswdAuthenticator(path)
	assert.Error(t, err)
}

func TestHtpasswdMissingFile(t *testing.T) {
	_, err := NewHtpasswdAuthenticator(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	a := &HtpasswdAuthenticator{}
	require.NoError(t, a.SetPassword("carol", "pw"))

	assert.True(t, a.Authenticate("carol", "pw"))
	assert.False(t, a.Authenticate("carol", "other"))

	// Replacing a password invalidates the old one.
	require.NoError(t, a.SetPassword("carol", "newpw"))
	assert.False(t, a.Authenticate("carol", "pw"))
	assert.True(t, a.Authenticate("carol", "newpw"))
}
