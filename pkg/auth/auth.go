// Package auth provides credential checking for protected server actions.
//
//go:generate mockgen -destination=./mocks/auth.go -package=mocks . Authenticator
package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Action names the protected operations an operator can require
// credentials for.
type Action string

// Protected actions.
const (
	ActionUpdate   Action = "update"
	ActionDownload Action = "download"
	ActionList     Action = "list"
)

// ValidActions enumerates the recognized action names.
var ValidActions = []Action{ActionUpdate, ActionDownload, ActionList}

// Authenticator decides whether a username/password pair is acceptable.
type Authenticator interface {
	Authenticate(username, password string) bool
}

// AllowAll accepts any credentials, including none. It is the default when
// no password file is configured.
type AllowAll struct{}

// Authenticate implements Authenticator.
func (AllowAll) Authenticate(string, string) bool { return true }

// HtpasswdAuthenticator checks credentials against an htpasswd-style file
// of "user:bcrypt-hash" lines. Lines starting with # are ignored.
type HtpasswdAuthenticator struct {
	mu    sync.RWMutex
	creds map[string]string
}

var _ Authenticator = (*HtpasswdAuthenticator)(nil)

// NewHtpasswdAuthenticator loads credentials from the given file.
func NewHtpasswdAuthenticator(path string) (*HtpasswdAuthenticator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open password file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	creds := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		user, hash, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed line in password file %s", path)
		}
		creds[user] = hash
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read password file %s: %w", path, err)
	}

	return &HtpasswdAuthenticator{creds: creds}, nil
}

// Authenticate implements Authenticator.
func (a *HtpasswdAuthenticator) Authenticate(username, password string) bool {
	a.mu.RLock()
	hash, ok := a.creds[username]
	a.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SetPassword stores a bcrypt hash for a user, replacing any previous one.
// Intended for tests and programmatic setup.
func (a *HtpasswdAuthenticator) SetPassword(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.mu.Lock()
	if a.creds == nil {
		a.creds = make(map[string]string)
	}
	a.creds[username] = string(hash)
	a.mu.Unlock()
	return nil
}
