// Package auth is the credential gate in front of the store. It keeps an
// in-memory user registry and hands out opaque session tokens; the store
// core never sees a credential, only the yes/no of Authenticate.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Sentinel errors for signup and login.
var (
	// ErrUserExists is returned when signing up an already-taken username.
	ErrUserExists = errors.New("username already exists")
	// ErrEmptyCredentials is returned when username or password is empty.
	ErrEmptyCredentials = errors.New("username and password cannot be empty")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Registry holds users and live session tokens. Passwords are stored as
// HMAC-SHA256 with a process-wide pepper, never in the clear.
type Registry struct {
	pepper []byte

	mu     sync.RWMutex
	users  map[string]string // username -> hex password hash
	tokens map[string]string // token -> username
}

// NewRegistry creates an empty Registry using pepper for password hashing.
func NewRegistry(pepper []byte) *Registry {
	return &Registry{
		pepper: pepper,
		users:  make(map[string]string),
		tokens: make(map[string]string),
	}
}

// SignUp registers a new user. Empty usernames or passwords are rejected, as
// are duplicate usernames.
func (r *Registry) SignUp(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; ok {
		return ErrUserExists
	}
	r.users[username] = r.hash(password)
	return nil
}

// Login verifies the credentials and returns a fresh session token. The hash
// comparison is constant-time, so a failed login leaks nothing about how
// close the password was.
func (r *Registry) Login(username, password string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[username]
	if !ok {
		return "", ErrInvalidCredentials
	}

	storedBytes, err := hex.DecodeString(stored)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	mac := hmac.New(sha256.New, r.pepper)
	mac.Write([]byte(password))
	if subtle.ConstantTimeCompare(mac.Sum(nil), storedBytes) != 1 {
		return "", ErrInvalidCredentials
	}

	token := uuid.New().String()
	r.tokens[token] = username
	return token, nil
}

// Authenticate resolves a session token to its username. The second return
// is the boolean gate the store layers consume.
func (r *Registry) Authenticate(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username, ok := r.tokens[token]
	return username, ok
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (r *Registry) Logout(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
}

// HasUsers reports whether anyone has signed up yet.
func (r *Registry) HasUsers() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users) > 0
}

func (r *Registry) hash(password string) string {
	mac := hmac.New(sha256.New, r.pepper)
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}
