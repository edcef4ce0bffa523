package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
)

// Role selects which credential namespace a request uses. It is passed
// explicitly instead of being inferred from the current URL, so the
// admin back-office and the customer flow never share a token.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Credentials holds one bearer token per role. Mutations are in-memory;
// Load/Save move the tokens to the credential file explicitly so a 401
// cleanup never does hidden disk I/O.
type Credentials struct {
	mu     sync.RWMutex
	path   string
	tokens map[Role]string
}

func NewCredentials(path string) *Credentials {
	return &Credentials{
		path:   path,
		tokens: make(map[Role]string),
	}
}

func (c *Credentials) Token(role Role) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	token, ok := c.tokens[role]
	return token, ok && token != ""
}

func (c *Credentials) Set(role Role, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[role] = token
}

func (c *Credentials) Clear(role Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, role)
}

func (c *Credentials) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = make(map[Role]string)
}

// Load reads saved tokens. A missing file is not an error.
func (c *Credentials) Load() error {
	if c.path == "" {
		return nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	tokens := make(map[Role]string)
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = tokens
	return nil
}

func (c *Credentials) Save() error {
	if c.path == "" {
		return nil
	}

	c.mu.RLock()
	data, err := json.Marshal(c.tokens)
	c.mu.RUnlock()
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0600)
}
