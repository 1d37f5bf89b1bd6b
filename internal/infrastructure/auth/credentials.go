package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/mbsolutions/storefront/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// Credentials validates the single static admin credential. The configured
// password may be stored either plain or as a bcrypt hash.
type Credentials struct {
	user     string
	password string
	hashed   bool
}

// NewCredentials creates a credential checker from configuration
func NewCredentials(cfg config.AdminConfig) *Credentials {
	return &Credentials{
		user:     cfg.User,
		password: cfg.Password,
		hashed:   strings.HasPrefix(cfg.Password, "$2a$") || strings.HasPrefix(cfg.Password, "$2b$") || strings.HasPrefix(cfg.Password, "$2y$"),
	}
}

// Match reports whether the submitted credentials are the admin's.
// Both inputs are trimmed before comparison.
func (c *Credentials) Match(usuario, password string) bool {
	usuario = strings.TrimSpace(usuario)
	password = strings.TrimSpace(password)

	userOK := subtle.ConstantTimeCompare([]byte(usuario), []byte(c.user)) == 1

	var passOK bool
	if c.hashed {
		passOK = bcrypt.CompareHashAndPassword([]byte(c.password), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
	}

	return userOK && passOK
}
