package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Gate validates the favorites PIN. The expected secret comes from
// configuration: either the PIN itself or its bcrypt hash (detected
// by the "$2" prefix). A wrong PIN is a normal false result, never an
// error. An empty configured secret keeps the gate permanently locked.
type Gate struct {
	secret string
	hashed bool
}

func NewGate(secret string) *Gate {
	return &Gate{
		secret: secret,
		hashed: strings.HasPrefix(secret, "$2"),
	}
}

func (g *Gate) Verify(pin string) bool {
	if g.secret == "" || pin == "" {
		return false
	}
	if g.hashed {
		return bcrypt.CompareHashAndPassword([]byte(g.secret), []byte(pin)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(pin)) == 1
}
