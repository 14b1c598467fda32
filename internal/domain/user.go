package domain

import (
	"strconv"
	"strings"
)

// SessionUser is the identity carried by a session cookie.
type SessionUser struct {
	ID int64
}

// ParseSessionToken decodes a "session_<userId>_<issuedAt>" token.
func ParseSessionToken(token string) (*SessionUser, error) {
	parts := strings.Split(token, "_")
	if len(parts) != 3 || parts[0] != "session" {
		return nil, ErrUnauthorized
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrUnauthorized
	}

	return &SessionUser{ID: id}, nil
}
