package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Identity is the caller's view of who is logged in, read from the token
// payload without signature verification. The server remains the authority;
// this only drives what the dashboard shows.
type Identity struct {
	UserID           string
	Username         string
	Role             string
	TeacherProfileID *int64
	ExpiresAt        time.Time
}

// Expired reports whether the token's exp claim has passed. A missing exp
// counts as expired.
func (id Identity) Expired() bool {
	if id.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().After(id.ExpiresAt)
}

type Session struct {
	store *Store
}

func New(store *Store) *Session {
	return &Session{store: store}
}

// Token returns the stored access token, if any.
func (s *Session) Token() (string, bool) {
	return s.store.Get(tokenKey)
}

// Save stores a freshly issued token.
func (s *Session) Save(token string) error {
	return s.store.Set(tokenKey, token)
}

// Clear drops the stored credential. Safe to call when nothing is stored.
func (s *Session) Clear() error {
	return s.store.Delete(tokenKey)
}

// Current decodes the stored token into an Identity. It fails when no token is
// stored or the token is not decodable; expiry is reported via
// Identity.Expired, not as an error, so callers can show a useful message.
func (s *Session) Current() (Identity, error) {
	token, ok := s.Token()
	if !ok || token == "" {
		return Identity{}, ErrNotLoggedIn
	}

	return Decode(token)
}

// Decode extracts the identity claims from a JWT without verifying its
// signature.
func Decode(token string) (Identity, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("unexpected token claims")
	}

	var id Identity
	id.UserID, _ = claims["sub"].(string)
	id.Username, _ = claims["username"].(string)
	id.Role, _ = claims["role"].(string)
	if rawProfile, ok := claims["teacherProfileId"].(float64); ok {
		profileID := int64(rawProfile)
		id.TeacherProfileID = &profileID
	}
	if exp, ok := claims["exp"].(float64); ok {
		id.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return id, nil
}
