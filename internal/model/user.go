package model

import "time"

type User struct {
	ID                  string     `json:"id"`
	Username            string     `json:"username"`
	PasswordHash        string     `json:"-"`
	Role                Role       `json:"role"`
	TeacherProfileID    *int64     `json:"teacherProfileId,omitempty"`
	FailedLoginAttempts int        `json:"-"`
	LockedUntil         *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// AuthClaims is the identity extracted from a verified bearer token.
type AuthClaims struct {
	UserID           string `json:"sub"`
	Username         string `json:"username"`
	Role             Role   `json:"role"`
	TeacherProfileID *int64 `json:"teacherProfileId,omitempty"`
	TokenID          string `json:"jti"`
}

// AuthUser is the public projection of a User returned by the API.
type AuthUser struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Role             Role   `json:"role"`
	TeacherProfileID *int64 `json:"teacherProfileId,omitempty"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int64    `json:"expires_in"`
	User      AuthUser `json:"user"`
}
