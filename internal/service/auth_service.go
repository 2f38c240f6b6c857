package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/pkg/apierror"
)

type AuthService struct {
	jwtSecret        []byte
	tokenTTL         time.Duration
	lockoutThreshold int
	lockoutDuration  time.Duration
	users            UserRepo
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration, lockoutThreshold int, lockoutDuration time.Duration, users UserRepo) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, apierror.New("CONFIG", "jwt secret is required", "", http.StatusInternalServerError)
	}

	if lockoutThreshold <= 0 {
		lockoutThreshold = 5
	}
	if lockoutDuration <= 0 {
		lockoutDuration = 15 * time.Minute
	}

	return &AuthService{
		jwtSecret:        []byte(jwtSecret),
		tokenTTL:         tokenTTL,
		lockoutThreshold: lockoutThreshold,
		lockoutDuration:  lockoutDuration,
		users:            users,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (model.LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		// Same answer as a wrong password so usernames cannot be probed.
		return model.LoginResult{}, apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
	}

	if user.LockedUntil != nil && user.LockedUntil.After(time.Now().UTC()) {
		return model.LoginResult{}, apierror.New("LOCKED", "account temporarily locked", "", http.StatusUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		_ = s.users.IncrementFailedAttempts(ctx, user.ID)
		if user.FailedLoginAttempts+1 >= s.lockoutThreshold {
			_ = s.users.LockAccount(ctx, user.ID, time.Now().UTC().Add(s.lockoutDuration))
		}
		return model.LoginResult{}, apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
	}

	_ = s.users.ResetFailedAttempts(ctx, user.ID)

	token, err := s.issueToken(user)
	if err != nil {
		return model.LoginResult{}, err
	}

	return model.LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      publicUser(user),
	}, nil
}

// CheckUsername reports whether username is free to register.
func (s *AuthService) CheckUsername(ctx context.Context, username string) error {
	exists, err := s.users.ExistsByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if exists {
		return apierror.New("ALREADY_EXISTS", "username already exists", strings.TrimSpace(username), http.StatusConflict)
	}

	return nil
}

// CreateAccount provisions a login for a teacher profile. Called by the
// registration flow after the profile row exists.
func (s *AuthService) CreateAccount(ctx context.Context, username string, password string, role model.Role, teacherProfileID *int64) (model.AuthUser, error) {
	username = strings.TrimSpace(username)

	if err := s.CheckUsername(ctx, username); err != nil {
		return model.AuthUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return model.AuthUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:               uuid.NewString(),
		Username:         username,
		PasswordHash:     string(hash),
		Role:             role,
		TeacherProfileID: teacherProfileID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	return publicUser(user), nil
}

func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.New("UNAUTHORIZED", "invalid token signing method", "", http.StatusUnauthorized)
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.New("UNAUTHORIZED", "invalid or expired token", "", http.StatusUnauthorized)
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.New("UNAUTHORIZED", "invalid token claims", "", http.StatusUnauthorized)
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)
	if rawRole, ok := claimsMap["role"].(string); ok {
		claims.Role = model.Role(rawRole)
	}
	if rawProfile, ok := claimsMap["teacherProfileId"].(float64); ok {
		profileID := int64(rawProfile)
		claims.TeacherProfileID = &profileID
	}

	if claims.UserID == "" {
		return nil, apierror.New("UNAUTHORIZED", "invalid token subject", "", http.StatusUnauthorized)
	}

	return claims, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}

	return publicUser(user), nil
}

func (s *AuthService) issueToken(user model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	if user.TeacherProfileID != nil {
		claims["teacherProfileId"] = *user.TeacherProfileID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func publicUser(user model.User) model.AuthUser {
	return model.AuthUser{
		ID:               user.ID,
		Username:         user.Username,
		Role:             user.Role,
		TeacherProfileID: user.TeacherProfileID,
	}
}
