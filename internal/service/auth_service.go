package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"contacts_api/internal/apperr"
	"contacts_api/internal/models"
	"contacts_api/internal/repository"
)

// passwordCost is the bcrypt work factor for stored credentials.
const passwordCost = 10

const (
	msgUserExists         = "User already exists"
	msgProvideCredentials = "Please provide email and password"
	msgInvalidCredentials = "Invalid credentials"
	msgLoginSuccessful    = "Login successful"
	msgPasswordTooLong    = "Password must be at most 72 bytes"
)

// Domain errors for token handling.
var (
	ErrInvalidToken = errors.New("invalid token")
)

// AuthService registers and authenticates users.
type AuthService struct {
	users      repository.Users
	audit      Recorder
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, audit Recorder, signingKey string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		audit:      audit,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}
}

// Register validates input, rejects duplicate emails and stores a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.PublicUser, error) {
	password := in.Password
	in.Username, in.Email = trim(in.Username), trim(in.Email)
	if err := requireFields(RegisterInput{Username: in.Username, Email: in.Email, Password: trim(password)}, msgFillAllFields); err != nil {
		return models.PublicUser{}, err
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return models.PublicUser{}, apperr.Server("failed to look up user", err)
	}
	if existing != nil {
		return models.PublicUser{}, apperr.Conflict(msgUserExists)
	}

	hash, err := hashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.PublicUser{}, apperr.Validation(msgPasswordTooLong)
	}
	if err != nil {
		return models.PublicUser{}, apperr.Server("failed to hash password", err)
	}

	u := &models.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.PublicUser{}, apperr.Conflict(msgUserExists)
		}
		return models.PublicUser{}, apperr.Server("failed to create user", err)
	}

	record(ctx, s.audit, models.EventRegister, "user registered", map[string]any{"user_id": u.ID})
	return u.Public(), nil
}

// Login checks credentials and issues an identity token. Unknown emails and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	in.Email = trim(in.Email)
	if err := requireFields(LoginInput{Email: in.Email, Password: trim(in.Password)}, msgProvideCredentials); err != nil {
		return LoginResult{}, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return LoginResult{}, apperr.Server("failed to look up user", err)
	}

	hash := dummyHash()
	if u != nil {
		hash = u.PasswordHash
	}
	// compare even for unknown users so both failures cost the same
	if err := verifyPassword(hash, in.Password); err != nil || u == nil {
		record(ctx, s.audit, models.EventLoginFailed, "login rejected", map[string]any{"email": in.Email})
		return LoginResult{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	pub := u.Public()
	token, err := s.IssueToken(pub)
	if err != nil {
		return LoginResult{}, apperr.Server("failed to issue token", err)
	}

	record(ctx, s.audit, models.EventLogin, "user logged in", map[string]any{"user_id": u.ID})
	return LoginResult{PublicUser: pub, Message: msgLoginSuccessful, Token: token}, nil
}

// CurrentUser returns the identity already resolved for the request.
func (s *AuthService) CurrentUser(identity models.PublicUser) models.PublicUser {
	return identity
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// IssueToken signs an identity token for u.
func (s *AuthService) IssueToken(u models.PublicUser) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
	})
	return token.SignedString(s.signingKey)
}

// ParseToken parses JWT and returns the identity it carries.
func (s *AuthService) ParseToken(accessToken string) (models.PublicUser, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return models.PublicUser{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return models.PublicUser{}, ErrInvalidToken
	}

	return models.PublicUser{ID: claims.UserID, Username: claims.Username, Email: claims.Email}, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var (
	dummyOnce sync.Once
	dummy     string
)

// dummyHash is compared against when the email is unknown.
func dummyHash() string {
	dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), passwordCost)
		if err == nil {
			dummy = string(h)
		}
	})
	return dummy
}
