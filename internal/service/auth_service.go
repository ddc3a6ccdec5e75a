package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"littlewins/internal/models"
	"littlewins/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrMissingFields   = errors.New("missing fields")
	ErrUserExists      = errors.New("user already exists")
	ErrInvalidPassword = errors.New("invalid password")
	ErrBadPassword     = errors.New("password not acceptable")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthConfig holds token signing settings.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// AuthService handles user auth logic
type AuthService struct {
	authRepo repository.Authorization
	cfg      AuthConfig
}

func NewAuthService(repo repository.Authorization, cfg AuthConfig) *AuthService {
	return &AuthService{authRepo: repo, cfg: cfg}
}

// Register creates a new account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (string, models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" || strings.TrimSpace(password) == "" {
		return "", models.User{}, ErrMissingFields
	}

	existing, err := s.authRepo.GetByIdentity(ctx, email, username)
	if err != nil {
		return "", models.User{}, err
	}
	if existing != nil {
		return "", models.User{}, ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%w: %v", ErrBadPassword, err)
	}
	id, err := s.authRepo.Create(ctx, email, username, hash)
	if err != nil {
		return "", models.User{}, err
	}

	u := models.User{ID: id, Email: email, Username: username}
	token, err := s.issueToken(u)
	if err != nil {
		return "", models.User{}, err
	}
	return token, u, nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// Login validates credentials and returns a JWT. identity is an email or a username.
func (s *AuthService) Login(ctx context.Context, identity, password string) (string, models.User, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" || password == "" {
		return "", models.User{}, ErrMissingFields
	}

	u, err := s.authRepo.GetByIdentity(ctx, strings.ToLower(identity), identity)
	if err != nil {
		return "", models.User{}, err
	}
	if u == nil {
		return "", models.User{}, ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", models.User{}, ErrInvalidPassword
	}

	public := models.User{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: u.CreatedAt}
	token, err := s.issueToken(public)
	if err != nil {
		return "", models.User{}, err
	}
	return token, public, nil
}

// Me returns the public profile of userID.
func (s *AuthService) Me(ctx context.Context, userID int) (models.User, error) {
	u, err := s.authRepo.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	u.PasswordHash = ""
	return *u, nil
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// issueToken signs a JWT for u.
func (s *AuthService) issueToken(u models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   u.ID,
		Username: u.Username,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
