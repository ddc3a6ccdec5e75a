package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"littlewins/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key"

var testAuthConfig = AuthConfig{SigningKey: testSigningKey, TokenTTL: time.Hour}

type createCall struct {
	email    string
	username string
	hash     string
}

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(email, username, hash string) (int, error)
	GetByIdentityFn func(email, username string) (*models.User, error)
	GetByIDFn       func(id int) (*models.User, error)

	lastSelection models.LastSelection
	lastErr       error
	saveErr       error
	saved         []models.LastSelection

	createCalls []createCall
	getCalls    []string
}

func (m *mockAuthRepo) Create(_ context.Context, email, username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, createCall{email: email, username: username, hash: hash})
	return m.CreateFn(email, username, hash)
}

func (m *mockAuthRepo) GetByIdentity(_ context.Context, email, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByIdentityFn(email, username)
}

func (m *mockAuthRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	return m.GetByIDFn(id)
}

func (m *mockAuthRepo) GetLastSelection(_ context.Context, _ int) (models.LastSelection, error) {
	return m.lastSelection, m.lastErr
}

func (m *mockAuthRepo) SaveLastSelection(_ context.Context, _ int, sel models.LastSelection) error {
	m.saved = append(m.saved, sel)
	return m.saveErr
}

func noUser(email, username string) (*models.User, error) { return nil, nil }

// --- Register tests ---

func TestAuthService_Register_SuccessHashesPasswordAndCallsRepo(t *testing.T) {
	mock := &mockAuthRepo{
		GetByIdentityFn: noUser,
		CreateFn: func(email, username, hash string) (int, error) {
			return 42, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig)

	token, u, err := svc.Register(context.Background(), " Alice@Example.COM ", "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if u.ID != 42 || u.Email != "alice@example.com" || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if uid, err := svc.ParseToken(token); err != nil || uid != 42 {
		t.Fatalf("token does not carry user id: uid=%d err=%v", uid, err)
	}

	// Ensure Create called exactly once with hashed password (not equal to raw) and valid bcrypt.
	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.email != "alice@example.com" {
		t.Errorf("expected lower-cased email, got %q", call.email)
	}
	if call.username != "alice" {
		t.Errorf("expected username 'alice', got %q", call.username)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(email, username, hash string) (int, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig)

	_, _, err := svc.Register(context.Background(), "bob@example.com", "bob", "   ")
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for empty password, got %v", err)
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	mock := &mockAuthRepo{
		GetByIdentityFn: noUser,
		CreateFn: func(email, username, hash string) (int, error) {
			return 0, errors.New("db down")
		},
	}
	svc := NewAuthService(mock, testAuthConfig)

	_, _, err := svc.Register(context.Background(), "carl@example.com", "carl", "pass123")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

func TestAuthService_Register_ExistingUser(t *testing.T) {
	mock := &mockAuthRepo{
		GetByIdentityFn: func(email, username string) (*models.User, error) {
			return &models.User{ID: 3, Email: email, Username: "someone"}, nil
		},
		CreateFn: func(email, username, hash string) (int, error) {
			t.Fatal("Create should not be called for an existing user")
			return 0, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig)

	_, _, err := svc.Register(context.Background(), "dup@example.com", "dup", "pw")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, testAuthConfig)
	for _, in := range [][3]string{{"", "u", "p"}, {"e@x.io", " ", "p"}, {"e@x.io", "u", ""}} {
		if _, _, err := svc.Register(context.Background(), in[0], in[1], in[2]); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("Register(%q): expected ErrMissingFields, got %v", in, err)
		}
	}
}

// --- Login tests ---

func TestAuthService_Login_Success(t *testing.T) {
	// Prepare a user with a valid bcrypt hash for the provided password.
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: 7, Email: "diana@example.com", Username: "diana", PasswordHash: hash}

	mock := &mockAuthRepo{
		GetByIdentityFn: func(email, username string) (*models.User, error) {
			if username != "diana" {
				t.Fatalf("expected username 'diana', got %q", username)
			}
			return user, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig)

	token, u, err := svc.Login(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if u.PasswordHash != "" || u.Email != "diana@example.com" {
		t.Fatalf("unexpected public user: %+v", u)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	// Validate the token parses and returns the correct user id.
	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 7 {
		t.Fatalf("expected user id 7 from token, got %d", uid)
	}

	if len(mock.getCalls) != 1 {
		t.Fatalf("expected 1 GetByIdentity call, got %d", len(mock.getCalls))
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	mock := &mockAuthRepo{GetByIdentityFn: noUser}
	svc := NewAuthService(mock, testAuthConfig)

	_, _, err := svc.Login(context.Background(), "ghost", "pw")
	if err == nil {
		t.Fatalf("expected ErrUserNotFound, got nil")
	}
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	// Stored hash for different password.
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	mock := &mockAuthRepo{
		GetByIdentityFn: func(email, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "eve", PasswordHash: correctHash}, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig)

	_, _, err = svc.Login(context.Background(), "eve", "wrong")
	if err == nil {
		t.Fatalf("expected ErrInvalidPassword, got nil")
	}
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got: %v", err)
	}
}

func TestAuthService_Login_ByEmailIsCaseInsensitive(t *testing.T) {
	hash, err := hashPassword("pw")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	var gotEmail, gotUsername string
	mock := &mockAuthRepo{
		GetByIdentityFn: func(email, username string) (*models.User, error) {
			gotEmail, gotUsername = email, username
			return &models.User{ID: 2, Email: "fay@example.com", Username: "fay", PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig)

	if _, _, err := svc.Login(context.Background(), "Fay@Example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotEmail != "fay@example.com" || gotUsername != "Fay@Example.com" {
		t.Fatalf("unexpected lookup args: email=%q username=%q", gotEmail, gotUsername)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	mock := &mockAuthRepo{
		GetByIdentityFn: func(email, username string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := NewAuthService(mock, testAuthConfig)

	_, _, err := svc.Login(context.Background(), "john", "pw")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

func TestAuthService_Me(t *testing.T) {
	mock := &mockAuthRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			if id == 9 {
				return &models.User{ID: 9, Email: "gil@example.com", Username: "gil", PasswordHash: "h"}, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig)

	u, err := svc.Me(context.Background(), 9)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if u.Username != "gil" || u.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if _, err := svc.Me(context.Background(), 10); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Success(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, testAuthConfig)
	token, err := svc.issueToken(models.User{ID: 99, Username: "zed"})
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if uid != 99 {
		t.Fatalf("expected user id 99, got %d", uid)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, testAuthConfig)
	_, err := svc.ParseToken("not-a-jwt")
	if err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestAuthService_ParseToken_InvalidSignature(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, testAuthConfig)

	// Create a token signed with a different key.
	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 5,
	})
	otherKey := []byte("different-key")
	badToken, err := tk.SignedString(otherKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(badToken)
	if err == nil {
		t.Fatalf("expected signature verification error")
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, testAuthConfig)

	// Issue an already expired token using same signing key.
	past := time.Now().Add(-2 * time.Hour)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
		UserID: 11,
	})
	expiredToken, err := tk.SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(expiredToken)
	if err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestAuthService_ParseToken_UnexpectedAlg(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, testAuthConfig)

	now := time.Now()

	// Generate RSA key for RS256 signing
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 12,
	})

	// Sanity check: ensure the algorithm is RS256 (non-HMAC)
	if tk.Method.Alg() != jwt.SigningMethodRS256.Alg() {
		t.Fatalf("expected RS256 alg, got %s", tk.Method.Alg())
	}

	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(tokenStr)
	if err == nil {
		t.Fatalf("expected error due to unexpected signing method")
	}
}
