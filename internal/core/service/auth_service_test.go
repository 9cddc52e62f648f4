package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
	next  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.next++
	copy.ID = "user_" + strconv.Itoa(r.next)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) MarkVerified(_ context.Context, email string) error {
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Verified = true
	return nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, update ports.ProfileUpdate) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.Bio != nil {
			u.Bio = *update.Bio
		}
		if update.AvatarURL != nil {
			u.AvatarURL = *update.AvatarURL
		}
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type stubCodeStore struct {
	codes map[string]string
}

func newStubCodeStore() *stubCodeStore {
	return &stubCodeStore{codes: make(map[string]string)}
}

func (s *stubCodeStore) Put(_ context.Context, email, code string) error {
	s.codes[email] = code
	return nil
}

func (s *stubCodeStore) Get(_ context.Context, email string) (string, error) {
	return s.codes[email], nil
}

func (s *stubCodeStore) Delete(_ context.Context, email string) error {
	delete(s.codes, email)
	return nil
}

type stubLimiter struct {
	allow bool
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	return l.allow, nil
}

type stubSender struct {
	sent []string
}

func (s *stubSender) SendVerificationCode(_ context.Context, email, _ string) error {
	s.sent = append(s.sent, email)
	return nil
}

func newAuthService(repo *stubUserRepo, codes *stubCodeStore, limiter *stubLimiter, sender *stubSender) *AuthService {
	return NewAuthService(repo, codes, limiter, sender, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	codes := newStubCodeStore()
	sender := &stubSender{}
	svc := newAuthService(repo, codes, &stubLimiter{allow: true}, sender)

	user, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "pass123", domain.RoleClient)
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Verified {
		t.Fatalf("new account must start unverified")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "alice@example.com" {
		t.Fatalf("expected one verification email, got %v", sender.sent)
	}
	if codes.codes["alice@example.com"] == "" {
		t.Fatalf("expected a verification code to be stored")
	}
}

func TestAuthService_Signup_InvalidRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubCodeStore(), &stubLimiter{allow: true}, &stubSender{})

	if _, err := svc.Signup(context.Background(), "Bob", "bob@example.com", "pass", domain.RoleAdmin); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for admin signup, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), "Bob", "bob@example.com", "pass", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubCodeStore(), &stubLimiter{allow: true}, &stubSender{})

	if _, err := svc.Signup(context.Background(), "Bob", "bob@example.com", "pass", domain.RoleClient); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "Bobby", "bob@example.com", "pass2", domain.RoleTailor); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Unverified(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubCodeStore(), &stubLimiter{allow: true}, &stubSender{})

	if _, err := svc.Signup(context.Background(), "Carol", "carol@example.com", "s3cret", domain.RoleTailor); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "carol@example.com", "s3cret"); err != domain.ErrEmailNotVerified {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestAuthService_VerifyThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	codes := newStubCodeStore()
	svc := newAuthService(repo, codes, &stubLimiter{allow: true}, &stubSender{})

	if _, err := svc.Signup(context.Background(), "Carol", "carol@example.com", "s3cret", domain.RoleTailor); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	code := codes.codes["carol@example.com"]
	token, user, err := svc.VerifyEmail(context.Background(), "carol@example.com", code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !user.Verified {
		t.Fatalf("expected account to be verified")
	}
	if token == "" {
		t.Fatalf("expected a token after verification")
	}
	if codes.codes["carol@example.com"] != "" {
		t.Fatalf("expected used code to be deleted")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleTailor {
		t.Fatalf("expected role %s, got %v", domain.RoleTailor, claims["role"])
	}
	if claims["email"] != "carol@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}

	if _, _, err := svc.Login(context.Background(), "carol@example.com", "s3cret"); err != nil {
		t.Fatalf("login after verification failed: %v", err)
	}
}

func TestAuthService_VerifyEmail_WrongCode(t *testing.T) {
	codes := newStubCodeStore()
	svc := newAuthService(newStubUserRepo(), codes, &stubLimiter{allow: true}, &stubSender{})

	if _, err := svc.Signup(context.Background(), "Dave", "dave@example.com", "pass", domain.RoleClient); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, _, err := svc.VerifyEmail(context.Background(), "dave@example.com", "000000x"); err != domain.ErrInvalidCode {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	codes := newStubCodeStore()
	svc := newAuthService(newStubUserRepo(), codes, &stubLimiter{allow: true}, &stubSender{})

	if _, err := svc.Signup(context.Background(), "Dave", "dave@example.com", "goodpass", domain.RoleClient); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ResendCode_Throttled(t *testing.T) {
	codes := newStubCodeStore()
	sender := &stubSender{}
	limiter := &stubLimiter{allow: true}
	svc := newAuthService(newStubUserRepo(), codes, limiter, sender)

	if _, err := svc.Signup(context.Background(), "Eve", "eve@example.com", "pass", domain.RoleClient); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := svc.ResendCode(context.Background(), "eve@example.com"); err != nil {
		t.Fatalf("resend failed: %v", err)
	}

	limiter.allow = false
	if err := svc.ResendCode(context.Background(), "eve@example.com"); err != domain.ErrTooManyRequests {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}
}

func TestGenerateCode_SixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := generateCode()
		if len(code) != 6 {
			t.Fatalf("expected 6-digit code, got %q", code)
		}
		if _, err := strconv.Atoi(code); err != nil {
			t.Fatalf("code not numeric: %q", code)
		}
	}
}
