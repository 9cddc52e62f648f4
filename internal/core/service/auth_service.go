package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

// AuthService implements signup, login and email verification.
type AuthService struct {
	repo      ports.UserRepository
	codes     ports.CodeStore
	limiter   ports.RateLimiter
	sender    ports.CodeSender
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	codes ports.CodeStore,
	limiter ports.RateLimiter,
	sender ports.CodeSender,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		codes:     codes,
		limiter:   limiter,
		sender:    sender,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Signup creates an unverified account and emails a verification code.
func (s *AuthService) Signup(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.issueCode(ctx, email); err != nil {
		// Account exists; the user can still request a resend.
		s.log.Warn().Err(err).Str("email", email).Msg("failed to send verification code")
	}

	s.log.Info().Str("email", email).Str("role", role).Msg("user signed up")
	return created, nil
}

// Login authenticates a verified user and returns a signed token.
// Unverified accounts get ErrEmailNotVerified so the caller can route to the
// verification step instead of the dashboard.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.Verified {
		return "", nil, domain.ErrEmailNotVerified
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// VerifyEmail checks the submitted code, marks the account verified, and
// logs the user in by returning a fresh token.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (string, *domain.User, error) {
	if email == "" || code == "" {
		return "", nil, domain.ErrInvalidCode
	}

	stored, err := s.codes.Get(ctx, email)
	if err != nil || stored == "" || stored != code {
		return "", nil, domain.ErrInvalidCode
	}

	if err := s.repo.MarkVerified(ctx, email); err != nil {
		return "", nil, err
	}
	if err := s.codes.Delete(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to delete used code")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("email", email).Msg("email verified")
	return token, user, nil
}

// ResendCode issues a new verification code, throttled per email.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return nil
	}

	ok, err := s.limiter.Allow(ctx, "resend:"+email)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("rate limit check failed, allowing")
	} else if !ok {
		return domain.ErrTooManyRequests
	}

	return s.issueCode(ctx, email)
}

func (s *AuthService) issueCode(ctx context.Context, email string) error {
	code := generateCode()
	if err := s.codes.Put(ctx, email, code); err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	if err := s.sender.SendVerificationCode(ctx, email, code); err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateCode returns a 6-digit verification code.
func generateCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000)
}
