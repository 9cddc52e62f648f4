package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, name, email, password, role string) (*domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
	verifyFn func(ctx context.Context, email, code string) (string, *domain.User, error)
	resendFn func(ctx context.Context, email string) error
}

func (s *stubAuthService) Signup(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	return s.signupFn(ctx, name, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, email, code string) (string, *domain.User, error) {
	return s.verifyFn(ctx, email, code)
}

func (s *stubAuthService) ResendCode(ctx context.Context, email string) error {
	return s.resendFn(ctx, email)
}

func newAuthContext(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, name, email, password, role string) (*domain.User, error) {
			if name != "Alice" || role != domain.RoleClient {
				t.Fatalf("unexpected args: %s %s", name, role)
			}
			return &domain.User{ID: "user_1", Name: name, Email: email, Role: role}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"secret1","role":"CLIENT"}`)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "alice@example.com" || user["role"] != "CLIENT" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, present := resp["token"]; present {
		t.Fatalf("signup must not return a token before verification")
	}
}

func TestAuthHandler_Signup_RejectsAdminRole(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			t.Fatalf("service should not be reached")
			return nil, nil
		},
	})

	c, _ := newAuthContext(t, "/api/auth/signup",
		`{"name":"Eve","email":"eve@example.com","password":"secret1","role":"ADMIN"}`)

	err := handler.Signup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "signed.jwt.token", &domain.User{ID: "user_1", Email: email, Role: domain.RoleTailor, Verified: true}, nil
		},
	})

	c, rec := newAuthContext(t, "/api/auth/login",
		`{"email":"tailor@example.com","password":"secret1"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed.jwt.token" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_Unverified(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrEmailNotVerified
		},
	})

	c, rec := newAuthContext(t, "/api/auth/login",
		`{"email":"new@example.com","password":"secret1"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["code"] != "EMAIL_NOT_VERIFIED" {
		t.Fatalf("expected EMAIL_NOT_VERIFIED code, got %+v", resp)
	}
	if resp["email"] != "new@example.com" {
		t.Fatalf("expected email echoed back, got %+v", resp)
	}
}

func TestAuthHandler_VerifyEmail_Success(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		verifyFn: func(ctx context.Context, email, code string) (string, *domain.User, error) {
			if code != "123456" {
				t.Fatalf("unexpected code: %s", code)
			}
			return "fresh.jwt.token", &domain.User{ID: "user_1", Email: email, Verified: true}, nil
		},
	})

	c, rec := newAuthContext(t, "/api/auth/verify-email",
		`{"email":"alice@example.com","code":"123456"}`)

	if err := handler.VerifyEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ResendCode_BadEmail(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		resendFn: func(ctx context.Context, email string) error { return nil },
	})

	c, _ := newAuthContext(t, "/api/auth/resend-code", `{"email":"not-an-email"}`)

	err := handler.ResendCode(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
