package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestServer runs a minimal API double that issues a token on login and
// requires it on /api/users/profile.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch {
		case body.Email == "unverified@example.com":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "email not verified",
				"code":  "EMAIL_NOT_VERIFIED",
				"email": body.Email,
			})
		case body.Password != "secret1":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "valid-token",
				"user":  map[string]any{"id": "user_1", "email": body.Email, "role": "CLIENT", "verified": true},
			})
		}
	})

	mux.HandleFunc("GET /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-token" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "user_1", "email": "a@example.com", "role": "CLIENT"})
	})

	mux.HandleFunc("GET /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("public listing must not require a token, got %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": "job_1", "title": "Hem dress", "status": "APPROVED"}})
	})

	mux.HandleFunc("POST /api/upload/single", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		f, fh, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}
		f.Close()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example/" + fh.Filename})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginStoresSessionAndAttachesBearer(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	user, err := c.Login(context.Background(), "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != "user_1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if s, ok := c.Session(); !ok || s.Token != "valid-token" {
		t.Fatalf("session not cached: %+v", s)
	}

	// The cached token authenticates the next call.
	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
}

func TestClient_LoginUnverified(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	_, err := c.Login(context.Background(), "unverified@example.com", "secret1")
	var unverified *UnverifiedError
	if !errors.As(err, &unverified) {
		t.Fatalf("expected *UnverifiedError, got %v", err)
	}
	if unverified.Email != "unverified@example.com" {
		t.Fatalf("expected email carried in error, got %q", unverified.Email)
	}
	// Not a 401: any previously cached session must survive.
	if _, ok := c.Session(); ok {
		t.Fatalf("no session should have been stored")
	}
}

func TestClient_APIErrorEnvelope(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	_, err := c.Login(context.Background(), "a@example.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.Status)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("expected server envelope message, got %q", apiErr.Message)
	}
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	srv := newTestServer(t)
	store := NewMemorySessionStore()
	c := New(srv.URL, WithSessionStore(store))

	notified := false
	c.OnUnauthorized = func() { notified = true }

	_ = store.Set(Session{Token: "stale-token", User: User{ID: "user_1"}})

	_, err := c.Profile(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("401 must clear the session")
	}
	if !notified {
		t.Fatalf("OnUnauthorized hook not invoked")
	}
}

func TestClient_PublicListingWithoutSession(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	jobs, err := c.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs returned error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Hem dress" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestClient_UploadSingleMultipart(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	url, err := c.UploadSingle(context.Background(), FileUpload{
		Name:   "photo.png",
		Reader: strings.NewReader("fake image bytes"),
	})
	if err != nil {
		t.Fatalf("UploadSingle returned error: %v", err)
	}
	if url != "https://cdn.example/photo.png" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestClient_CreateJobCapsImagesLocally(t *testing.T) {
	// No server: the cap must reject before any request is attempted.
	c := New("http://127.0.0.1:0")

	images := make([]FileUpload, maxJobImages+1)
	for i := range images {
		images[i] = FileUpload{Name: "p.png", Reader: strings.NewReader("x")}
	}
	_, err := c.CreateJob(context.Background(), CreateJobInput{
		Title:       "Job",
		Category:    "alterations",
		Budget:      10,
		Description: "desc",
		Images:      images,
	})
	if err == nil || !strings.Contains(err.Error(), "images") {
		t.Fatalf("expected image cap error, got %v", err)
	}
}

func TestClient_IsAdmin(t *testing.T) {
	store := NewMemorySessionStore()
	c := New("http://example.invalid", WithSessionStore(store))

	if c.IsAdmin() {
		t.Fatalf("no session must not be admin")
	}
	_ = store.Set(Session{Token: "tok", User: User{Role: "CLIENT"}})
	if c.IsAdmin() {
		t.Fatalf("CLIENT must not be admin")
	}
	_ = store.Set(Session{Token: "tok", User: User{Role: "ADMIN"}})
	if !c.IsAdmin() {
		t.Fatalf("ADMIN session should report admin")
	}
}
