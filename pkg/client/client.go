// Package client is a Go SDK for the TailorHub marketplace API. It caches
// the session between calls, attaches the bearer token, and maps error
// responses onto typed errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a single TailorHub API origin. Every call makes exactly
// one attempt; there is no retry or caching layer.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore

	// OnUnauthorized is invoked after a 401 response has cleared the
	// session, so the caller can route back to login. Optional.
	OnUnauthorized func()
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSessionStore replaces the default in-memory session store.
func WithSessionStore(store SessionStore) Option {
	return func(c *Client) { c.store = store }
}

// New returns a Client for the given API origin, for example
// "https://api.tailorhub.example".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   NewMemorySessionStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the cached session, if any.
func (c *Client) Session() (Session, bool) {
	return c.store.Get()
}

// Logout drops the cached session.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// IsAdmin reports whether the cached user carries the ADMIN role. Purely a
// UI affordance; the server enforces the role on every admin route.
func (c *Client) IsAdmin() bool {
	s, ok := c.store.Get()
	return ok && s.User.Role == "ADMIN"
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Email string `json:"email"`
}

// do performs one request. A JSON body is marshalled when in is non-nil; a
// 2xx response is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.roundTrip(ctx, method, path, body, contentType, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s, ok := c.store.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return c.apiError(resp)
}

// apiError turns a non-2xx response into a typed error. A 401 clears the
// session first.
func (c *Client) apiError(resp *http.Response) error {
	var env errorEnvelope
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.store.Clear()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
	}
	if env.Code == "EMAIL_NOT_VERIFIED" {
		return &UnverifiedError{Email: env.Email}
	}

	msg := env.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// --- Auth ---

type authResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Signup registers a new account. The account stays unverified until
// VerifyEmail succeeds.
func (c *Client) Signup(ctx context.Context, name, email, password, role string) (*User, error) {
	in := map[string]string{"name": name, "email": email, "password": password, "role": role}
	var out authResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates and caches the session. An unverified account yields
// a *UnverifiedError carrying the email.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	in := map[string]string{"email": email, "password": password}
	var out authResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	if err := c.store.Set(Session{Token: out.Token, User: out.User}); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// VerifyEmail confirms the emailed code, logging the user in on success.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) (*User, error) {
	in := map[string]string{"email": email, "code": code}
	var out authResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify-email", in, &out); err != nil {
		return nil, err
	}
	if err := c.store.Set(Session{Token: out.Token, User: out.User}); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ResendCode requests a fresh verification code. Throttled server-side.
func (c *Client) ResendCode(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/resend-code", in, nil)
}

// --- Users ---

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileUpdate carries optional profile changes; nil fields are left
// untouched.
type ProfileUpdate struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", update, &out); err != nil {
		return nil, err
	}
	if s, ok := c.store.Get(); ok {
		s.User = out
		_ = c.store.Set(s)
	}
	return &out, nil
}

// --- Jobs ---

// CreateJobInput is a new job request. Images beyond the first five are
// rejected before any bytes leave the client.
type CreateJobInput struct {
	Title       string
	Category    string
	Budget      float64
	Description string
	Images      []FileUpload
}

// FileUpload is one file for a multipart request.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

func (c *Client) CreateJob(ctx context.Context, in CreateJobInput) (*Job, error) {
	if len(in.Images) > 0 {
		if len(in.Images) > maxJobImages {
			return nil, fmt.Errorf("at most %d images allowed", maxJobImages)
		}
		fields := map[string]string{
			"title":       in.Title,
			"category":    in.Category,
			"budget":      strconv.FormatFloat(in.Budget, 'f', -1, 64),
			"description": in.Description,
		}
		var out Job
		if err := c.doMultipart(ctx, http.MethodPost, "/api/jobs", fields, "images", in.Images, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	payload := map[string]any{
		"title":       in.Title,
		"category":    in.Category,
		"budget":      in.Budget,
		"description": in.Description,
	}
	var out Job
	if err := c.do(ctx, http.MethodPost, "/api/jobs", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListJobs returns the public listing of approved jobs, newest first.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var out []Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Services ---

type CreateServiceInput struct {
	Title       string
	Skills      []string
	Price       float64
	Delivery    string
	Description string
	Image       *FileUpload
}

func (c *Client) CreateService(ctx context.Context, in CreateServiceInput) (*Service, error) {
	if in.Image != nil {
		fields := map[string]string{
			"title":       in.Title,
			"skills":      strings.Join(in.Skills, ","),
			"price":       strconv.FormatFloat(in.Price, 'f', -1, 64),
			"delivery":    in.Delivery,
			"description": in.Description,
		}
		var out Service
		if err := c.doMultipart(ctx, http.MethodPost, "/api/services", fields, "image", []FileUpload{*in.Image}, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	payload := map[string]any{
		"title":       in.Title,
		"skills":      in.Skills,
		"price":       in.Price,
		"delivery":    in.Delivery,
		"description": in.Description,
	}
	var out Service
	if err := c.do(ctx, http.MethodPost, "/api/services", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	var out []Service
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Orders ---

func (c *Client) PlaceOrder(ctx context.Context, serviceID string) (*Order, error) {
	in := map[string]string{"serviceId": serviceID}
	var out Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Social ---

func (c *Client) CreatePost(ctx context.Context, content, imageURL string) (*Post, error) {
	in := map[string]string{"content": content}
	if imageURL != "" {
		in["imageUrl"] = imageURL
	}
	var out Post
	if err := c.do(ctx, http.MethodPost, "/api/social/post", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Feed(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.do(ctx, http.MethodGet, "/api/social/feed", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Like toggles the caller's like on a post.
func (c *Client) Like(ctx context.Context, postID string) (*LikeResult, error) {
	in := map[string]string{"postId": postID}
	var out LikeResult
	if err := c.do(ctx, http.MethodPost, "/api/social/like", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Follow toggles following another user.
func (c *Client) Follow(ctx context.Context, userID string) (*FollowResult, error) {
	in := map[string]string{"userId": userID}
	var out FollowResult
	if err := c.do(ctx, http.MethodPost, "/api/social/follow", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Uploads ---

func (c *Client) UploadSingle(ctx context.Context, file FileUpload) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.doMultipart(ctx, http.MethodPost, "/api/upload/single", nil, "file", []FileUpload{file}, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *Client) UploadMultiple(ctx context.Context, files []FileUpload) ([]string, error) {
	var out struct {
		URLs []string `json:"urls"`
	}
	if err := c.doMultipart(ctx, http.MethodPost, "/api/upload/multiple", nil, "files", files, &out); err != nil {
		return nil, err
	}
	return out.URLs, nil
}

// --- Assistant ---

// Chat sends one message to the tailoring assistant.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	in := map[string]string{"message": message}
	var out struct {
		Reply string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/ai/chat", in, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// --- Cards ---

// ActiveCard returns the platform's active payout card with a masked
// number. Public.
func (c *Client) ActiveCard(ctx context.Context) (*PaymentCard, error) {
	var out PaymentCard
	if err := c.do(ctx, http.MethodGet, "/api/cards/active", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Admin ---

func (c *Client) AdminListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminListJobs lists jobs for moderation, optionally filtered by status
// (PENDING, APPROVED, REJECTED).
func (c *Client) AdminListJobs(ctx context.Context, status string) ([]Job, error) {
	path := "/api/admin/jobs"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []Job
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminApproveJob(ctx context.Context, jobID string) (*Job, error) {
	var out Job
	if err := c.do(ctx, http.MethodPut, "/api/admin/jobs/"+url.PathEscape(jobID)+"/approve", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminRejectJob(ctx context.Context, jobID string) (*Job, error) {
	var out Job
	if err := c.do(ctx, http.MethodPut, "/api/admin/jobs/"+url.PathEscape(jobID)+"/reject", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CommissionSettings(ctx context.Context) (*CommissionConfig, error) {
	var out CommissionConfig
	if err := c.do(ctx, http.MethodGet, "/api/admin/commission/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCommission(ctx context.Context, rate float64) (*CommissionConfig, error) {
	in := map[string]float64{"rate": rate}
	var out CommissionConfig
	if err := c.do(ctx, http.MethodPut, "/api/admin/commission/settings", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CommissionStats(ctx context.Context) (*CommissionStats, error) {
	var out CommissionStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/commission/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CardInput is a payout card submission. Sent as form fields; the CVC is
// never echoed back by the server.
type CardInput struct {
	CardNumber string
	CardHolder string
	Expiry     string
	CVC        string
	Image      *FileUpload
}

func (c *Client) AdminListCards(ctx context.Context) ([]PaymentCard, error) {
	var out []PaymentCard
	if err := c.do(ctx, http.MethodGet, "/api/admin/cards", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminCreateCard(ctx context.Context, in CardInput) (*PaymentCard, error) {
	var out PaymentCard
	if err := c.submitCard(ctx, http.MethodPost, "/api/admin/cards", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateCard(ctx context.Context, cardID string, in CardInput) (*PaymentCard, error) {
	var out PaymentCard
	if err := c.submitCard(ctx, http.MethodPut, "/api/admin/cards/"+url.PathEscape(cardID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminDeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/cards/"+url.PathEscape(cardID), nil, nil)
}

func (c *Client) submitCard(ctx context.Context, method, path string, in CardInput, out any) error {
	fields := map[string]string{
		"cardNumber": in.CardNumber,
		"cardHolder": in.CardHolder,
		"expiry":     in.Expiry,
		"cvc":        in.CVC,
	}
	var files []FileUpload
	if in.Image != nil {
		files = []FileUpload{*in.Image}
	}
	return c.doMultipart(ctx, method, path, fields, "image", files, out)
}

// doMultipart performs one multipart/form-data request with the given text
// fields and files under fileField.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, fileField string, files []FileUpload, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(fileField, f.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.roundTrip(ctx, method, path, &buf, w.FormDataContentType(), out)
}
