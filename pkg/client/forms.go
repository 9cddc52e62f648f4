package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	maxJobImages  = 5
	maxImageBytes = 5 << 20
)

// ErrBusy is returned when a form submission is attempted while a previous
// one is still in flight.
var ErrBusy = errors.New("submission already in flight")

var formValidate = validator.New(validator.WithRequiredStructEnabled())

// form carries the shared submit protocol: at most one in-flight submission,
// fields kept on failure for correction, reset on success.
type form struct {
	mu   sync.Mutex
	busy bool
}

// submit runs fn under the busy guard. The busy flag is cleared in all
// cases.
func (f *form) submit(fn func() error) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrBusy
	}
	f.busy = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}()
	return fn()
}

// Busy reports whether a submission is in flight.
func (f *form) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// digitsOnly strips everything but ASCII digits, capped at max characters.
// max <= 0 means no cap.
func digitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if max > 0 && b.Len() == max {
			break
		}
	}
	return b.String()
}

// MaskCardNumber formats raw input as 4-digit groups, capped at 16 digits:
// "4242424242424242" becomes "4242 4242 4242 4242".
func MaskCardNumber(s string) string {
	digits := digitsOnly(s, 16)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MaskExpiry formats raw input as MM/YY, inserting the slash once the month
// is complete.
func MaskExpiry(s string) string {
	digits := digitsOnly(s, 4)
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// MaskCVC keeps numeric input only, capped at 3 digits.
func MaskCVC(s string) string {
	return digitsOnly(s, 3)
}

// LoginForm collects credentials and logs in on submit.
type LoginForm struct {
	form
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Submit validates and logs in. On success the fields are reset; on failure
// they are kept for correction. An unverified account surfaces as
// *UnverifiedError.
func (f *LoginForm) Submit(ctx context.Context, c *Client) (*User, error) {
	var user *User
	err := f.submit(func() error {
		if err := formValidate.Struct(f); err != nil {
			return err
		}
		u, err := c.Login(ctx, f.Email, f.Password)
		if err != nil {
			return err
		}
		user = u
		f.Email = ""
		f.Password = ""
		return nil
	})
	return user, err
}

// JobForm collects a new job posting. Images are capped before any network
// call is made.
type JobForm struct {
	form
	Title       string  `validate:"required"`
	Category    string  `validate:"required"`
	Budget      float64 `validate:"required,gt=0"`
	Description string  `validate:"required"`
	Images      []FileUpload
}

func (f *JobForm) Submit(ctx context.Context, c *Client) (*Job, error) {
	var job *Job
	err := f.submit(func() error {
		if err := formValidate.Struct(f); err != nil {
			return err
		}
		if len(f.Images) > maxJobImages {
			return errors.New("too many images")
		}
		j, err := c.CreateJob(ctx, CreateJobInput{
			Title:       f.Title,
			Category:    f.Category,
			Budget:      f.Budget,
			Description: f.Description,
			Images:      f.Images,
		})
		if err != nil {
			return err
		}
		job = j
		f.Title, f.Category, f.Description = "", "", ""
		f.Budget = 0
		f.Images = nil
		return nil
	})
	return job, err
}

// ServiceForm collects a new service listing. The optional image must not
// exceed 5 MiB; the size must be known up front.
type ServiceForm struct {
	form
	Title       string  `validate:"required"`
	Skills      string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
	Delivery    string  `validate:"required"`
	Description string  `validate:"required"`
	Image       *FileUpload
	ImageSize   int64
}

func (f *ServiceForm) Submit(ctx context.Context, c *Client) (*Service, error) {
	var svc *Service
	err := f.submit(func() error {
		if err := formValidate.Struct(f); err != nil {
			return err
		}
		if f.Image != nil && f.ImageSize > maxImageBytes {
			return errors.New("image exceeds 5MB")
		}
		s, err := c.CreateService(ctx, CreateServiceInput{
			Title:       f.Title,
			Skills:      splitSkills(f.Skills),
			Price:       f.Price,
			Delivery:    f.Delivery,
			Description: f.Description,
			Image:       f.Image,
		})
		if err != nil {
			return err
		}
		svc = s
		f.Title, f.Skills, f.Delivery, f.Description = "", "", "", ""
		f.Price = 0
		f.Image, f.ImageSize = nil, 0
		return nil
	})
	return svc, err
}

func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CardForm collects a payout card. Assign raw input through the mask
// helpers so the stored values stay formatted.
type CardForm struct {
	form
	CardNumber string `validate:"required"`
	CardHolder string `validate:"required"`
	Expiry     string `validate:"required,len=5"`
	CVC        string `validate:"required,len=3,numeric"`
	Image      *FileUpload
}

// SetCardNumber applies the 4-digit grouping mask.
func (f *CardForm) SetCardNumber(raw string) {
	f.CardNumber = MaskCardNumber(raw)
}

// SetExpiry applies the MM/YY mask.
func (f *CardForm) SetExpiry(raw string) {
	f.Expiry = MaskExpiry(raw)
}

// SetCVC applies the numeric-only mask.
func (f *CardForm) SetCVC(raw string) {
	f.CVC = MaskCVC(raw)
}

func (f *CardForm) Submit(ctx context.Context, c *Client) (*PaymentCard, error) {
	var card *PaymentCard
	err := f.submit(func() error {
		if err := formValidate.Struct(f); err != nil {
			return err
		}
		cd, err := c.AdminCreateCard(ctx, CardInput{
			CardNumber: f.CardNumber,
			CardHolder: f.CardHolder,
			Expiry:     f.Expiry,
			CVC:        f.CVC,
			Image:      f.Image,
		})
		if err != nil {
			return err
		}
		card = cd
		f.CardNumber, f.CardHolder, f.Expiry, f.CVC = "", "", "", ""
		f.Image = nil
		return nil
	})
	return card, err
}

// CommissionForm updates the platform commission rate, bounded to [0, 30].
type CommissionForm struct {
	form
	Rate float64 `validate:"gte=0,lte=30"`
}

func (f *CommissionForm) Submit(ctx context.Context, c *Client) (*CommissionConfig, error) {
	var cfg *CommissionConfig
	err := f.submit(func() error {
		if err := formValidate.Struct(f); err != nil {
			return err
		}
		updated, err := c.UpdateCommission(ctx, f.Rate)
		if err != nil {
			return err
		}
		cfg = updated
		return nil
	})
	return cfg, err
}
