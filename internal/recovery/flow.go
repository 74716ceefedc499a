// Package recovery implements the three-step forgot-password flow: confirm
// the account email, prove access with a mailed one-time code, then set a new
// password.
package recovery

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"shopdesk/internal/models"
	"shopdesk/internal/validation"
)

const (
	DefaultCooldown = 30 * time.Second

	codeMin = 10000
	codeMax = 99999
)

var (
	ErrUnknownEmail = errors.New("no account with this email")
	ErrLookupFailed = errors.New("email lookup failed")
	ErrCodeMismatch = errors.New("code does not match")
	ErrNoCode       = errors.New("no code has been sent yet")
	ErrWrongStep    = errors.New("recovery step not available")
)

// CooldownError is returned when a code is requested before the previous
// send cooled down.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %ds before requesting another code", int(e.Remaining.Round(time.Second)/time.Second))
}

type Step int

const (
	StepEmail Step = iota + 1
	StepCode
	StepPassword
)

func (s Step) String() string {
	switch s {
	case StepEmail:
		return "email"
	case StepCode:
		return "code"
	case StepPassword:
		return "password"
	}
	return "unknown"
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(b []byte) error {
	for _, step := range []Step{StepEmail, StepCode, StepPassword} {
		if step.String() == string(b) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown recovery step %q", b)
}

type API interface {
	UserEmails(ctx context.Context) ([]models.UserEmail, error)
	SendOTP(ctx context.Context, email, code string) error
	UpdateUserPassword(ctx context.Context, email, newPassword string) error
}

// State is a snapshot of the flow for display.
type State struct {
	Step              Step          `json:"step"`
	Email             string        `json:"email,omitempty"`
	CodeSent          bool          `json:"codeSent"`
	CooldownRemaining time.Duration `json:"cooldownRemaining"`
}

type Flow struct {
	api      API
	val      *validation.Validator
	log      *slog.Logger
	now      func() time.Time
	cooldown time.Duration
	generate func() (string, error)

	mu            sync.Mutex
	step          Step
	email         string
	code          string
	cooldownUntil time.Time
}

func NewFlow(api API, val *validation.Validator, log *slog.Logger) *Flow {
	return &Flow{
		api:      api,
		val:      val,
		log:      log,
		now:      time.Now,
		cooldown: DefaultCooldown,
		generate: GenerateCode,
		step:     StepEmail,
	}
}

// WithClock replaces the clock used for the send cooldown.
func (f *Flow) WithClock(now func() time.Time) *Flow {
	f.now = now
	return f
}

func (f *Flow) WithCodeGenerator(gen func() (string, error)) *Flow {
	f.generate = gen
	return f
}

// GenerateCode returns a uniformly random code in [10000, 99999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Step:              f.step,
		Email:             f.email,
		CodeSent:          f.code != "",
		CooldownRemaining: f.remainingLocked(),
	}
}

func (f *Flow) remainingLocked() time.Duration {
	if f.cooldownUntil.IsZero() {
		return 0
	}
	left := f.cooldownUntil.Sub(f.now())
	if left < 0 {
		return 0
	}
	return left
}

type emailForm struct {
	Email string `json:"email" validate:"required,email"`
}

// SubmitEmail checks that email belongs to a registered account.
func (f *Flow) SubmitEmail(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepEmail {
		return ErrWrongStep
	}

	email = strings.TrimSpace(email)
	if err := f.val.Check(emailForm{Email: email}); err != nil {
		return validation.FieldErrors{"email": "Please enter a valid email."}
	}

	emails, err := f.api.UserEmails(ctx)
	if err != nil {
		f.log.Error("recovery email: lookup failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	for _, e := range emails {
		if e.Email == email {
			f.email = email
			f.step = StepCode
			f.log.Info("recovery email: ok", slog.String("email", email))
			return nil
		}
	}
	f.log.Warn("recovery email: unknown", slog.String("email", email))
	return ErrUnknownEmail
}

// SendCode mails a fresh code. The cooldown only starts once the backend
// accepted the send.
func (f *Flow) SendCode(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepCode {
		return ErrWrongStep
	}
	if left := f.remainingLocked(); left > 0 {
		return &CooldownError{Remaining: left}
	}

	code, err := f.generate()
	if err != nil {
		return err
	}
	if err := f.api.SendOTP(ctx, f.email, code); err != nil {
		f.log.Error("recovery code: send failed", slog.String("email", f.email), slog.String("error", err.Error()))
		return err
	}
	f.code = code
	f.cooldownUntil = f.now().Add(f.cooldown)
	f.log.Info("recovery code: sent", slog.String("email", f.email))
	return nil
}

// VerifyCode compares code with the most recently sent one.
func (f *Flow) VerifyCode(code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepCode {
		return ErrWrongStep
	}
	if f.code == "" {
		return ErrNoCode
	}
	if code != f.code {
		f.log.Warn("recovery verify: mismatch", slog.String("email", f.email))
		return ErrCodeMismatch
	}
	f.step = StepPassword
	return nil
}

// ResetPassword sets the new password and ends the flow.
func (f *Flow) ResetPassword(ctx context.Context, password, confirm string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPassword {
		return ErrWrongStep
	}
	if problems := validation.PasswordProblems(password); len(problems) > 0 {
		return validation.FieldErrors{"password": strings.Join(problems, " ")}
	}
	if password != confirm {
		return validation.FieldErrors{"confirmPassword": "Passwords do not match."}
	}

	if err := f.api.UpdateUserPassword(ctx, f.email, password); err != nil {
		f.log.Error("recovery reset: update failed", slog.String("email", f.email), slog.String("error", err.Error()))
		return err
	}
	f.log.Info("recovery reset: ok", slog.String("email", f.email))
	f.resetLocked()
	return nil
}

// Cancel abandons the flow and forgets the email and code.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Flow) resetLocked() {
	f.step = StepEmail
	f.email = ""
	f.code = ""
	f.cooldownUntil = time.Time{}
}

// Message is the text shown to the operator for a flow error.
func Message(err error) string {
	var cooldown *CooldownError
	switch {
	case errors.Is(err, ErrUnknownEmail):
		return "We couldn't find an account with this email. Please double-check and try again."
	case errors.Is(err, ErrLookupFailed):
		return "Error verifying email."
	case errors.Is(err, ErrCodeMismatch):
		return "Incorrect OTP. Please try again."
	case errors.As(err, &cooldown):
		return cooldown.Error()
	case err != nil:
		return err.Error()
	}
	return ""
}

// CancelPrompt is the confirmation shown before Cancel.
func CancelPrompt() models.Prompt {
	return models.Prompt{
		Title:   "Cancel Forgot Password?",
		Message: "Are you sure you want to cancel the forgot password process?",
	}
}
