package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/shared"
)

// Config carries token lifetimes and the base URL used in emailed links.
type Config struct {
	LoginTTL    time.Duration
	ResetTTL    time.Duration
	VerifyTTL   time.Duration
	FrontendURL string
}

func (c Config) withDefaults() Config {
	if c.LoginTTL <= 0 {
		c.LoginTTL = time.Hour
	}
	if c.ResetTTL <= 0 {
		c.ResetTTL = time.Hour
	}
	if c.VerifyTTL <= 0 {
		c.VerifyTTL = 24 * time.Hour
	}
	return c
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	TokenType string
}

// RegisterInput collects the fields required to create an account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     Role
}

// Service orchestrates credential checks, token issuance, registration, and
// the password-reset flow. All operations are request-scoped; the only shared
// state (signing secret, bcrypt cost) is immutable after construction.
type Service struct {
	logger    *slog.Logger
	repo      Repository
	hasher    Hasher
	tokens    *TokenService
	notifier  Notifier
	singleUse SingleUse
	cfg       Config
}

// NewService constructs a new Service.
func NewService(logger *slog.Logger, repo Repository, hasher Hasher, tokens *TokenService, notifier Notifier, singleUse SingleUse, cfg Config) *Service {
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	return &Service{
		logger:    logger,
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		notifier:  notifier,
		singleUse: singleUse,
		cfg:       cfg.withDefaults(),
	}
}

// Authenticate validates email/password credentials. Unknown email, wrong
// password, and deactivated account all return the same
// shared.ErrInvalidCredentials, and the unknown-email path still burns a
// bcrypt comparison so the branches are indistinguishable from outside.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.hasher.Verify(password, dummyHash)
		return nil, shared.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a login-purpose bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user.ID, PurposeLogin, s.cfg.LoginTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: login: %w", err)
	}
	return &Session{Token: token, TokenType: "bearer"}, nil
}

// CurrentUser resolves the account behind a login token. Any token failure
// collapses to shared.ErrUnauthenticated; a valid token whose subject is
// deactivated returns shared.ErrInactiveUser, which callers may expose since
// the identity is already proven.
func (s *Service) CurrentUser(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.Validate(token, PurposeLogin)
	if err != nil {
		s.logger.Debug("login token rejected", slog.Any("error", err))
		return nil, shared.ErrUnauthenticated
	}
	id, err := claims.SubjectID()
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}
	if !user.IsActive {
		return nil, shared.ErrInactiveUser
	}
	return user, nil
}

// Register creates an account with a hashed password. Accounts are active
// immediately; email verification only flips IsVerified and does not gate
// login. The verification email is enqueued fire-and-forget: enqueue errors
// are logged and never fail the registration.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if !in.Role.Valid() {
		return nil, fmt.Errorf("auth: register: unknown role %q", in.Role)
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: register: %w", err)
	}
	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FullName:     in.FullName,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}
	s.sendVerificationEmail(ctx, user)
	return user, nil
}

// RequestPasswordReset always reports success so callers cannot probe which
// emails are registered. When the account exists, a reset-purpose token is
// issued and mailed; any issuance or enqueue problem is logged and dropped.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}
	token, err := s.tokens.Issue(user.ID, PurposePasswordReset, s.cfg.ResetTTL)
	if err != nil {
		s.logger.Error("issue reset token", slog.Any("error", err))
		return nil
	}
	body := fmt.Sprintf("Please click the following link to reset your password: %s/reset-password?token=%s",
		s.cfg.FrontendURL, token)
	if err := s.notifier.SendEmail(ctx, user.Email, "Reset your password", body); err != nil {
		s.logger.Warn("enqueue reset email", slog.Any("error", err))
	}
	return nil
}

// ResetPassword finalizes a reset using a reset-purpose token. Each token is
// single use: its id is claimed in the SingleUse store for the reset TTL, and
// a replay is rejected as unauthenticated.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.Validate(token, PurposePasswordReset)
	if err != nil {
		s.logger.Debug("reset token rejected", slog.Any("error", err))
		return shared.ErrUnauthenticated
	}
	fresh, err := s.singleUse.Consume(ctx, claims.ID, s.cfg.ResetTTL)
	if err != nil {
		return fmt.Errorf("auth: reset password: %w", err)
	}
	if !fresh {
		return shared.ErrUnauthenticated
	}
	id, err := claims.SubjectID()
	if err != nil {
		return shared.ErrUnauthenticated
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrUnauthenticated
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth: reset password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("auth: reset password: %w", err)
	}
	return nil
}

// VerifyEmail marks the token subject as verified.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token, PurposeEmailVerify)
	if err != nil {
		s.logger.Debug("verify token rejected", slog.Any("error", err))
		return shared.ErrUnauthenticated
	}
	id, err := claims.SubjectID()
	if err != nil {
		return shared.ErrUnauthenticated
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrUnauthenticated
	}
	if user.IsVerified {
		return nil
	}
	user.IsVerified = true
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("auth: verify email: %w", err)
	}
	return nil
}

func (s *Service) sendVerificationEmail(ctx context.Context, user *User) {
	token, err := s.tokens.Issue(user.ID, PurposeEmailVerify, s.cfg.VerifyTTL)
	if err != nil {
		s.logger.Error("issue verification token", slog.Any("error", err))
		return
	}
	body := fmt.Sprintf("Please click the following link to confirm your email: %s/verify-email?token=%s",
		s.cfg.FrontendURL, token)
	if err := s.notifier.SendEmail(ctx, user.Email, "Confirm your email", body); err != nil {
		s.logger.Warn("enqueue verification email", slog.Any("error", err))
	}
}
