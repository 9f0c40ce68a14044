package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aurora/web/internal/config"
	"aurora/web/internal/ids"
	"aurora/web/internal/models"
	"aurora/web/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrTermsNotAccepted   = errors.New("terms and conditions must be accepted")
)

// CredentialVerifier checks a login attempt. The store-backed
// implementation below is a stand-in; a real identity provider can be
// substituted without touching the auth service.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (models.UserProfile, error)
}

// StoreVerifier verifies passwords against the argon2id hash on the
// stored profile. Unknown account and wrong password both come back as
// ErrInvalidCredentials.
type StoreVerifier struct {
	users *Users
}

func NewStoreVerifier(users *Users) *StoreVerifier {
	return &StoreVerifier{users: users}
}

func (v *StoreVerifier) Verify(ctx context.Context, email, password string) (models.UserProfile, error) {
	user, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.UserProfile{}, ErrInvalidCredentials
		}
		return models.UserProfile{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return models.UserProfile{}, ErrInvalidCredentials
	}
	return user, nil
}

type AuthService struct {
	users    *Users
	verifier CredentialVerifier
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(users *Users, verifier CredentialVerifier, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		verifier: verifier,
		cfg:      cfg,
		log:      log,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptedTerms   bool
}

type AuthResult struct {
	Token string
	User  models.UserProfile
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return AuthResult{}, fmt.Errorf("username, email and password required")
	}
	if input.Password != input.ConfirmPassword {
		return AuthResult{}, ErrPasswordMismatch
	}
	if len(input.Password) < 8 {
		return AuthResult{}, ErrPasswordTooShort
	}
	if !input.AcceptedTerms {
		return AuthResult{}, ErrTermsNotAccepted
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.UserProfile{
		ID:           ids.New(),
		Email:        input.Email,
		Username:     input.Username,
		Rank:         models.RankMember,
		JoinDate:     time.Now().UTC().Format("2006-01-02"),
		PasswordHash: passwordHash,
	}

	// Uniqueness of email and username is enforced by Create under the
	// collection lock.
	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	if err := pace(ctx, s.cfg.Security.LoginDelay); err != nil {
		return AuthResult{}, err
	}

	user, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}

	return s.issueToken(user)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) issueToken(user models.UserProfile) (AuthResult, error) {
	token, err := security.GenerateUserToken(
		s.cfg.Security.JWTSecret,
		user.ID,
		user.Username,
		string(user.Rank),
		s.cfg.Security.UserTokenTTL,
	)
	if err != nil {
		return AuthResult{}, err
	}

	user.PasswordHash = nil
	return AuthResult{Token: token, User: user}, nil
}

// pace holds the caller for d, the configurable stand-in for the
// original's fixed login latency. Cancelling the context cuts it
// short.
func pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
