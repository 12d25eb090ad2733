package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sohaibalidev/Zeevno/internal/mail"
	"github.com/sohaibalidev/Zeevno/internal/metrics"
	"github.com/sohaibalidev/Zeevno/internal/validate"
)

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrInvalidPhone  = errors.New("invalid phone format")
	ErrUserExists    = errors.New("email or phone already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrLinkInvalid   = errors.New("magic link is invalid or has expired")
)

const (
	registerLinkTTL = 24 * time.Hour
	loginLinkTTL    = 15 * time.Minute
)

// Service implements passwordless authentication: registration parks
// the user data behind an emailed magic link; clicking the link either
// promotes the registration or signs an existing user in.
type Service struct {
	repo    Repository
	mailer  mail.Mailer
	tokens  *TokenIssuer
	logger  *log.Logger
	appName string
	baseURL string
}

func NewService(repo Repository, mailer mail.Mailer, tokens *TokenIssuer, logger *log.Logger, appName, baseURL string) *Service {
	return &Service{
		repo:    repo,
		mailer:  mailer,
		tokens:  tokens,
		logger:  logger,
		appName: appName,
		baseURL: baseURL,
	}
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if req.FullName == "" || req.Email == "" || req.Phone == "" || req.Address == "" {
		return ErrMissingFields
	}
	if !validate.Email(req.Email) {
		return ErrInvalidEmail
	}
	if !validate.Phone(req.Phone) {
		return ErrInvalidPhone
	}

	email := strings.ToLower(req.Email)

	exists, err := s.repo.UserExists(ctx, email, req.Phone)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	now := time.Now().UTC()
	pending := PendingRegistration{
		Email:     email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Address:   req.Address,
		Roles:     []string{"customer"},
		CreatedAt: now,
		ExpiresAt: now.Add(registerLinkTTL),
	}
	if err := s.repo.SavePending(ctx, pending); err != nil {
		return err
	}

	return s.issueLink(ctx, email, PurposeRegister, registerLinkTTL, "Verify your account")
}

func (s *Service) SendLoginLink(ctx context.Context, email string) error {
	if _, err := s.repo.UserByEmail(ctx, email); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.issueLink(ctx, email, PurposeLogin, loginLinkTTL, "Your magic login link")
}

// VerifyLink consumes a magic link and returns a signed session token
// plus the authenticated user.
func (s *Service) VerifyLink(ctx context.Context, token string) (string, *User, error) {
	link, err := s.repo.MagicLinkByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrLinkInvalid
		}
		return "", nil, err
	}

	var user *User
	now := time.Now().UTC()

	switch link.Purpose {
	case PurposeRegister:
		pending, err := s.repo.PendingByEmail(ctx, link.Email)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return "", nil, ErrLinkInvalid
			}
			return "", nil, err
		}

		user = &User{
			Email:       pending.Email,
			FullName:    pending.FullName,
			Phone:       pending.Phone,
			Address:     pending.Address,
			Roles:       pending.Roles,
			CreatedAt:   now,
			LastLoginAt: now,
		}
		if err := s.repo.InsertUser(ctx, user); err != nil {
			return "", nil, err
		}
		if err := s.repo.DeletePending(ctx, link.Email); err != nil {
			return "", nil, err
		}

	case PurposeLogin:
		user, err = s.repo.UserByEmail(ctx, link.Email)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return "", nil, ErrLinkInvalid
			}
			return "", nil, err
		}
		if err := s.repo.TouchLastLogin(ctx, user.Email); err != nil {
			return "", nil, err
		}

	default:
		return "", nil, ErrLinkInvalid
	}

	session, err := s.tokens.Sign(user.Email)
	if err != nil {
		return "", nil, err
	}

	// links are single use
	if err := s.repo.DeleteMagicLinks(ctx, user.Email); err != nil {
		return "", nil, err
	}

	return session, user, nil
}

// UserFromSession resolves a cookie token to the user record backing
// it. Used by the session middleware on every authenticated request.
func (s *Service) UserFromSession(ctx context.Context, token string) (*User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) SessionTTL() time.Duration { return s.tokens.TTL() }

func (s *Service) issueLink(ctx context.Context, email, purpose string, ttl time.Duration, subject string) error {
	token, err := newLinkToken()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.repo.ReplaceMagicLink(ctx, MagicLink{
		Token:     token,
		Email:     email,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return err
	}

	link := s.baseURL + "/verify/" + token
	err = s.mailer.Send(ctx, mail.Message{
		Kind:    "magic-link",
		To:      email,
		Subject: subject,
		Text:    "Click this link to continue: " + link,
		HTML:    mail.MagicLinkHTML(s.appName, link, email),
	})
	if err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}

	metrics.MagicLinksIssued.WithLabelValues(purpose).Inc()
	s.logger.Printf("issued %s link for %s", purpose, email)
	return nil
}

func newLinkToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate link token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
