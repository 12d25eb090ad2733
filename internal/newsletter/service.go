package newsletter

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sohaibalidev/Zeevno/internal/mail"
	"github.com/sohaibalidev/Zeevno/internal/validate"
)

var (
	ErrInvalidEmail   = errors.New("a valid email address is required")
	ErrTokenNotFound  = errors.New("unsubscribe token not found")
	ErrMissingContent = errors.New("subject, html content, and text content are required")
)

// sendBatchSize limits how many emails are enqueued before pausing, to
// avoid flooding the delivery worker.
const sendBatchSize = 10

type Service struct {
	repo    Repository
	mailer  mail.Mailer
	logger  *log.Logger
	appName string
	baseURL string

	// batchPause is overridable in tests
	batchPause time.Duration
}

func NewService(repo Repository, mailer mail.Mailer, logger *log.Logger, appName, baseURL string) *Service {
	return &Service{
		repo:       repo,
		mailer:     mailer,
		logger:     logger,
		appName:    appName,
		baseURL:    baseURL,
		batchPause: time.Second,
	}
}

// Subscribe signs an email up, reactivating previously unsubscribed
// addresses. Subscribing an already-active address is a no-op; the
// returned flag lets the handler phrase it accordingly. The welcome
// email is fire-and-forget: a delivery queue hiccup should not fail
// the subscription.
func (s *Service) Subscribe(ctx context.Context, email string) (already bool, err error) {
	if !validate.Email(email) {
		return false, ErrInvalidEmail
	}

	token, err := newUnsubscribeToken()
	if err != nil {
		return false, err
	}

	existing, err := s.repo.ByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Status == StatusSubscribed {
			return true, nil
		}
		if err := s.repo.Reactivate(ctx, email, token); err != nil {
			return false, err
		}

	case errors.Is(err, ErrNotFound):
		now := time.Now().UTC()
		sub := Subscriber{
			Email:            email,
			Status:           StatusSubscribed,
			SubscribedAt:     now,
			UnsubscribeToken: token,
			LastUpdated:      now,
		}
		if err := s.repo.Insert(ctx, sub); err != nil {
			return false, err
		}

	default:
		return false, err
	}

	welcome := mail.Message{
		Kind:    "newsletter-welcome",
		To:      email,
		Subject: fmt.Sprintf("Welcome to %s's Newsletter!", s.appName),
		Text:    fmt.Sprintf("Welcome to %s's Newsletter!", s.appName),
		HTML:    mail.NewsletterWelcomeHTML(s.appName, email, s.unsubscribeLink(token)),
	}
	if err := s.mailer.Send(ctx, welcome); err != nil {
		s.logger.Printf("failed to enqueue welcome email for %s: %v", email, err)
	}

	return false, nil
}

// Unsubscribe burns the token and returns the affected subscriber so
// the handler can render a confirmation page. Unsubscribing twice is
// harmless; the second call finds no token and reports it.
func (s *Service) Unsubscribe(ctx context.Context, token string) (*Subscriber, error) {
	sub, err := s.repo.ByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if sub.Status != StatusSubscribed {
		return sub, nil
	}

	if err := s.repo.Deactivate(ctx, token); err != nil {
		return nil, err
	}
	sub.Status = StatusUnsubscribed

	goodbye := mail.Message{
		Kind:    "newsletter-goodbye",
		To:      sub.Email,
		Subject: fmt.Sprintf("You've unsubscribed from %s", s.appName),
		Text:    fmt.Sprintf("You've been unsubscribed from %s. You will no longer receive our newsletters.", s.appName),
		HTML:    mail.NewsletterGoodbyeHTML(s.appName, sub.Email),
	}
	if err := s.mailer.Send(ctx, goodbye); err != nil {
		s.logger.Printf("failed to enqueue goodbye email for %s: %v", sub.Email, err)
	}

	return sub, nil
}

func (s *Service) Subscribers(ctx context.Context) ([]Subscriber, error) {
	return s.repo.List(ctx)
}

// SendIssue enqueues a newsletter for every active subscriber, pausing
// between batches. Individual failures are collected, not fatal.
func (s *Service) SendIssue(ctx context.Context, subject, htmlContent, textContent string) (SendStats, error) {
	if subject == "" || htmlContent == "" || textContent == "" {
		return SendStats{}, ErrMissingContent
	}

	subs, err := s.repo.Active(ctx)
	if err != nil {
		return SendStats{}, err
	}

	stats := SendStats{TotalSubscribers: len(subs)}
	for i, sub := range subs {
		if i > 0 && i%sendBatchSize == 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(s.batchPause):
			}
		}

		msg := mail.Message{
			Kind:    "newsletter-issue",
			To:      sub.Email,
			Subject: subject,
			Text:    textContent,
			HTML:    mail.NewsletterIssueHTML(htmlContent, s.unsubscribeLink(sub.UnsubscribeToken)),
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Printf("failed to enqueue newsletter for %s: %v", sub.Email, err)
			stats.FailedSends++
			stats.FailedEmails = append(stats.FailedEmails, sub.Email)
			continue
		}
		stats.SuccessfulSends++
	}

	return stats, nil
}

func (s *Service) unsubscribeLink(token string) string {
	return s.baseURL + "/api/newsletter/unsubscribe/" + token
}

func newUnsubscribeToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate unsubscribe token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
