package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sohaibalidev/Zeevno/internal/newsletter"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	Unsubscribe(ctx context.Context, token string) (*newsletter.Subscriber, error)
	Subscribers(ctx context.Context) ([]newsletter.Subscriber, error)
	SendIssue(ctx context.Context, subject, htmlContent, textContent string) (newsletter.SendStats, error)
}

type NewsletterHandler struct {
	svc     NewsletterService
	logger  *log.Logger
	appName string
}

func NewNewsletterHandler(svc NewsletterService, logger *log.Logger, appName string) *NewsletterHandler {
	return &NewsletterHandler{svc: svc, logger: logger, appName: appName}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	already, err := h.svc.Subscribe(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, newsletter.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		writeServerError(w, h.logger, err)
		return
	}

	if already {
		writeMessage(w, http.StatusOK, "You're already subscribed.")
		return
	}
	writeMessage(w, http.StatusCreated, "Subscribed! Check your inbox for a welcome email.")
}

// Unsubscribe is hit from an email link, so the response is a small
// HTML page rather than JSON.
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	sub, err := h.svc.Unsubscribe(r.Context(), token)
	if err != nil {
		if errors.Is(err, newsletter.ErrTokenNotFound) {
			h.writeHTMLPage(w, http.StatusNotFound, "Link not found",
				"This unsubscribe link is invalid or was already used.")
			return
		}
		h.logger.Printf("unsubscribe failed: %v", err)
		h.writeHTMLPage(w, http.StatusInternalServerError, "Something went wrong",
			"We couldn't process your request. Please try again later.")
		return
	}

	h.writeHTMLPage(w, http.StatusOK, "You've unsubscribed",
		fmt.Sprintf("%s will no longer receive the %s newsletter.", sub.Email, h.appName))
}

func (h *NewsletterHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.Subscribers(r.Context())
	if err != nil {
		writeServerError(w, h.logger, err)
		return
	}
	if subs == nil {
		subs = []newsletter.Subscriber{}
	}
	writeData(w, http.StatusOK, map[string]any{
		"subscribers": subs,
		"total":       len(subs),
	})
}

type sendIssueRequest struct {
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
	TextContent string `json:"textContent"`
}

func (h *NewsletterHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	stats, err := h.svc.SendIssue(r.Context(), req.Subject, req.HTMLContent, req.TextContent)
	if err != nil {
		if errors.Is(err, newsletter.ErrMissingContent) {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		writeServerError(w, h.logger, err)
		return
	}

	writeDataMessage(w, http.StatusOK, stats,
		fmt.Sprintf("Newsletter sent to %d of %d subscribers", stats.SuccessfulSends, stats.TotalSubscribers))
}

func (h *NewsletterHandler) writeHTMLPage(w http.ResponseWriter, status int, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 40px auto; padding: 20px; text-align: center;">
  <h2>%s</h2>
  <p>%s</p>
</body>
</html>`, title, body)
}
