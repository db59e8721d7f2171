package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/marquee-events/marquee/internal/domain/model"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

const defaultWebhookTimeout = 10 * time.Second

// WebhookNotifierOptions groups configuration for WebhookNotifier.
type WebhookNotifierOptions struct {
	URL      string
	BodyExpr string // JMESPath over the inquiry payload; empty sends the full payload
	Client   *http.Client
	Logger   *slog.Logger
}

// WebhookNotifier posts new inquiries to a configured HTTP endpoint. The
// request body is shaped by a JMESPath expression so arbitrary receivers
// (chat hooks, CRMs) can be fed without code changes.
type WebhookNotifier struct {
	url      string
	bodyExpr string
	client   *http.Client
	jems     JMESPathEvaluator
	logger   *slog.Logger
}

// NewWebhookNotifier validates the target URL and body expression and
// returns a ready notifier.
func NewWebhookNotifier(opts WebhookNotifierOptions) (*WebhookNotifier, error) {
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid webhook URL scheme: %s", u.Scheme)
	}
	jems := jmespathLibEvaluator{}
	if err := jems.Validate(opts.BodyExpr); err != nil {
		return nil, fmt.Errorf("invalid body expression: %w", err)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: defaultWebhookTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookNotifier{
		url:      opts.URL,
		bodyExpr: opts.BodyExpr,
		client:   client,
		jems:     jems,
		logger:   logger,
	}, nil
}

// Notify posts the inquiry to the webhook endpoint.
func (n *WebhookNotifier) Notify(ctx context.Context, inq *model.Inquiry) error {
	payload := inquiryPayload(inq)

	body := any(payload)
	if strings.TrimSpace(n.bodyExpr) != "" {
		shaped, err := n.jems.Evaluate(n.bodyExpr, payload)
		if err != nil {
			return fmt.Errorf("evaluate body expression: %w", err)
		}
		body = shaped
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// inquiryPayload flattens an inquiry into the generic map the JMESPath body
// expression is evaluated against.
func inquiryPayload(inq *model.Inquiry) map[string]any {
	payload := map[string]any{
		"id":         inq.ID,
		"name":       inq.Name,
		"email":      inq.Email,
		"message":    inq.Message,
		"created_at": inq.CreatedAt.Format(time.RFC3339),
	}
	if inq.Phone != nil {
		payload["phone"] = *inq.Phone
	}
	if inq.EventType != nil {
		payload["event_type"] = *inq.EventType
	}
	if inq.EventDate != nil {
		payload["event_date"] = inq.EventDate.Format("2006-01-02")
	}
	return payload
}
