package hood

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hood-sync/feature/feed"

	"go.uber.org/zap"
)

// Existence is the explicit three-outcome result of an existence check.
type Existence int

const (
	// NotFound means the marketplace answered and the article is not listed.
	NotFound Existence = iota
	// Found means the marketplace answered with a non-error payload for the
	// lookup.
	Found
	// CheckFailed means the check itself failed: transport error, non-success
	// HTTP status, or unparsable body. Callers own the policy for this
	// outcome; the client never converts it into Found or an error.
	CheckFailed
)

func (e Existence) String() string {
	switch e {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case CheckFailed:
		return "check_failed"
	default:
		return "unknown"
	}
}

// APIError reports a failed insert or update: transport failure, non-success
// HTTP status, unparsable response, or a marketplace-reported error element.
type APIError struct {
	Operation  string
	ArticleID  string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("hood %s failed for article %s: %s", e.Operation, e.ArticleID, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AuditSink receives a copy of every request/response exchange.
// Bodies contain account credentials and must be treated as sensitive.
type AuditSink interface {
	Record(ctx context.Context, operation, articleID string, request, response []byte)
}

// Client is the marketplace protocol surface used by the sync loop.
type Client interface {
	// ItemExists checks whether the article is already listed.
	ItemExists(ctx context.Context, articleID string) Existence
	// Insert creates a new listing for the product.
	Insert(ctx context.Context, p *feed.Product) error
	// Update replaces the existing listing for the product.
	Update(ctx context.Context, p *feed.Product) error
}

// HTTPClient implements Client against the configured marketplace endpoint.
// Calls are strictly sequential, one network round trip each, no retries.
type HTTPClient struct {
	endpoint string
	builder  *RequestBuilder
	httpc    *http.Client
	logger   *zap.Logger
	audit    AuditSink
}

// NewClient creates a marketplace client. The audit sink may be nil.
func NewClient(cfg Config, logger *zap.Logger, audit AuditSink) *HTTPClient {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &HTTPClient{
		endpoint: cfg.Endpoint,
		builder:  NewRequestBuilder(cfg),
		httpc:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:   logger,
		audit:    audit,
	}
}

// ItemExists posts an itemDetail lookup and classifies the outcome.
// It never returns an error: failures of the check itself come back as
// CheckFailed.
func (c *HTTPClient) ItemExists(ctx context.Context, articleID string) Existence {
	body, err := c.builder.ItemDetail(articleID)
	if err != nil {
		c.logger.Warn("Failed to build itemDetail request",
			zap.String("article_id", articleID), zap.Error(err))
		return CheckFailed
	}

	status, respBody, err := c.post(ctx, FunctionItemDetail, articleID, body)
	if err != nil {
		c.logger.Warn("Existence check transport failure",
			zap.String("article_id", articleID), zap.Error(err))
		return CheckFailed
	}
	if status < 200 || status >= 300 {
		c.logger.Warn("Existence check returned non-success status",
			zap.String("article_id", articleID), zap.Int("status", status))
		return CheckFailed
	}

	resp, err := parseResponse(respBody)
	if err != nil {
		c.logger.Warn("Existence check response unparsable",
			zap.String("article_id", articleID), zap.Error(err))
		return CheckFailed
	}

	if resp.indicatesError() {
		return NotFound
	}
	return Found
}

// Insert creates a new listing for the product.
func (c *HTTPClient) Insert(ctx context.Context, p *feed.Product) error {
	body, err := c.builder.ItemInsert(p)
	return c.call(ctx, FunctionItemInsert, p.ArticleID, body, err)
}

// Update replaces the existing listing for the product.
func (c *HTTPClient) Update(ctx context.Context, p *feed.Product) error {
	body, err := c.builder.ItemUpdate(p)
	return c.call(ctx, FunctionItemUpdate, p.ArticleID, body, err)
}

func (c *HTTPClient) call(ctx context.Context, operation, articleID string, body []byte, buildErr error) error {
	if buildErr != nil {
		return &APIError{Operation: operation, ArticleID: articleID, Err: buildErr}
	}

	status, respBody, err := c.post(ctx, operation, articleID, body)
	if err != nil {
		return &APIError{Operation: operation, ArticleID: articleID, Err: err}
	}
	if status < 200 || status >= 300 {
		return &APIError{
			Operation:  operation,
			ArticleID:  articleID,
			StatusCode: status,
			Message:    fmt.Sprintf("HTTP %d: %s", status, strings.TrimSpace(string(respBody))),
		}
	}

	resp, err := parseResponse(respBody)
	if err != nil {
		return &APIError{Operation: operation, ArticleID: articleID, StatusCode: status, Err: err}
	}
	if resp.indicatesError() {
		return &APIError{
			Operation:  operation,
			ArticleID:  articleID,
			StatusCode: status,
			Message:    resp.errorText(),
		}
	}

	return nil
}

// post sends one XML request and returns the response status and body.
// Bodies carry credentials, so they are logged at debug level only.
func (c *HTTPClient) post(ctx context.Context, operation, articleID string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/xml")

	c.logger.Debug("Marketplace request",
		zap.String("operation", operation),
		zap.String("article_id", articleID),
		zap.ByteString("body", body))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	c.logger.Debug("Marketplace response",
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", respBody))

	if c.audit != nil {
		c.audit.Record(ctx, operation, articleID, body, respBody)
	}

	return resp.StatusCode, respBody, nil
}
