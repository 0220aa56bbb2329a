package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const module = "GATEWAY"

// Operation describes one remote call.
type Operation struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

func (o Operation) String() string {
	return o.Method + " " + o.Path
}

// IGateway performs a remote call and classifies its outcome. It never retries.
type IGateway interface {
	Do(ctx context.Context, op Operation, out any) error
}

type Gateway struct {
	baseURL  string
	apiToken string
	client   *http.Client
	logger   logger.ILogger
	tracer   trace.Tracer
}

type Option func(*Gateway)

// WithHTTPClient swaps the underlying client, e.g. for a test server's transport.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.client = c
	}
}

func WithAPIToken(token string) Option {
	return func(g *Gateway) {
		g.apiToken = token
	}
}

// Ensure Gateway implements IGateway
var _ IGateway = &Gateway{}

func New(baseURL string, timeout time.Duration, log logger.ILogger, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		logger: log,
		tracer: otel.Tracer("ai-assistant-client/gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) BaseURL() string {
	return g.baseURL
}

func (g *Gateway) Do(ctx context.Context, op Operation, out any) error {
	ctx, span := g.tracer.Start(ctx, "gateway "+op.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", op.Method),
			attribute.String("http.route", op.Path),
		),
	)
	defer span.End()

	started := time.Now()
	status, err := g.do(ctx, op, out)
	span.SetAttributes(attribute.Int("http.status_code", status))

	details := map[string]interface{}{
		"op":          op.String(),
		"status":      status,
		"duration_ms": time.Since(started).Milliseconds(),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		details["error"] = err.Error()
		g.logger.Warn(module, "Remote call failed", details)
		return err
	}

	g.logger.Debug(module, "Remote call succeeded", details)
	return nil
}

func (g *Gateway) do(ctx context.Context, op Operation, out any) (int, error) {
	opName := op.String()

	var body io.Reader
	if op.Body != nil {
		payload, err := json.Marshal(op.Body)
		if err != nil {
			// The request never leaves the client.
			return 0, &apperror.TransportError{Op: opName, Err: fmt.Errorf("marshal request: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	target := g.baseURL + op.Path
	if len(op.Query) > 0 {
		target += "?" + op.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, target, body)
	if err != nil {
		return 0, &apperror.TransportError{Op: opName, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if op.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiToken)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, &apperror.TransportError{Op: opName, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &apperror.TransportError{Op: opName, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &apperror.ApplicationError{
			Op:      opName,
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, bodyBytes),
		}
	}

	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return resp.StatusCode, &apperror.ApplicationError{
			Op:      opName,
			Status:  resp.StatusCode,
			Message: "invalid response body",
		}
	}
	return resp.StatusCode, nil
}

// errorMessage extracts the server-supplied message from an error body. FastAPI uses
// "detail" (a string, or a list for request validation errors); other servers use "message".
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Detail) > 0 {
			var detail string
			if err := json.Unmarshal(envelope.Detail, &detail); err == nil && detail != "" {
				return detail
			}
			if string(envelope.Detail) != "null" {
				return string(envelope.Detail)
			}
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(status)
}
