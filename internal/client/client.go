package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"auto_grow"
	"auto_grow/internal/logger"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// Config describes the remote service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Session is what the client needs from the session manager: the header
// for outbound calls and a way to drop rejected credentials.
type Session interface {
	AuthHeaderValue() (string, error)
	Invalidate(reason error)
}

// Client is the typed request layer for every entity endpoint.
type Client struct {
	*Verifier
	sess Session
}

func New(cfg Config, sess Session, log *logger.Logger) *Client {
	return &Client{
		Verifier: NewVerifier(cfg, log),
		sess:     sess,
	}
}

// Verifier performs the unauthenticated login call. It is split from
// Client so the session manager can depend on it without a cycle.
type Verifier struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewVerifier(cfg Config, log *logger.Logger) *Verifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Verifier{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Login reports whether the server accepted the pair. It never fails;
// the reason for a false result is logged.
func (v *Verifier) Login(ctx context.Context, username, password string) bool {
	if err := v.VerifyLogin(ctx, username, password); err != nil {
		v.log.Infow("api_login_failed", "username", username, "err", err)
		return false
	}
	return true
}

// VerifyLogin posts the pair to the login endpoint and classifies the answer.
func (v *Verifier) VerifyLogin(ctx context.Context, username, password string) error {
	body, err := json.Marshal(auto_grow.LoginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("marshaling login request: %w", err)
	}

	status, text, raw, err := v.do(ctx, http.MethodPost, auto_grow.LoginPath, body, "")
	if err != nil {
		return err
	}

	switch {
	case status == http.StatusOK:
		var resp auto_grow.LoginResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return &DecodeError{Path: auto_grow.LoginPath, Err: err}
		}
		if !resp.Success {
			return ErrAuthRejected
		}
		return nil
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, errorMessage(raw, text))
	case status == http.StatusUnauthorized:
		return ErrAuthRejected
	default:
		return &RequestError{
			Method:     http.MethodPost,
			Path:       auto_grow.LoginPath,
			Status:     status,
			StatusText: text,
			Message:    errorMessage(raw, ""),
		}
	}
}

// do dispatches one call. The caller's context contributes values only:
// an in-flight request is bounded by the transport timeout, not by
// cancellation.
func (v *Verifier) do(ctx context.Context, method, path string, body []byte, auth string) (int, string, []byte, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), method, v.baseURL+path, rdr)
	if err != nil {
		return 0, "", nil, fmt.Errorf("building request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	v.log.Debugw("api_request", "method", method, "path", path, "request_id", reqID)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.log.Errorw("api_error", "method", method, "path", path, "request_id", reqID, "err", err)
		return 0, "", nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, fmt.Errorf("reading response from %s: %w", path, err)
	}

	v.log.Debugw("api_response",
		"method", method,
		"path", path,
		"request_id", reqID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp.StatusCode, http.StatusText(resp.StatusCode), raw, nil
}

// request is the single authenticated dispatch path used by every entity
// method.
func request[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	var zero T

	auth, err := c.sess.AuthHeaderValue()
	if err != nil {
		// Callers must not issue domain calls before login.
		c.log.DPanicw("api_request_without_session", "method", method, "path", path, "err", err)
		return zero, err
	}

	var body []byte
	if payload != nil {
		if body, err = json.Marshal(payload); err != nil {
			return zero, fmt.Errorf("marshaling request: %w", err)
		}
	}

	status, text, raw, err := c.do(ctx, method, path, body, auth)
	if err != nil {
		return zero, err
	}

	if status == http.StatusUnauthorized {
		c.sess.Invalidate(ErrUnauthorized)
		return zero, ErrUnauthorized
	}
	if status < 200 || status > 299 {
		e := &RequestError{
			Method:     method,
			Path:       path,
			Status:     status,
			StatusText: text,
			Message:    errorMessage(raw, ""),
		}
		c.log.Warnw("api_error", "method", method, "path", path, "status", status, "err", e)
		return zero, e
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, &DecodeError{Path: path, Err: err}
	}
	return out, nil
}

// errorMessage extracts {"error": ...} from a body, or falls back.
func errorMessage(raw []byte, fallback string) string {
	var e auto_grow.ErrorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return fallback
}
