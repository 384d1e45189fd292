package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

// MinTextLength is the smallest text the classifier accepts. Enforced
// client-side so an obviously short text never costs a round-trip.
const MinTextLength = 100

// DefaultMaxTextLength mirrors the input limit of the original dashboard.
const DefaultMaxTextLength = 1000

const defaultTimeout = 30 * time.Second

// Options configures an HTTPClient.
type Options struct {
	// BaseURL is the service root, e.g. "http://localhost:5000".
	BaseURL string
	// Timeout bounds each request. Zero means a 30s default.
	Timeout time.Duration
	// MaxTextLength caps submitted text. Zero means DefaultMaxTextLength.
	MaxTextLength int
	Logger        logging.Logger
}

// HTTPClient talks JSON over HTTP to the analysis service.
type HTTPClient struct {
	baseURL    string
	client     *http.Client
	maxTextLen int
	log        logging.Logger

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(opts Options) *HTTPClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxLen := opts.MaxTextLength
	if maxLen <= 0 {
		maxLen = DefaultMaxTextLength
	}
	return &HTTPClient{
		baseURL:    opts.BaseURL,
		client:     &http.Client{Timeout: timeout},
		maxTextLen: maxLen,
		log:        opts.Logger.With("component", "api"),
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string             `json:"access_token"`
	User        models.UserProfile `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Login exchanges credentials for a bearer token. The token is returned, not
// installed; the caller decides whether to keep the session.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *models.UserProfile, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("reading login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			return "", nil, ErrUnauthorized
		}
		return "", nil, &ServiceError{StatusCode: resp.StatusCode, Message: serverMessage(body, "Login failed")}
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return "", nil, fmt.Errorf("decoding login response: %w", err)
	}
	return lr.AccessToken, &lr.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &ServiceError{StatusCode: resp.StatusCode, Message: serverMessage(body, "Registration failed")}
	}
	return nil
}

// Analyze submits text for classification. Texts outside the configured
// length bounds fail with *ValidationError before any request is issued.
func (c *HTTPClient) Analyze(ctx context.Context, text string) (*models.AnalysisFull, error) {
	if n := utf8.RuneCountInString(text); n < MinTextLength {
		return nil, &ValidationError{Message: fmt.Sprintf("text must be at least %d characters, got %d", MinTextLength, n)}
	} else if n > c.maxTextLen {
		return nil, &ValidationError{Message: fmt.Sprintf("text must be at most %d characters, got %d", c.maxTextLen, n)}
	}

	resp, err := c.do(ctx, http.MethodPost, "/analyze", analyzeRequest{Text: text})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading analyze response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var full models.AnalysisFull
		if err := json.Unmarshal(body, &full); err != nil {
			return nil, fmt.Errorf("decoding analyze response: %w", err)
		}
		full.Text = text
		return &full, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, &ValidationError{Message: serverMessage(body, "Invalid request")}
	default:
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: serverMessage(body, "Analysis failed")}
	}
}

func (c *HTTPClient) History(ctx context.Context) ([]models.AnalysisSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, "/analysis-history", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading history response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, ErrUnauthorized
		}
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: serverMessage(body, "History unavailable")}
	}

	var summaries []models.AnalysisSummary
	if err := json.Unmarshal(body, &summaries); err != nil {
		return nil, fmt.Errorf("decoding history response: %w", err)
	}
	return summaries, nil
}

func (c *HTTPClient) GetAnalysis(ctx context.Context, id int64) (*models.AnalysisFull, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/analysis/%d", id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading analysis response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var full models.AnalysisFull
		if err := json.Unmarshal(body, &full); err != nil {
			return nil, fmt.Errorf("decoding analysis response: %w", err)
		}
		return &full, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("analysis %d: %w", id, ErrNotFound)
	default:
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: serverMessage(body, "Failed to fetch analysis")}
	}
}

func (c *HTTPClient) DeleteAnalysis(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/analysis/%d", id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("analysis %d: %w", id, ErrNotFound)
	default:
		body, _ := io.ReadAll(resp.Body)
		return &ServiceError{StatusCode: resp.StatusCode, Message: serverMessage(body, "Failed to delete analysis")}
	}
}

// do issues one JSON request with the bearer token (if set) and a request id
// for log correlation. The caller owns the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path, "request_id", reqID, "status", resp.StatusCode)
	return resp, nil
}

// serverMessage extracts the {"error": ...} text from a response body,
// falling back when the body is empty or not JSON.
func serverMessage(body []byte, fallback string) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return er.Error
	}
	return fallback
}
