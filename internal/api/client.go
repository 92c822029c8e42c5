package api

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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// BaseURL is the deployed Timely API base URL.
	BaseURL = "https://timely-server-puce.vercel.app/api"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() string
}

// Client is the Timely API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	log        logrus.FieldLogger
}

// NewClient creates a new Timely API client. A nil TokenSource sends no
// Authorization header.
func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     logrus.StandardLogger(),
	}
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetLogger sets the logger used for request logging.
func (c *Client) SetLogger(log logrus.FieldLogger) {
	c.log = log
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs an HTTP request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	reqURL := c.baseURL + path
	op := method + " " + path
	requestID := uuid.NewString()
	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return &ConnectivityError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("failed to read response body")
		return &ConnectivityError{Op: op, Err: err}
	}

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	})

	if resp.StatusCode >= 400 {
		log.Info("request rejected")
		return decodeError(resp.StatusCode, respBody)
	}
	log.Debug("request completed")

	if result != nil {
		if len(bytes.TrimSpace(respBody)) == 0 {
			return &MalformedResponseError{StatusCode: resp.StatusCode, Reason: "empty body"}
		}
		if err := json.Unmarshal(respBody, result); err != nil {
			return &MalformedResponseError{StatusCode: resp.StatusCode, Reason: err.Error()}
		}
	}

	return nil
}

// decodeError turns a non-success body into an APIError. A 401 is always an
// APIError so callers can detect it regardless of the body.
func decodeError(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != nil && *eb.Error != "" {
		return &APIError{StatusCode: status, Message: *eb.Error}
	}
	if status == http.StatusUnauthorized {
		return &APIError{StatusCode: status, Message: http.StatusText(status)}
	}
	return &MalformedResponseError{StatusCode: status, Reason: "missing error message"}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// GetWithQuery performs a GET request with query parameters.
func (c *Client) GetWithQuery(ctx context.Context, path string, query url.Values, result interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
