package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/refinemirror/mirror-go/internal/logging"
)

// Endpoints of the account API, relative to the configured base URL.
const (
	createAccountEndpoint = "auth/signup"
	loginEndpoint         = "auth/login"
	profileEndpoint       = "user/me"
)

const (
	authorizationHeader = "Authorization"
	contentTypeHeader   = "Content-Type"
	requestIDHeader     = "X-Request-ID"
)

// HTTPClient implements Client over the backend's HTTP/JSON surface.
//
// Outcome is decided by the response body alone: a body carrying
// error_short_code is a rejection, anything else is read as success.
// HTTP status codes are not inspected; this matches the backend contract.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the API rooted at baseURL.
// If httpClient is nil, http.DefaultClient is used; any timeout policy
// belongs to the http.Client passed in.
func NewHTTPClient(baseURL string, httpClient *http.Client, log logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPClient{baseURL: baseURL, httpClient: httpClient, log: log}
}

// envelope is the common response shape of every endpoint.
type envelope struct {
	Data           json.RawMessage `json:"data"`
	ErrorShortCode string          `json:"error_short_code"`
}

// tokenPayload is the data object of signup and login responses.
type tokenPayload struct {
	APIToken string `json:"api_token"`
}

// profilePayload is the data object of the fetch-profile response.
type profilePayload struct {
	Name    *string `json:"name"`
	Profile struct {
		Birthdate *string `json:"birthdate"`
		Location  *string `json:"location"`
	} `json:"profile"`
}

func (c *HTTPClient) CreateAccount(ctx context.Context, email, name, password, passwordConfirm string) (string, error) {
	body := map[string]string{
		"email":     email,
		"name":      name,
		"password":  password,
		"password2": passwordConfirm,
	}
	raw, err := c.do(ctx, http.MethodPost, createAccountEndpoint, "", body)
	if err != nil {
		return "", err
	}
	return c.extractToken(raw)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	raw, err := c.do(ctx, http.MethodPost, loginEndpoint, "", body)
	if err != nil {
		return "", err
	}
	return c.extractToken(raw)
}

func (c *HTTPClient) FetchProfile(ctx context.Context, token string) (*ProfileFragment, error) {
	if token == "" {
		return nil, ErrNoActiveSession
	}

	raw, err := c.do(ctx, http.MethodGet, profileEndpoint, token, nil)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var p profilePayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return nil, fmt.Errorf("%w: decoding profile payload: %v", ErrUnavailable, err)
	}

	return &ProfileFragment{
		Name:      p.Name,
		Location:  p.Profile.Location,
		Birthdate: p.Profile.Birthdate,
	}, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, upd ProfileUpdate) error {
	if token == "" {
		return ErrNoActiveSession
	}

	raw, err := c.do(ctx, http.MethodPatch, profileEndpoint, token, upd)
	if err != nil {
		return err
	}

	// The backend acknowledges an update with an empty body; only the
	// presence of error_short_code means failure.
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	_, err = decodeEnvelope(raw)
	return err
}

// Close releases idle transport connections.
func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// do performs one round-trip and returns the raw response body. A non-empty
// token is attached as a bearer Authorization value. Every request carries a
// fresh X-Request-ID for correlation with server logs.
func (c *HTTPClient) do(ctx context.Context, method, endpoint, token string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set(contentTypeHeader, "application/json")
	}
	if token != "" {
		req.Header.Set(authorizationHeader, "Bearer "+token)
	}

	c.log.Debug(ctx, "api request", "method", method, "endpoint", endpoint, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(ctx, "api request failed", "endpoint", endpoint, "request_id", requestID, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	return raw, nil
}

// extractToken reads the api_token out of a signup or login response.
func (c *HTTPClient) extractToken(raw []byte) (string, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return "", err
	}

	var p tokenPayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return "", fmt.Errorf("%w: decoding token payload: %v", ErrUnavailable, err)
	}
	if p.APIToken == "" {
		return "", fmt.Errorf("%w: response carries no api_token", ErrUnavailable)
	}
	return p.APIToken, nil
}

// decodeEnvelope parses the common response shape and turns a present
// error_short_code into a *ServerError.
func decodeEnvelope(raw []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if env.ErrorShortCode != "" {
		return nil, &ServerError{Code: env.ErrorShortCode}
	}
	return &env, nil
}
