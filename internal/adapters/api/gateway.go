package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/alnitaka/zenon-cli/internal/domain"
	"github.com/alnitaka/zenon-cli/internal/ports"
	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

// Gateway is the single owner of the API base endpoint and the in-memory
// bearer token. Independent requests may run concurrently; reads and
// writes of the token are serialized.
type Gateway struct {
	baseURL        string
	httpClient     *http.Client
	requestTimeout time.Duration

	mu    sync.RWMutex
	token string
}

var (
	_ ports.AuthGateway     = (*Gateway)(nil)
	_ ports.ClientDirectory = (*Gateway)(nil)
)

func NewGateway(baseURL string, httpClient *http.Client, requestTimeout time.Duration) *Gateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return &Gateway{
		baseURL:        baseURL,
		httpClient:     httpClient,
		requestTimeout: requestTimeout,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// Login exchanges credentials for a bearer token and keeps it as the
// gateway's current token for subsequent authorized calls.
func (g *Gateway) Login(ctx context.Context, email, password string) (domain.Credentials, error) {
	var creds domain.Credentials
	err := g.call(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, "", &creds)
	if err != nil {
		return domain.Credentials{}, err
	}

	g.SetToken(creds.Token)
	return creds, nil
}

// Register creates an account and, like Login, keeps the returned token as
// the gateway's current token.
func (g *Gateway) Register(ctx context.Context, email, password, firstName, lastName string) (domain.Credentials, error) {
	body := registerRequest{Email: email, Password: password, FirstName: firstName, LastName: lastName}

	var creds domain.Credentials
	if err := g.call(ctx, http.MethodPost, "/api/auth/register", body, "", &creds); err != nil {
		return domain.Credentials{}, err
	}

	g.SetToken(creds.Token)
	return creds, nil
}

// FetchProfile loads the authenticated user's profile with an explicitly
// supplied token rather than the stored one.
func (g *Gateway) FetchProfile(ctx context.Context, token string) (domain.User, error) {
	var user domain.User
	if err := g.call(ctx, http.MethodGet, "/api/users/me", nil, token, &user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (g *Gateway) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

func (g *Gateway) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = token
}

func (g *Gateway) ClearToken() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = ""
}

// call performs one JSON round trip and maps every failure onto the shared
// taxonomy, in precedence order: invalid URL, transport failure, malformed
// response, non-2xx status, undecodable success body.
func (g *Gateway) call(ctx context.Context, method, path string, body any, bearer string, out any) error {
	endpoint, err := g.endpoint(path)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.APIError{Kind: domain.APIErrorUnknown, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	reqCtx, cancel := g.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, endpoint, reader)
	if err != nil {
		return &domain.APIError{Kind: domain.APIErrorUnknown, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &domain.APIError{Kind: domain.APIErrorUnknown, Err: err}
	}
	if resp == nil {
		return &domain.APIError{Kind: domain.APIErrorInvalidResponse}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return &domain.APIError{Kind: domain.APIErrorServer, Status: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return &domain.APIError{Kind: domain.APIErrorDecoding, Err: err}
	}

	return nil
}

func (g *Gateway) endpoint(path string) (string, error) {
	parsed, err := url.Parse(g.baseURL)
	if err != nil {
		return "", &domain.APIError{Kind: domain.APIErrorInvalidURL, Err: err}
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", &domain.APIError{Kind: domain.APIErrorInvalidURL}
	}

	ref, err := parsed.Parse(path)
	if err != nil {
		return "", &domain.APIError{Kind: domain.APIErrorInvalidURL, Err: err}
	}

	return ref.String(), nil
}

func (g *Gateway) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, g.requestTimeout)
}
