package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskmaster/internal/client/models"
	"github.com/dmitrijs2005/taskmaster/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

// NewHTTPClient returns a client for the API mounted at baseURL, e.g.
// "http://127.0.0.1:8000/api/v1".
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Ping checks the server root health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	u.Path = "/ping"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	return c.send(req, nil)
}

func (c *HTTPClient) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	body := map[string]string{"email": email, "password": string(password)}

	user := &models.User{}
	if err := c.do(ctx, http.MethodPost, "/users/register", body, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login stores the access token for subsequent calls.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) error {
	body := map[string]string{"email": email, "password": string(password)}

	token := &models.Token{}
	if err := c.do(ctx, http.MethodPost, "/users/login", body, token); err != nil {
		return err
	}
	if !strings.EqualFold(token.TokenType, common.TokenType) {
		return fmt.Errorf("unexpected token type %q", token.TokenType)
	}

	c.mu.Lock()
	c.accessToken = token.AccessToken
	c.mu.Unlock()

	return nil
}

// Logout forgets the access token. Tokens are stateless, so the server is
// not contacted.
func (c *HTTPClient) Logout() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	user := &models.User{}
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	task := &models.Task{}
	if err := c.do(ctx, http.MethodPost, "/tasks", in, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context, skip, limit int) ([]*models.Task, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var tasks []*models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks?"+q.Encode(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *HTTPClient) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task := &models.Task{}
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, in models.TaskInput) (*models.Task, error) {
	task := &models.Task{}
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), in, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.accessToken
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	return c.send(req, out)
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Code = "HTTP_ERROR"
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
