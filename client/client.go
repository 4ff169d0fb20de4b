// Package client talks to the to-do API over HTTP using fasthttp.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/biosecret/voice-todo/models"
	"github.com/valyala/fasthttp"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-success response from the server.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Kind, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	hc      *fasthttp.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
		hc:      &fasthttp.Client{Name: "voice-todo-cli"},
	}
}

// SetToken sets the bearer token sent with task requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, fasthttp.MethodPost, "/auth/register",
		models.Credentials{Email: email, Password: password}, nil, fasthttp.StatusCreated)
}

// Login returns a token and also keeps it for later requests.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, fasthttp.MethodPost, "/auth/login",
		models.Credentials{Email: email, Password: password}, &out, fasthttp.StatusOK)
	if err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, fasthttp.MethodGet, "/tasks", nil, &tasks, fasthttp.StatusOK); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) AddTask(ctx context.Context, text string) (*models.Task, error) {
	var task models.Task
	body := map[string]string{"text": text}
	if err := c.do(ctx, fasthttp.MethodPost, "/tasks", body, &task, fasthttp.StatusCreated); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, fasthttp.MethodPut, "/tasks/"+url.PathEscape(id), patch, &task, fasthttp.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, fasthttp.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, fasthttp.StatusOK)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, want int) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	if c.token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.token)
	}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(b)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < timeout {
			timeout = d
		}
	}

	if err := c.hc.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode() != want {
		return decodeError(resp.StatusCode(), resp.Body())
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return &APIError{Status: status, Kind: e.Error, Message: e.Message}
	}
	return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
}
