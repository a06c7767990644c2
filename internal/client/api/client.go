// Package api contains the typed HTTP client for the Sahayak backend.
// All requests, auth header injection and error mapping go through this
// single client so the views never touch the wire format directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sahayak/sahayak-backend/internal/domain"
)

// Client defines every server operation the terminal client performs
type Client interface {
	Register(ctx context.Context, req *domain.RegisterRequest) error
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	Me(ctx context.Context) (*domain.UserResponse, error)

	ListSubjects(ctx context.Context, department string, semester int, search string) ([]domain.Subject, error)
	GetSubject(ctx context.Context, slug string) (*domain.Subject, error)
	CreateSubject(ctx context.Context, req *domain.SubjectCreateRequest) (string, error)
	UpdateSubject(ctx context.Context, id string, req *domain.SubjectUpdateRequest) error
	DeleteSubject(ctx context.Context, id string) error
	MySubjects(ctx context.Context) ([]domain.Subject, error)

	AdminQueue(ctx context.Context) ([]domain.Subject, error)
	PublishSubject(ctx context.Context, id string) error
	RejectSubject(ctx context.Context, id, reason string) error
}

// TokenSource supplies the current bearer token; empty string means anonymous
type TokenSource func() string

type httpClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// New creates a Client for the given base URL, e.g. "http://localhost:8000/api/v1"
func New(baseURL string, token TokenSource) Client {
	return &httpClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   token,
	}
}

// APIError is a non-2xx response. Detail carries the server's reason
// verbatim when the body provided one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

// IsNotFound reports whether err is a 404 APIError
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// do runs one request and decodes a 2xx body into out (when non-nil).
// Non-2xx responses become *APIError with the body's detail when present.
func (c *httpClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Detail: extractDetail(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// extractDetail pulls the server's error message out of a failure body.
// Falls back to the envelope's error.message, then to a generic phrase.
func extractDetail(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != nil && body.Error.Message != "" {
			return body.Error.Message
		}
	}
	return "request failed"
}

func (c *httpClient) Register(ctx context.Context, req *domain.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

func (c *httpClient) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	req := domain.LoginRequest{Email: email, Password: password}
	var resp domain.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) Me(ctx context.Context) (*domain.UserResponse, error) {
	var resp domain.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) ListSubjects(ctx context.Context, department string, semester int, search string) ([]domain.Subject, error) {
	q := url.Values{}
	if department != "" {
		q.Set("department", department)
	}
	if semester > 0 {
		q.Set("semester", strconv.Itoa(semester))
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/subjects"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var subjects []domain.Subject
	if err := c.do(ctx, http.MethodGet, path, nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *httpClient) GetSubject(ctx context.Context, slug string) (*domain.Subject, error) {
	var subject domain.Subject
	if err := c.do(ctx, http.MethodGet, "/subjects/"+url.PathEscape(slug), nil, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

func (c *httpClient) CreateSubject(ctx context.Context, req *domain.SubjectCreateRequest) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/subjects", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *httpClient) UpdateSubject(ctx context.Context, id string, req *domain.SubjectUpdateRequest) error {
	return c.do(ctx, http.MethodPut, "/subjects/"+url.PathEscape(id), req, nil)
}

func (c *httpClient) DeleteSubject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/subjects/"+url.PathEscape(id), nil, nil)
}

func (c *httpClient) MySubjects(ctx context.Context) ([]domain.Subject, error) {
	var subjects []domain.Subject
	if err := c.do(ctx, http.MethodGet, "/users/me/subjects", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *httpClient) AdminQueue(ctx context.Context) ([]domain.Subject, error) {
	var subjects []domain.Subject
	if err := c.do(ctx, http.MethodGet, "/admin/queue", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *httpClient) PublishSubject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/admin/publish/"+url.PathEscape(id), nil, nil)
}

func (c *httpClient) RejectSubject(ctx context.Context, id, reason string) error {
	path := "/admin/reject/" + url.PathEscape(id)
	if reason != "" {
		path += "?reason=" + url.QueryEscape(reason)
	}
	return c.do(ctx, http.MethodPut, path, nil, nil)
}
