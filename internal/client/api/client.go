package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/models"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/tokens"
	"github.com/mastereducationkz/lms-front-sub003/internal/logging"
)

// API endpoint paths, relative to the base URL.
const (
	loginPath   = "/auth/login"
	refreshPath = "/auth/refresh"
	logoutPath  = "/auth/logout"
	mePath      = "/auth/me"
	coursesPath = "/courses"
)

// Client is the typed LMS API client. It expects its http.Client to carry
// the authenticating Transport; the typed methods only deal in request
// shapes and the error taxonomy.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     logging.Logger
}

// NewClient builds a Client over a normalized base URL.
func NewClient(baseURL string, httpc *http.Client, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop()
	}
	return &Client{baseURL: baseURL, httpc: httpc, log: log}
}

// do issues one JSON request and decodes a 2xx response into out (skipped
// when out is nil). Request bodies are buffered so the transport can replay
// them after a refresh.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return mapRequestError(err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token pair. The call is unauthenticated:
// no Authorization header is attached and a 401 answer propagates as-is with
// the server-provided detail.
func (c *Client) Login(ctx context.Context, email, password string) (tokens.Pair, error) {
	ctx = WithoutAuth(WithoutRefresh(ctx))

	var pair tokens.Pair
	err := c.do(ctx, http.MethodPost, loginPath, loginRequest{Email: email, Password: password}, &pair)
	if err != nil {
		return tokens.Pair{}, fmt.Errorf("login: %w", err)
	}
	return pair, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, mePath, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Courses lists the courses visible to the authenticated user.
func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.do(ctx, http.MethodGet, coursesPath, nil, &courses); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Assignments lists the assignments of one course, with the caller's
// submission status.
func (c *Client) Assignments(ctx context.Context, courseID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	path := fmt.Sprintf("%s/%s/assignments", coursesPath, courseID)
	if err := c.do(ctx, http.MethodGet, path, nil, &assignments); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}
