// Package asana is a thin client for the Asana REST API: workspaces,
// projects, tasks and the OAuth code exchange, plus pure helpers deriving
// project health and team workload from task lists.
package asana

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultAPIBaseURL   = "https://app.asana.com/api/1.0"
	defaultOAuthBaseURL = "https://app.asana.com/-"
)

// ErrUpstream is returned when Asana rejects or fails a call.
var ErrUpstream = errors.New("asana upstream error")

// Workspace is an Asana workspace.
type Workspace struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Project is an Asana project.
type Project struct {
	GID       string `json:"gid"`
	Name      string `json:"name"`
	DueDate   string `json:"due_date,omitempty"`
	Completed bool   `json:"completed"`
	Archived  bool   `json:"archived"`
	Notes     string `json:"notes,omitempty"`
}

// Task is an Asana task with the fields health and workload need.
type Task struct {
	GID       string    `json:"gid"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	DueOn     string    `json:"due_on,omitempty"`
	Assignee  *Assignee `json:"assignee,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// Assignee is the user a task is assigned to.
type Assignee struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// OAuthResult is what a completed OAuth code exchange yields.
type OAuthResult struct {
	AccessToken  string
	RefreshToken string
}

// Client calls the Asana API. Tokens are per-call, from the user's stored
// integration.
type Client struct {
	apiBaseURL   string
	oauthBaseURL string
	http         *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides both endpoints, mainly for tests.
func WithBaseURLs(api, oauth string) Option {
	return func(c *Client) {
		c.apiBaseURL = strings.TrimRight(api, "/")
		c.oauthBaseURL = strings.TrimRight(oauth, "/")
	}
}

// NewClient creates an Asana API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiBaseURL:   defaultAPIBaseURL,
		oauthBaseURL: defaultOAuthBaseURL,
		http:         &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Workspaces returns the workspaces visible to the token.
func (c *Client) Workspaces(ctx context.Context, token string) ([]Workspace, error) {
	var out struct {
		Data []Workspace `json:"data"`
	}
	if err := c.get(ctx, token, "/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Projects returns the projects of a workspace.
func (c *Client) Projects(ctx context.Context, token, workspaceID string) ([]Project, error) {
	params := url.Values{
		"workspace":  {workspaceID},
		"opt_fields": {"name,due_date,completed,archived,notes"},
	}
	var out struct {
		Data []Project `json:"data"`
	}
	if err := c.get(ctx, token, "/projects", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// TasksForProject returns the tasks of a project.
func (c *Client) TasksForProject(ctx context.Context, token, projectID string) ([]Task, error) {
	params := url.Values{
		"opt_fields": {"name,completed,due_on,assignee.name,notes"},
	}
	var out struct {
		Data []Task `json:"data"`
	}
	if err := c.get(ctx, token, "/projects/"+url.PathEscape(projectID)+"/tasks", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AllTasks returns the workspace's incomplete tasks.
func (c *Client) AllTasks(ctx context.Context, token, workspaceID string) ([]Task, error) {
	params := url.Values{
		"workspace":       {workspaceID},
		"opt_fields":      {"name,completed,due_on,assignee.name,notes"},
		"completed_since": {"now"},
	}
	var out struct {
		Data []Task `json:"data"`
	}
	if err := c.get(ctx, token, "/tasks", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AuthorizeURL builds the Asana OAuth consent URL for the given state.
func (c *Client) AuthorizeURL(clientID, redirectURI, state string) string {
	params := url.Values{
		"client_id":     {clientID},
		"redirect_uri":  {redirectURI},
		"response_type": {"code"},
		"state":         {state},
	}
	return c.oauthBaseURL + "/oauth_authorize?" + params.Encode()
}

// ExchangeOAuthCode trades an authorization code for access and refresh
// tokens.
func (c *Client) ExchangeOAuthCode(ctx context.Context, clientID, clientSecret, redirectURI, code string) (*OAuthResult, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"redirect_uri":  {redirectURI},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.oauthBaseURL+"/oauth_token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: oauth_token returned %s", ErrUpstream, resp.Status)
	}

	var token struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: decoding oauth_token: %v", ErrUpstream, err)
	}

	return &OAuthResult{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}

func (c *Client) get(ctx context.Context, token, path string, params url.Values, out interface{}) error {
	endpoint := c.apiBaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", ErrUpstream, path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrUpstream, path, err)
	}
	return nil
}
