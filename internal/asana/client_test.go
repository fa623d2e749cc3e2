package asana

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "W1", r.URL.Query().Get("workspace"))

		fmt.Fprint(w, `{"data":[
			{"gid":"P1","name":"Roadmap","archived":false},
			{"gid":"P2","name":"Old","archived":true}
		]}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURLs(srv.URL, srv.URL))
	projects, err := client.Projects(context.Background(), "tok", "W1")

	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Roadmap", projects[0].Name)
	assert.True(t, projects[1].Archived)
}

func TestTasksForProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/P1/tasks", r.URL.Path)
		fmt.Fprint(w, `{"data":[{"gid":"T1","name":"Ship it","completed":false,"due_on":"2024-06-01","assignee":{"gid":"U1","name":"Dana"}}]}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURLs(srv.URL, srv.URL))
	tasks, err := client.TasksForProject(context.Background(), "tok", "P1")

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Ship it", tasks[0].Name)
	require.NotNil(t, tasks[0].Assignee)
	assert.Equal(t, "Dana", tasks[0].Assignee.Name)
}

func TestAllTasks_IncompleteOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "now", r.URL.Query().Get("completed_since"))
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURLs(srv.URL, srv.URL))
	tasks, err := client.AllTasks(context.Background(), "tok", "W1")

	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestExchangeOAuthCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth_token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "code-1", r.PostForm.Get("code"))

		fmt.Fprint(w, `{"access_token":"at","refresh_token":"rt"}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURLs(srv.URL, srv.URL))
	res, err := client.ExchangeOAuthCode(context.Background(), "cid", "secret", "https://api/cb", "code-1")

	require.NoError(t, err)
	assert.Equal(t, "at", res.AccessToken)
	assert.Equal(t, "rt", res.RefreshToken)
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURLs(srv.URL, srv.URL))
	_, err := client.Workspaces(context.Background(), "bad")

	assert.ErrorIs(t, err, ErrUpstream)
}
