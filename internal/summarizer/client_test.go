package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			in:   `{"summary":"s"}`,
			want: `{"summary":"s"}`,
			ok:   true,
		},
		{
			name: "wrapped in prose",
			in:   "Here is the analysis:\n\n{\"summary\":\"s\"}\n\nLet me know!",
			want: `{"summary":"s"}`,
			ok:   true,
		},
		{
			name: "nested objects",
			in:   `prefix {"a":{"b":1},"c":2} suffix`,
			want: `{"a":{"b":1},"c":2}`,
			ok:   true,
		},
		{
			name: "braces inside strings ignored",
			in:   `{"summary":"uses { and } freely","blockers":[]}`,
			want: `{"summary":"uses { and } freely","blockers":[]}`,
			ok:   true,
		},
		{
			name: "no object",
			in:   "the model refused to answer",
			ok:   false,
		},
		{
			name: "unbalanced",
			in:   `{"summary":"never closed`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseResult(t *testing.T) {
	res, err := parseResult(`Sure! {"summary":"Team shipped v2","blockers":["CI is red"],"keyTopics":["release"]}`)
	require.NoError(t, err)
	assert.Equal(t, "Team shipped v2", res.Summary)
	assert.Equal(t, []string{"CI is red"}, res.Blockers)
	assert.Equal(t, []string{"release"}, res.KeyTopics)
}

func TestParseResult_MissingFieldsCoerced(t *testing.T) {
	res, err := parseResult(`{"summary":"quiet day"}`)
	require.NoError(t, err)
	assert.NotNil(t, res.Blockers)
	assert.Empty(t, res.Blockers)
	assert.NotNil(t, res.KeyTopics)
	assert.Empty(t, res.KeyTopics)
}

func TestParseResult_Malformed(t *testing.T) {
	_, err := parseResult("no json here")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAnthropicClient_Summarize(t *testing.T) {
	var gotReq anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{{
				Type: "text",
				Text: `Here you go: {"summary":"Standup notes","blockers":["waiting on design"],"keyTopics":["launch"]}`,
			}},
		})
	}))
	defer srv.Close()

	client, err := NewAnthropicClient("test-key", "claude-sonnet-4-20250514", 1024, WithAnthropicBaseURL(srv.URL))
	require.NoError(t, err)

	res, err := client.Summarize(context.Background(), []Message{
		{User: "U1", Text: "launch tomorrow?"},
		{User: "U2", Text: "blocked on design"},
	}, "general")

	require.NoError(t, err)
	assert.Equal(t, "Standup notes", res.Summary)
	assert.Equal(t, []string{"waiting on design"}, res.Blockers)

	require.Len(t, gotReq.Messages, 1)
	assert.Contains(t, gotReq.Messages[0].Content, "#general")
	assert.Contains(t, gotReq.Messages[0].Content, "[U1]: launch tomorrow?")
	assert.Contains(t, gotReq.Messages[0].Content, "[U2]: blocked on design")
}

func TestAnthropicClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewAnthropicClient("test-key", "claude-sonnet-4-20250514", 0, WithAnthropicBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Summarize(context.Background(), nil, "general")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestAnthropicClient_MalformedModelOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{{Type: "text", Text: "I cannot produce JSON today."}},
		})
	}))
	defer srv.Close()

	client, err := NewAnthropicClient("test-key", "claude-sonnet-4-20250514", 0, WithAnthropicBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Summarize(context.Background(), nil, "general")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestNewAnthropicClient_RequiresKey(t *testing.T) {
	_, err := NewAnthropicClient("", "model", 0)
	assert.Error(t, err)
}
