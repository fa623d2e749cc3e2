package slack

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListChannels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations.list", r.URL.Path)
		assert.Equal(t, "Bearer xoxb-token", r.Header.Get("Authorization"))
		assert.Equal(t, "public_channel,private_channel", r.URL.Query().Get("types"))
		assert.Equal(t, "true", r.URL.Query().Get("exclude_archived"))

		fmt.Fprint(w, `{"ok":true,"channels":[{"id":"C1","name":"general"},{"id":"C2","name":"eng","is_private":true}]}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	channels, err := client.ListChannels(context.Background(), "xoxb-token")

	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, Channel{ID: "C1", Name: "general"}, channels[0])
	assert.Equal(t, Channel{ID: "C2", Name: "eng", IsPrivate: true}, channels[1])
}

func TestListChannels_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"error":"invalid_auth"}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.ListChannels(context.Background(), "bad-token")

	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "invalid_auth")
}

func TestRecentMessages_FiltersBotsAndNonMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations.history", r.URL.Path)
		assert.Equal(t, "C1", r.URL.Query().Get("channel"))
		assert.NotEmpty(t, r.URL.Query().Get("oldest"))

		fmt.Fprint(w, `{"ok":true,"messages":[
			{"type":"message","user":"U1","text":"shipping today","ts":"1700000001.0"},
			{"type":"message","user":"U2","text":"","ts":"1700000002.0"},
			{"type":"message","bot_id":"B1","text":"build passed","ts":"1700000003.0"},
			{"type":"channel_join","user":"U3","text":"joined","ts":"1700000004.0"},
			{"type":"message","user":"U4","text":"blocked on review","ts":"1700000005.0"}
		]}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	messages, err := client.RecentMessages(context.Background(), "xoxb-token", "C1", 24)

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, Message{User: "U1", Text: "shipping today", Timestamp: "1700000001.0"}, messages[0])
	assert.Equal(t, Message{User: "U4", Text: "blocked on review", Timestamp: "1700000005.0"}, messages[1])
}

func TestExchangeOAuthCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth.v2.access", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "code-123", r.PostForm.Get("code"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))

		fmt.Fprint(w, `{"ok":true,"access_token":"xoxb-new","team":{"id":"T1","name":"Acme"}}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	res, err := client.ExchangeOAuthCode(context.Background(), "client-id", "secret", "https://api/cb", "code-123")

	require.NoError(t, err)
	assert.Equal(t, "xoxb-new", res.AccessToken)
	assert.Equal(t, "T1", res.TeamID)
	assert.Equal(t, "Acme", res.TeamName)
}

func signBody(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "signing-secret"
	body := []byte(`{"type":"event_callback"}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	assert.True(t, VerifySignature(secret, signBody(secret, ts, body), ts, body))
	assert.False(t, VerifySignature(secret, signBody("other-secret", ts, body), ts, body))
	assert.False(t, VerifySignature(secret, signBody(secret, ts, body), ts, []byte("tampered")))
	assert.False(t, VerifySignature("", signBody(secret, ts, body), ts, body))
}

func TestVerifySignature_StaleTimestamp(t *testing.T) {
	secret := "signing-secret"
	body := []byte(`{}`)
	stale := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)

	assert.False(t, VerifySignature(secret, signBody(secret, stale, body), stale, body))
}

func TestAuthorizeURL(t *testing.T) {
	client := NewClient()
	u := client.AuthorizeURL("client-id", "https://api/cb", "state-token")

	assert.Contains(t, u, "https://slack.com/oauth/v2/authorize?")
	assert.Contains(t, u, "client_id=client-id")
	assert.Contains(t, u, "state=state-token")
	assert.Contains(t, u, "channels%3Ahistory")
}
