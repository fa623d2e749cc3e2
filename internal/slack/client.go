// Package slack is a thin client for the Slack Web API surface the
// summary pipeline needs: channel listing, channel info, message history
// and the OAuth v2 code exchange.
package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://slack.com/api"

// ErrUpstream is returned when Slack rejects or fails a call.
var ErrUpstream = errors.New("slack upstream error")

// Channel is a Slack conversation.
type Channel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private,omitempty"`
}

// Message is one human message from a channel's history.
type Message struct {
	User      string `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// OAuthResult is what a completed OAuth v2 code exchange yields.
type OAuthResult struct {
	AccessToken string
	TeamID      string
	TeamName    string
}

// Client calls the Slack Web API. Tokens are per-call: each user's stored
// integration token is passed in, with no client-level default.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// NewClient creates a Slack Web API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiEnvelope is the common ok/error wrapper on every Slack response.
type apiEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type listChannelsResponse struct {
	apiEnvelope
	Channels []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		IsPrivate bool   `json:"is_private"`
	} `json:"channels"`
}

type channelInfoResponse struct {
	apiEnvelope
	Channel struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		IsPrivate bool   `json:"is_private"`
	} `json:"channel"`
}

type historyResponse struct {
	apiEnvelope
	Messages []struct {
		Type  string `json:"type"`
		User  string `json:"user"`
		Text  string `json:"text"`
		TS    string `json:"ts"`
		BotID string `json:"bot_id"`
	} `json:"messages"`
}

// ListChannels returns unarchived public and private channels.
func (c *Client) ListChannels(ctx context.Context, token string) ([]Channel, error) {
	params := url.Values{
		"types":            {"public_channel,private_channel"},
		"exclude_archived": {"true"},
		"limit":            {"100"},
	}

	var resp listChannelsResponse
	if err := c.get(ctx, token, "conversations.list", params, &resp); err != nil {
		return nil, err
	}

	channels := make([]Channel, 0, len(resp.Channels))
	for _, ch := range resp.Channels {
		channels = append(channels, Channel{ID: ch.ID, Name: ch.Name, IsPrivate: ch.IsPrivate})
	}
	return channels, nil
}

// ChannelInfo returns metadata for a single channel.
func (c *Client) ChannelInfo(ctx context.Context, token, channelID string) (*Channel, error) {
	params := url.Values{"channel": {channelID}}

	var resp channelInfoResponse
	if err := c.get(ctx, token, "conversations.info", params, &resp); err != nil {
		return nil, err
	}

	return &Channel{ID: resp.Channel.ID, Name: resp.Channel.Name, IsPrivate: resp.Channel.IsPrivate}, nil
}

// RecentMessages returns human messages from the last `hours` hours,
// filtering bot posts and non-message events.
func (c *Client) RecentMessages(ctx context.Context, token, channelID string, hours int) ([]Message, error) {
	if hours <= 0 {
		hours = 24
	}
	oldest := time.Now().Add(-time.Duration(hours) * time.Hour).Unix()

	params := url.Values{
		"channel": {channelID},
		"limit":   {"100"},
		"oldest":  {strconv.FormatInt(oldest, 10)},
	}

	var resp historyResponse
	if err := c.get(ctx, token, "conversations.history", params, &resp); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		if msg.BotID != "" || msg.Type != "message" || msg.Text == "" {
			continue
		}
		messages = append(messages, Message{User: msg.User, Text: msg.Text, Timestamp: msg.TS})
	}
	return messages, nil
}

func (c *Client) get(ctx context.Context, token, method string, params url.Values, out interface{ envelope() apiEnvelope }) error {
	endpoint := c.baseURL + "/" + method + "?" + params.Encode()

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
		return fmt.Errorf("%w: %s returned %s", ErrUpstream, method, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrUpstream, method, err)
	}
	if env := out.envelope(); !env.OK {
		return fmt.Errorf("%w: %s: %s", ErrUpstream, method, env.Error)
	}
	return nil
}

func (e apiEnvelope) envelope() apiEnvelope { return e }
