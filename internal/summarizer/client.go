// Package summarizer turns raw channel messages into a structured summary
// (free-text summary, blockers, key topics) using an external language
// model. Every call is a fresh single-shot request: no retry, no caching.
package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpstream is returned when the model API call itself fails.
	ErrUpstream = errors.New("summarization upstream error")
	// ErrMalformedResponse is returned when no JSON object can be found
	// in the model output.
	ErrMalformedResponse = errors.New("malformed summarization response")
)

// Message is one (author, text) pair from the source channel.
type Message struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// Result is the structured analysis parsed from the model output.
type Result struct {
	Summary   string   `json:"summary"`
	Blockers  []string `json:"blockers"`
	KeyTopics []string `json:"keyTopics"`
}

// Client is implemented by each model backend.
type Client interface {
	Summarize(ctx context.Context, messages []Message, channelName string) (*Result, error)
}

// buildPrompt formats the conversation and the JSON instruction the model
// is expected to follow.
func buildPrompt(messages []Message, channelName string) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s]: %s", msg.User, msg.Text)
	}

	return fmt.Sprintf(`Analyze these Slack messages from #%s:

%s

Provide a JSON response with:
{
  "summary": "Brief 2-3 sentence summary",
  "blockers": ["blocker1", "blocker2"],
  "keyTopics": ["topic1", "topic2", "topic3"]
}`, channelName, b.String())
}

// extractJSON returns the first balanced JSON object substring in the text.
// Models wrap their JSON in prose more often than not.
func extractJSON(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// parseResult extracts and decodes the model's JSON answer. Missing
// blockers or keyTopics come back as empty slices, never nil.
func parseResult(text string) (*Result, error) {
	raw, ok := extractJSON(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in model output", ErrMalformedResponse)
	}

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if result.Blockers == nil {
		result.Blockers = []string{}
	}
	if result.KeyTopics == nil {
		result.KeyTopics = []string{}
	}
	return &result, nil
}
