package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type oauthAccessResponse struct {
	apiEnvelope
	AccessToken string `json:"access_token"`
	Team        struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// AuthorizeURL builds the Slack OAuth v2 consent URL for the given state.
func (c *Client) AuthorizeURL(clientID, redirectURI, state string) string {
	scopes := strings.Join([]string{
		"channels:history",
		"channels:read",
		"chat:write",
		"groups:history",
		"groups:read",
		"users:read",
	}, ",")

	params := url.Values{
		"client_id":    {clientID},
		"scope":        {scopes},
		"redirect_uri": {redirectURI},
		"state":        {state},
	}
	return "https://slack.com/oauth/v2/authorize?" + params.Encode()
}

// ExchangeOAuthCode trades an OAuth v2 authorization code for a workspace
// access token.
func (c *Client) ExchangeOAuthCode(ctx context.Context, clientID, clientSecret, redirectURI, code string) (*OAuthResult, error) {
	form := url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"redirect_uri":  {redirectURI},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/oauth.v2.access", strings.NewReader(form.Encode()))
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
		return nil, fmt.Errorf("%w: oauth.v2.access returned %s", ErrUpstream, resp.Status)
	}

	var oauthResp oauthAccessResponse
	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return nil, fmt.Errorf("%w: decoding oauth.v2.access: %v", ErrUpstream, err)
	}
	if !oauthResp.OK {
		return nil, fmt.Errorf("%w: oauth.v2.access: %s", ErrUpstream, oauthResp.Error)
	}

	return &OAuthResult{
		AccessToken: oauthResp.AccessToken,
		TeamID:      oauthResp.Team.ID,
		TeamName:    oauthResp.Team.Name,
	}, nil
}
