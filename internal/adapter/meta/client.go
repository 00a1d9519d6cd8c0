// Package meta implements the MetaClient port against the Meta Graph API.
package meta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"meta-ads-proxy/internal/config/configs"
	"meta-ads-proxy/internal/core/domain"
	"meta-ads-proxy/internal/core/port"
)

// maxResponseBytes caps how much of an upstream body is read; Graph API
// error envelopes and campaign pages are far smaller.
const maxResponseBytes = 1 << 20

var requestedScopes = []string{"ads_read", "ads_management", "business_management"}

// campaignFields are the campaign subfields requested from the account node.
const campaignFields = "id,name,objective,status,daily_budget,created_time"

var _ port.MetaClient = (*Client)(nil)

// Client talks to the Graph API: the consent dialog URL, the code-for-token
// exchange and the campaign listing. Every request is bounded by the
// configured timeout, and every failure leaves here classified as a
// *domain.ProxyError.
type Client struct {
	oauth    *oauth2.Config
	http     *http.Client
	graphURL string
}

// NewClient builds a client from the Meta configuration section.
func NewClient(cfg configs.Meta) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.AppSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       requestedScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  fmt.Sprintf("%s/%s/dialog/oauth", cfg.LoginBase, cfg.APIVersion),
				TokenURL: fmt.Sprintf("%s/%s/oauth/access_token", cfg.GraphBase, cfg.APIVersion),
			},
		},
		http:     &http.Client{Timeout: cfg.RequestTimeout},
		graphURL: fmt.Sprintf("%s/%s", cfg.GraphBase, cfg.APIVersion),
	}
}

// AuthCodeURL builds the consent dialog URL for the configured application.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for an access token. The
// provider consumes each code at most once; retrying a consumed code comes
// back as a non-2xx response and is classified like any other exchange
// failure.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*port.TokenGrant, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			return nil, domain.Classify(domain.Failure{
				StatusCode: rerr.Response.StatusCode,
				RetryAfter: rerr.Response.Header.Get("Retry-After"),
				Body:       string(rerr.Body),
			})
		}
		return nil, domain.Classify(domain.Failure{Err: err})
	}
	return &port.TokenGrant{AccessToken: token.AccessToken, ExpiresIn: token.ExpiresIn}, nil
}

// accountNode mirrors the Graph API response for an ad account queried with
// a campaigns field expansion: {"campaigns":{"data":[...]},"id":"act_..."}.
type accountNode struct {
	Campaigns struct {
		Data []port.UpstreamCampaign `json:"data"`
	} `json:"campaigns"`
}

// ListCampaigns reads the account's campaign list in a single request.
func (c *Client) ListCampaigns(ctx context.Context, accessToken, accountID string, pageSize int) ([]port.UpstreamCampaign, error) {
	fields := fmt.Sprintf("campaigns.limit(%d){%s}", pageSize, campaignFields)
	endpoint := fmt.Sprintf("%s/%s?fields=%s", c.graphURL, url.PathEscape(accountID), url.QueryEscape(fields))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.Classify(domain.Failure{Err: err})
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.Classify(domain.Failure{Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domain.Classify(domain.Failure{Err: err})
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.Classify(domain.Failure{
			StatusCode: resp.StatusCode,
			RetryAfter: resp.Header.Get("Retry-After"),
			Body:       string(body),
		})
	}

	var node accountNode
	if err := json.Unmarshal(body, &node); err != nil {
		// a 2xx with an undecodable body is "other", not a network failure
		return nil, domain.Classify(domain.Failure{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("malformed upstream payload: %w", err),
		})
	}
	return node.Campaigns.Data, nil
}
