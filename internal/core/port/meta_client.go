package port

import "context"

// TokenGrant is the result of a code-for-token exchange. ExpiresIn is zero
// when the provider omitted an expiry.
type TokenGrant struct {
	AccessToken string
	ExpiresIn   int64
}

// UpstreamCampaign is a campaign item exactly as the Graph API returns it,
// before any normalization. Optional fields decode to their zero value when
// absent from the response.
type UpstreamCampaign struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Objective   string `json:"objective"`
	Status      string `json:"status"`
	DailyBudget string `json:"daily_budget"`
	CreatedTime string `json:"created_time"`
}

// MetaClient is the outbound port to the Meta Graph API. Every failed call
// returns a *domain.ProxyError classified at the transport edge; callers
// never see a raw transport error. Implementations must bound every call
// with a timeout rather than hang.
type MetaClient interface {
	// AuthCodeURL builds the provider consent dialog URL for the configured
	// client id, redirect target and scope set.
	AuthCodeURL(state string) string
	// ExchangeCode performs the single synchronous code-for-token exchange.
	// The upstream consumes a code at most once; a second exchange with the
	// same code fails like any other non-2xx response.
	ExchangeCode(ctx context.Context, code string) (*TokenGrant, error)
	// ListCampaigns issues exactly one read for the account's campaign list
	// using the given bearer token.
	ListCampaigns(ctx context.Context, accessToken, accountID string, pageSize int) ([]UpstreamCampaign, error)
}
