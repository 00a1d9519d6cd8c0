package port

import (
	"context"

	"meta-ads-proxy/internal/core/domain"
)

// Pagination echoes the item count and requested page size back to the
// caller alongside the listing.
type Pagination struct {
	Total    int `json:"total"`
	PageSize int `json:"pageSize"`
}

// CampaignPage is the normalized result of one proxy call. It is produced
// fresh every time and never cached; ownership passes to the caller.
type CampaignPage struct {
	Campaigns  []domain.Campaign `json:"campaigns"`
	Pagination Pagination        `json:"pagination"`
}

// CampaignUseCase proxies the upstream campaign listing for an authenticated
// session. A failed call returns a *domain.ProxyError; an account with zero
// campaigns is a success with an empty list, not an error.
type CampaignUseCase interface {
	FetchCampaigns(ctx context.Context, sessionID, accountID string, pageSize int) (*CampaignPage, error)
}
