package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"meta-ads-proxy/internal/core/domain"
	"meta-ads-proxy/internal/core/port"
)

const (
	// accountPrefix is the namespace marker the Graph API expects on ad
	// account ids. Already-prefixed ids pass through untouched.
	accountPrefix = "act_"

	defaultPageSize = 25
)

// Graph API timestamps come with a colon-less zone offset, which RFC 3339
// parsing rejects.
const graphTimeLayout = "2006-01-02T15:04:05-0700"

// CampaignUseCase is the upstream proxy: one authenticated read per call,
// normalized on the way out, classified on failure. It never retries.
type CampaignUseCase struct {
	auth   port.AuthUseCase
	store  port.SessionStore
	client port.MetaClient
	logger *slog.Logger

	now func() time.Time
}

// NewCampaignUseCase wires the proxy with its collaborators. The auth use
// case stays the single authority on authentication state.
func NewCampaignUseCase(auth port.AuthUseCase, store port.SessionStore, client port.MetaClient, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{auth: auth, store: store, client: client, logger: logger, now: time.Now}
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// FetchCampaigns validates the session and input, issues exactly one upstream
// read and returns the normalized page. An upstream 401 additionally forces
// the session's credential out of the store so the very next Status call
// observes an unauthenticated session.
func (u *CampaignUseCase) FetchCampaigns(ctx context.Context, sessionID, accountID string, pageSize int) (*port.CampaignPage, error) {
	status, err := u.auth.Status(ctx, sessionID)
	if err != nil {
		return nil, domain.AsProxyError(err)
	}
	if !status.Authenticated {
		return nil, &domain.ProxyError{Kind: domain.KindUnauthenticated, Message: "not authenticated, complete the login flow first"}
	}

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, &domain.ProxyError{Kind: domain.KindInvalidRequest, Message: "account_id is required"}
	}
	if !strings.HasPrefix(accountID, accountPrefix) {
		accountID = accountPrefix + accountID
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	cred, err := u.store.Credential(ctx, sessionID)
	if err != nil {
		return nil, domain.AsProxyError(err)
	}
	if cred == nil {
		// lost a race with a logout between the status check and here
		return nil, &domain.ProxyError{Kind: domain.KindUnauthenticated, Message: "session was logged out"}
	}

	items, err := u.client.ListCampaigns(ctx, cred.AccessToken, accountID, pageSize)
	if err != nil {
		pe := domain.AsProxyError(err)
		if pe.Kind == domain.KindUnauthenticated {
			if derr := u.store.DeleteCredential(ctx, sessionID); derr != nil {
				u.logger.Error("forced credential invalidation failed", slog.Any("error", derr))
			} else {
				u.logger.Info("credential invalidated after upstream rejection")
			}
		}
		return nil, pe
	}

	campaigns := make([]domain.Campaign, 0, len(items))
	for _, item := range items {
		campaigns = append(campaigns, u.normalize(item))
	}
	return &port.CampaignPage{
		Campaigns:  campaigns,
		Pagination: port.Pagination{Total: len(campaigns), PageSize: pageSize},
	}, nil
}

// normalize reshapes one upstream item, applying the documented defaults for
// absent fields.
func (u *CampaignUseCase) normalize(item port.UpstreamCampaign) domain.Campaign {
	objective := item.Objective
	if objective == "" {
		objective = domain.NotAvailable
	}

	created := u.now()
	if item.CreatedTime != "" {
		if t, err := time.Parse(graphTimeLayout, item.CreatedTime); err == nil {
			created = t
		} else if t, err := time.Parse(time.RFC3339, item.CreatedTime); err == nil {
			created = t
		}
	}

	return domain.Campaign{
		ID:          item.ID,
		Name:        item.Name,
		Objective:   objective,
		Status:      domain.NormalizeStatus(item.Status),
		DailyBudget: domain.MajorUnits(item.DailyBudget),
		CreatedAt:   created,
	}
}
