package httpadapter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"meta-ads-proxy/internal/core/domain"
	"meta-ads-proxy/internal/presentation"
)

// exportPageSize is how many campaigns an export pulls upstream; exports are
// not windowed the way the JSON listing is.
const exportPageSize = 500

// handleCampaigns proxies the campaign listing for the authenticated
// session. The account id falls back to the configured default advertiser;
// page size falls back to the use case default.
func (h *Handler) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	accountID := firstQueryValue(r, "accountId", "account_id", "advertiser_id")
	if accountID == "" {
		accountID = h.opts.DefaultAccountID
	}

	pageSize := 0
	if raw := firstQueryValue(r, "pageSize", "page_size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			h.writeProxyError(w, &domain.ProxyError{Kind: domain.KindInvalidRequest, Message: "pageSize must be a positive integer"})
			return
		}
		pageSize = v
	}

	page, err := h.campaigns.FetchCampaigns(r.Context(), sessionID(r), accountID, pageSize)
	if err != nil {
		h.writeProxyError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// handleCampaignsExport streams the listing as a CSV attachment, optionally
// filtered (q, status) and sorted (sort, order) the same way the table view
// shapes it.
func (h *Handler) handleCampaignsExport(w http.ResponseWriter, r *http.Request) {
	accountID := firstQueryValue(r, "accountId", "account_id", "advertiser_id")
	if accountID == "" {
		accountID = h.opts.DefaultAccountID
	}

	page, err := h.campaigns.FetchCampaigns(r.Context(), sessionID(r), accountID, exportPageSize)
	if err != nil {
		h.writeProxyError(w, err)
		return
	}

	q := r.URL.Query()
	items := presentation.Filter(page.Campaigns, q.Get("q"), q.Get("status"))
	if field := q.Get("sort"); field != "" {
		items = presentation.Sort(items, field, q.Get("order") != "ascending")
	}

	filename := "campaigns-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := presentation.WriteCSV(w, items); err != nil {
		h.logger.Error("csv export failed", slog.Any("error", err))
	}
}
