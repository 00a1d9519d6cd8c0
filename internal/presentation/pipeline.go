// Package presentation shapes normalized campaign records for display and
// export: filtering, sorting, pagination and CSV. Every function works on a
// copy and never mutates its input slice.
package presentation

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"meta-ads-proxy/internal/core/domain"
)

// Filter returns the records whose id, name, objective or status contains
// the query (case-insensitive), further narrowed by an exact status when one
// is given.
func Filter(items []domain.Campaign, query, status string) []domain.Campaign {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Campaign, 0, len(items))
	for _, c := range items {
		if status != "" && c.Status != status {
			continue
		}
		if query != "" && !matches(c, query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(c domain.Campaign, query string) bool {
	for _, field := range []string{c.ID, c.Name, c.Objective, c.Status} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy. Recognized fields: id, name, objective,
// status, budget (numeric where possible, "N/A" compared as text) and
// created_time; anything else leaves the order unchanged.
func Sort(items []domain.Campaign, field string, descending bool) []domain.Campaign {
	out := slices.Clone(items)
	less := lessFunc(field)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			i, j = j, i
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field string) func(a, b domain.Campaign) bool {
	switch field {
	case "id":
		return func(a, b domain.Campaign) bool { return a.ID < b.ID }
	case "name", "campaign_name":
		return func(a, b domain.Campaign) bool { return lowerLess(a.Name, b.Name) }
	case "objective":
		return func(a, b domain.Campaign) bool { return lowerLess(a.Objective, b.Objective) }
	case "status", "campaign_status":
		return func(a, b domain.Campaign) bool { return a.Status < b.Status }
	case "budget", "daily_budget":
		return budgetLess
	case "created_time", "createdAt":
		return func(a, b domain.Campaign) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return nil
	}
}

func lowerLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// budgetLess compares budgets numerically when both parse; records without a
// budget fall back to a text comparison, which groups the "N/A" rows.
func budgetLess(a, b domain.Campaign) bool {
	av, aerr := strconv.ParseFloat(a.DailyBudget, 64)
	bv, berr := strconv.ParseFloat(b.DailyBudget, 64)
	if aerr == nil && berr == nil {
		return av < bv
	}
	return a.DailyBudget < b.DailyBudget
}

// Paginate returns the 1-based page window of the given size. An
// out-of-range page yields an empty slice, never an error.
func Paginate(items []domain.Campaign, page, perPage int) []domain.Campaign {
	if perPage < 1 {
		perPage = len(items)
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []domain.Campaign{}
	}
	end := min(start+perPage, len(items))
	return slices.Clone(items[start:end])
}
