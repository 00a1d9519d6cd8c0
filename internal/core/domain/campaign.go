package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Campaign statuses form a closed set. Anything the upstream reports outside
// of it collapses to StatusUnknown rather than leaking provider-specific
// values to callers.
const (
	StatusActive   = "ACTIVE"
	StatusPaused   = "PAUSED"
	StatusDeleted  = "DELETED"
	StatusArchived = "ARCHIVED"
	StatusUnknown  = "UNKNOWN"
)

// NotAvailable is the placeholder for optional upstream fields that were
// absent from the response.
const NotAvailable = "N/A"

// Campaign is an upstream campaign reshaped into the proxy's own field names,
// with defaults applied for fields the upstream may omit. Budgets are
// major-unit decimal strings (e.g. "10.50"), converted from the upstream's
// minor-unit integers.
type Campaign struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Objective   string    `json:"objective"`
	Status      string    `json:"status"`
	DailyBudget string    `json:"dailyBudgetMajorUnits"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NormalizeStatus maps an upstream status string onto the closed status set.
func NormalizeStatus(s string) string {
	switch s {
	case StatusActive, StatusPaused, StatusDeleted, StatusArchived:
		return s
	default:
		return StatusUnknown
	}
}

// MajorUnits converts a minor-unit budget string (e.g. "1050" cents) into a
// major-unit decimal string ("10.50"). Absent or malformed input yields the
// NotAvailable placeholder.
func MajorUnits(minor string) string {
	if minor == "" {
		return NotAvailable
	}
	v, err := strconv.ParseInt(minor, 10, 64)
	if err != nil || v < 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%d.%02d", v/100, v%100)
}
