package presentation

import (
	"encoding/csv"
	"io"
	"time"

	"meta-ads-proxy/internal/core/domain"
)

var csvHeader = []string{"id", "name", "objective", "status", "daily_budget", "created_time"}

// WriteCSV writes the records as RFC 4180 CSV with a header row. Timestamps
// are formatted as RFC 3339.
func WriteCSV(w io.Writer, items []domain.Campaign) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range items {
		record := []string{
			c.ID,
			c.Name,
			c.Objective,
			c.Status,
			c.DailyBudget,
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
