// Package queue selects which scored keywords graduate to the next stage.
package queue

import "github.com/ceddto100/SEO-LEAD/internal/domain"

// Filter keeps rows whose volume meets minVolume, then truncates to the
// first topN. A topN of zero or less keeps every survivor, same as the
// CLI's limit flag. Rows arrive pre-sorted by opportunity score descending
// (the cluster-flattening step sorts them); this function only filters and
// truncates, preserving order.
func Filter(rows []domain.QueueRow, minVolume, topN int) []domain.QueueRow {
	filtered := make([]domain.QueueRow, 0, len(rows))
	for _, row := range rows {
		if row.Volume >= minVolume {
			filtered = append(filtered, row)
		}
	}
	if topN > 0 && len(filtered) > topN {
		filtered = filtered[:topN]
	}
	return filtered
}
