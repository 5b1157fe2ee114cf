package service

import (
	"cmp"
	"slices"

	"github.com/sukantabhun/socioyt-go/internal/model"
)

// TopN returns the n most viewed records, most viewed first. Ties keep their
// fetch order. The input slice is not modified.
func TopN(records []model.VideoRecord, n int) []model.VideoRecord {
	if n <= 0 || len(records) == 0 {
		return []model.VideoRecord{}
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b model.VideoRecord) int {
		return cmp.Compare(b.Views, a.Views)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
