package core

import (
	"fmt"
	"slices"

	"github.com/inovacc/ghprofile/internal/model"
)

// DefaultPageSize is the number of repositories per page
const DefaultPageSize = 30

// SortByCreation returns a copy of entries ordered newest first.
// The sort is stable: entries created at the same instant keep their
// original relative order.
func SortByCreation(entries []model.Entry) []model.Entry {
	sorted := slices.Clone(entries)

	slices.SortStableFunc(sorted, func(a, b model.Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return sorted
}

// Paginate splits sorted into consecutive pages of pageSize entries.
// The last page may be short; no entries yields no pages.
func Paginate(sorted []model.Entry, pageSize int) ([]model.Page, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("invalid page size %d: must be positive", pageSize)
	}

	total := (len(sorted) + pageSize - 1) / pageSize
	pages := make([]model.Page, 0, total)

	for i := range total {
		start := i * pageSize
		end := min(start+pageSize, len(sorted))

		pages = append(pages, model.Page{
			Index:   i,
			Total:   total,
			Entries: sorted[start:end:end],
		})
	}

	return pages, nil
}
