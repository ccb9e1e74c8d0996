package workflows

import (
	"context"

	"github.com/ccrypt/ccrypt/internal/catalog"
)

// Entry pairs a catalog record with its current 0-based index.
type Entry struct {
	Index  int
	Record catalog.Record
}

// ListOptions configures the list workflow.
type ListOptions struct {
	// Sort reorders the catalog in place before listing. Sorting persists,
	// so the indices shown stay valid for follow-up commands.
	Sort *catalog.Criterion
}

// ListResult contains the catalog entries in catalog order.
type ListResult struct {
	Entries []Entry

	// Sorted reports whether the catalog order changed.
	Sorted bool
}

// List returns every record, optionally after sorting the catalog.
func List(ctx context.Context, cat *catalog.Catalog, opts ListOptions) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ListResult{}
	if opts.Sort != nil {
		if err := cat.Sort(*opts.Sort); err != nil {
			return nil, err
		}
		result.Sorted = true
	}

	for i, rec := range cat.Records() {
		result.Entries = append(result.Entries, Entry{Index: i, Record: rec})
	}
	return result, nil
}

// SearchOptions configures the search workflow.
type SearchOptions struct {
	// Query is matched case-sensitively against original names.
	Query string

	// Max bounds the number of matches. Values <= 0 match nothing.
	Max int
}

// SearchResult contains matching entries in catalog order.
type SearchResult struct {
	Entries []Entry
}

// Search finds records whose original name contains opts.Query.
func Search(ctx context.Context, cat *catalog.Catalog, opts SearchOptions) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &SearchResult{Entries: []Entry{}}
	for _, i := range cat.SearchByName(opts.Query, opts.Max) {
		rec, err := cat.Get(i)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, Entry{Index: i, Record: rec})
	}
	return result, nil
}

// Info returns the record at index.
func Info(ctx context.Context, cat *catalog.Catalog, index int) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := cat.Get(index)
	if err != nil {
		return nil, err
	}
	return &Entry{Index: index, Record: rec}, nil
}
