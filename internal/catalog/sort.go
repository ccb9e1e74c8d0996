package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Criterion selects the ordering used by Sort.
type Criterion int

const (
	// ByName orders by original name, case-insensitively.
	ByName Criterion = iota + 1
	// ByRecency orders by descending sequence id, most recent first.
	ByRecency
	// BySize orders by descending original size.
	BySize
	// ByType orders by file type, case-insensitively.
	ByType
)

var criterionNames = map[string]Criterion{
	"name":   ByName,
	"recent": ByRecency,
	"date":   ByRecency,
	"size":   BySize,
	"type":   ByType,
}

// ParseCriterion parses a criterion name: name, recent (or date), size, type.
func ParseCriterion(s string) (Criterion, error) {
	c, ok := criterionNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown sort criterion %q (want name, recent, size or type)", s)
	}
	return c, nil
}

func (c Criterion) String() string {
	switch c {
	case ByName:
		return "name"
	case ByRecency:
		return "recent"
	case BySize:
		return "size"
	case ByType:
		return "type"
	default:
		return fmt.Sprintf("criterion(%d)", int(c))
	}
}

// Sort reorders the records by criterion. Records with equal keys keep their
// relative order.
func (c *Catalog) Sort(criterion Criterion) error {
	compare, err := comparator(criterion)
	if err != nil {
		return err
	}
	if len(c.records) < 2 {
		return nil
	}
	slices.SortStableFunc(c.records, compare)
	c.modified = true
	return nil
}

func comparator(criterion Criterion) (func(a, b Record) int, error) {
	switch criterion {
	case ByName:
		return func(a, b Record) int {
			return cmp.Compare(strings.ToLower(a.OriginalName), strings.ToLower(b.OriginalName))
		}, nil
	case ByRecency:
		return func(a, b Record) int { return cmp.Compare(b.SequenceID, a.SequenceID) }, nil
	case BySize:
		return func(a, b Record) int { return cmp.Compare(b.OriginalSize, a.OriginalSize) }, nil
	case ByType:
		return func(a, b Record) int {
			return cmp.Compare(strings.ToLower(a.FileType), strings.ToLower(b.FileType))
		}, nil
	default:
		return nil, fmt.Errorf("unknown sort criterion %s", criterion)
	}
}
