package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
)

// FileSystem is the part of the filesystem the catalog touches when a record
// is renamed or deleted.
type FileSystem interface {
	Rename(oldPath, newPath string) error
	Remove(path string) error
	Exists(path string) bool
}

// OSFileSystem implements FileSystem with the os package.
type OSFileSystem struct{}

func (OSFileSystem) Rename(oldPath, newPath string) error { return os.Rename(oldPath, newPath) }
func (OSFileSystem) Remove(path string) error             { return os.Remove(path) }

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Catalog is an ordered collection of artifact records.
type Catalog struct {
	records  []Record
	nextID   uint64
	capacity int
	modified bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithCapacity bounds the catalog to n records. n <= 0 means unbounded.
func WithCapacity(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// New returns an empty catalog whose first record gets sequence id 1.
func New(opts ...Option) *Catalog {
	c := &Catalog{nextID: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore replaces the contents with records loaded from storage. nextID is
// raised above every stored id so ids are never reused. The catalog is left
// unmodified.
func (c *Catalog) Restore(records []Record, nextID uint64) error {
	if c.capacity > 0 && len(records) > c.capacity {
		return fmt.Errorf("restoring %d records: %w", len(records), kerrors.ErrCapacityExceeded)
	}
	if nextID == 0 {
		nextID = 1
	}
	for _, r := range records {
		if r.SequenceID >= nextID {
			nextID = r.SequenceID + 1
		}
	}
	c.records = append([]Record(nil), records...)
	c.nextID = nextID
	c.modified = false
	return nil
}

// Len returns the number of live records.
func (c *Catalog) Len() int { return len(c.records) }

// NextID returns the sequence id the next Insert will assign.
func (c *Catalog) NextID() uint64 { return c.nextID }

// Capacity returns the configured bound, or 0 for an unbounded catalog.
func (c *Catalog) Capacity() int { return c.capacity }

// Modified reports whether the catalog changed since it was last saved.
func (c *Catalog) Modified() bool { return c.modified }

// MarkSaved clears the modified flag after a successful persist.
func (c *Catalog) MarkSaved() { c.modified = false }

// Records returns a copy of the records in catalog order.
func (c *Catalog) Records() []Record {
	return append([]Record(nil), c.records...)
}

// Get returns the record at index.
func (c *Catalog) Get(index int) (Record, error) {
	if err := c.checkIndex(index); err != nil {
		return Record{}, err
	}
	return c.records[index], nil
}

// Insert appends rec, assigns it the next sequence id and returns that id.
// Any SequenceID already set on rec is overwritten.
func (c *Catalog) Insert(rec Record) (uint64, error) {
	if c.capacity > 0 && len(c.records) >= c.capacity {
		return 0, fmt.Errorf("inserting %s: %w", rec.OriginalName, kerrors.ErrCapacityExceeded)
	}
	rec.SequenceID = c.nextID
	c.nextID++
	c.records = append(c.records, rec)
	c.modified = true
	return rec.SequenceID, nil
}

// Remove deletes the record at index and shifts later records down by one.
func (c *Catalog) Remove(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.records = append(c.records[:index], c.records[index+1:]...)
	c.modified = true
	return nil
}

// Rename renames the artifact file on fsys and then records the new name.
// An existing file at newName is never replaced. If the filesystem rename
// fails the catalog is left untouched.
func (c *Catalog) Rename(index int, newName string, fsys FileSystem) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if strings.TrimSpace(newName) == "" {
		return kerrors.ErrInvalidName
	}

	rec := &c.records[index]
	if newName != rec.ArtifactName && fsys.Exists(newName) {
		return fmt.Errorf("%w: %s already exists", kerrors.ErrRenameFailed, newName)
	}
	if err := fsys.Rename(rec.ArtifactName, newName); err != nil {
		return fmt.Errorf("%w: %s -> %s: %v", kerrors.ErrRenameFailed, rec.ArtifactName, newName, err)
	}
	rec.ArtifactName = newName
	c.modified = true
	return nil
}

// Delete removes the artifact file from fsys and then the record. An artifact
// that no longer exists is not an error. Any other removal failure leaves the
// catalog untouched.
func (c *Catalog) Delete(index int, fsys FileSystem) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}

	name := c.records[index].ArtifactName
	if err := fsys.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrDeleteFailed, name, err)
	}
	return c.Remove(index)
}

// SearchByName returns the indices of records whose OriginalName contains
// substr, in catalog order. Matching is case-sensitive. At most max indices
// are returned; max <= 0 yields none.
func (c *Catalog) SearchByName(substr string, max int) []int {
	results := []int{}
	if max <= 0 {
		return results
	}
	for i, r := range c.records {
		if strings.Contains(r.OriginalName, substr) {
			results = append(results, i)
			if len(results) == max {
				break
			}
		}
	}
	return results
}

func (c *Catalog) checkIndex(index int) error {
	if index < 0 || index >= len(c.records) {
		return fmt.Errorf("index %d of %d: %w", index, len(c.records), kerrors.ErrInvalidIndex)
	}
	return nil
}
