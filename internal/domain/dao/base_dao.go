// Package dao defines data access object interfaces for the movie database.
// Implementations live in sub-packages (see dao/mongo).
package dao

import (
	"context"

	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// PageReader is implemented by every DAO that backs a paginated listing.
type PageReader[T any] interface {
	// Count returns the total number of documents in the collection.
	Count(ctx context.Context) (int64, error)

	// FindPage returns up to limit documents ordered by _id ascending,
	// skipping the first skip documents.
	FindPage(ctx context.Context, skip, limit int64) ([]*T, error)
}

// InsertResult reports a batch insert.
type InsertResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	InsertedCount int         `json:"insertedCount"`
	InsertedIDs   []entity.ID `json:"insertedIds"`
}

// UpdateResult reports a single-document update.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports a single-document delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// PageResult wraps paginated results with metadata.
type PageResult[T any] struct {
	Items      []*T
	TotalCount int64
	Page       int
	Size       int
}

// NewPageResult creates a new PageResult with the given parameters.
func NewPageResult[T any](items []*T, totalCount int64, page, size int) *PageResult[T] {
	return &PageResult[T]{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		Size:       size,
	}
}

// TotalPages calculates the total number of pages.
func (p *PageResult[T]) TotalPages() int {
	return TotalPages(p.TotalCount, p.Size)
}

// HasNext returns true if there are more pages after the current one.
func (p *PageResult[T]) HasNext() bool {
	return p.Page < p.TotalPages()
}

// HasPrev returns true if there are pages before the current one.
func (p *PageResult[T]) HasPrev() bool {
	return p.Page > 1
}

// TotalPages is ceil(total/size), or 0 when size is not positive.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(total / int64(size))
	if total%int64(size) > 0 {
		pages++
	}
	return pages
}
