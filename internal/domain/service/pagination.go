package service

import (
	"context"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
)

// PageRequest holds validated page and limit values.
type PageRequest struct {
	Page  int
	Limit int
}

// paginate counts the collection, rejects pages outside [1, totalPages] and
// loads the requested slice. An empty collection has no valid page.
func paginate[T any](ctx context.Context, reader dao.PageReader[T], req PageRequest) (*dao.PageResult[T], error) {
	total, err := reader.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := dao.TotalPages(total, req.Limit)
	if req.Page < 1 || req.Page > totalPages {
		return nil, ErrPageNotFound
	}

	skip := int64(req.Page-1) * int64(req.Limit)
	items, err := reader.FindPage(ctx, skip, int64(req.Limit))
	if err != nil {
		return nil, err
	}
	return dao.NewPageResult(items, total, req.Page, req.Limit), nil
}
