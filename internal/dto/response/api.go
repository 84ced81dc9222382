package response

import (
	"encoding/json"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// Collection keys used by the paginated list routes.
const (
	UsersKey   = "users"
	MoviesKey  = "filmes"
	CinemasKey = "cinemas"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// NewError creates an error response
func NewError(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewErrorWithDetails creates an error response with details
func NewErrorWithDetails(message string, details any) ErrorResponse {
	return ErrorResponse{Error: message, Details: details}
}

// PagedResponse wraps one page of a collection. Items are emitted under Key.
type PagedResponse[T any] struct {
	Key             string
	Items           []*T
	TotalDocs       int64
	CurrentPageDocs int
	TotalPages      int
	CurrentPage     int
	// PrevPage and NextPage are omitted on the first and last page.
	PrevPage *int
	NextPage *int
}

// NewPagedResponse creates a paged response from a page result
func NewPagedResponse[T any](key string, page *dao.PageResult[T]) PagedResponse[T] {
	items := page.Items
	if items == nil {
		items = []*T{}
	}

	resp := PagedResponse[T]{
		Key:             key,
		Items:           items,
		TotalDocs:       page.TotalCount,
		CurrentPageDocs: len(items),
		TotalPages:      page.TotalPages(),
		CurrentPage:     page.Page,
	}
	if page.HasPrev() {
		prev := page.Page - 1
		resp.PrevPage = &prev
	}
	if page.HasNext() {
		next := page.Page + 1
		resp.NextPage = &next
	}
	return resp
}

// MarshalJSON emits the envelope with the items under the collection key.
func (p PagedResponse[T]) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		p.Key:             p.Items,
		"totalDocs":       p.TotalDocs,
		"currentPageDocs": p.CurrentPageDocs,
		"totalPages":      p.TotalPages,
		"currentPage":     p.CurrentPage,
	}
	if p.PrevPage != nil {
		body["prevPage"] = *p.PrevPage
	}
	if p.NextPage != nil {
		body["nextPage"] = *p.NextPage
	}
	return json.Marshal(body)
}

// CinemaRef is a cinema reduced to its identifier.
type CinemaRef struct {
	ID entity.ID `json:"_id"`
}

// NewCinemaRefs wraps cinema ids
func NewCinemaRefs(ids []entity.ID) []CinemaRef {
	refs := make([]CinemaRef, len(ids))
	for i, id := range ids {
		refs[i] = CinemaRef{ID: id}
	}
	return refs
}

// CountResponse reports how many cinemas matched
type CountResponse struct {
	Count int64 `json:"count"`
}

// CoverageResponse answers whether a location is inside festival coverage
type CoverageResponse struct {
	InsideCoverage bool             `json:"insideCoverage"`
	Cinemas        []*entity.Cinema `json:"cinemas"`
}

// HealthResponse is returned by the health and readiness probes
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
