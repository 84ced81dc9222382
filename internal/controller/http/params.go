package http

import (
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/moviedb-api/internal/config"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
	"github.com/jrjohn/moviedb-api/internal/domain/service"
	"github.com/jrjohn/moviedb-api/internal/dto/response"
	apperrors "github.com/jrjohn/moviedb-api/pkg/errors"
)

var (
	digitsPattern  = regexp.MustCompile(`^\d+$`)
	lettersPattern = regexp.MustCompile(`^\p{L}+$`)
)

// Path and query errors.
var (
	ErrInvalidID         = apperrors.ErrBadRequest.WithMessage("invalid id")
	ErrInvalidPage       = apperrors.ErrBadRequest.WithMessage("page and limit must be positive integers")
	ErrInvalidJSON       = apperrors.ErrBadRequest.WithMessage("invalid JSON body")
	ErrInvalidN          = apperrors.ErrBadRequest.WithMessage("n must be a positive integer")
	ErrInvalidGenre      = apperrors.ErrBadRequest.WithMessage("genre must contain letters only")
	ErrInvalidCoordinate = apperrors.ErrBadRequest.WithMessage("coordinates must be non-zero numbers")
)

// respondError writes err as {error, details?}. Errors without a status are
// store failures and surface as 500 with their message.
func respondError(ctx *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		ctx.JSON(appErr.Status, response.NewErrorWithDetails(appErr.Message, appErr.Details))
		return
	}
	_ = ctx.Error(err)
	ctx.JSON(http.StatusInternalServerError, response.NewError(err.Error()))
}

// bindBody decodes the JSON body into untyped maps and slices.
func bindBody(ctx *gin.Context) (any, bool) {
	var body any
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondError(ctx, ErrInvalidJSON)
		return nil, false
	}
	return body, true
}

// pageRequest reads page and limit. When either is missing the client is
// redirected to the same path with the configured defaults.
func pageRequest(ctx *gin.Context, defaults config.PaginationConfig) (service.PageRequest, bool) {
	pageStr, hasPage := ctx.GetQuery("page")
	limitStr, hasLimit := ctx.GetQuery("limit")
	if !hasPage || !hasLimit {
		target := fmt.Sprintf("%s?page=%d&limit=%d", ctx.Request.URL.Path, defaults.DefaultPage, defaults.DefaultLimit)
		ctx.Redirect(http.StatusFound, target)
		return service.PageRequest{}, false
	}

	page, okPage := positiveInt(pageStr)
	limit, okLimit := positiveInt(limitStr)
	if !okPage || !okLimit {
		respondError(ctx, ErrInvalidPage)
		return service.PageRequest{}, false
	}
	return service.PageRequest{Page: page, Limit: limit}, true
}

// positiveInt accepts digit-only strings greater than zero.
func positiveInt(s string) (int, bool) {
	if !digitsPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// pathID resolves a numeric or ObjectID path parameter.
func pathID(ctx *gin.Context, name string) (entity.ID, bool) {
	id, err := entity.ParseID(ctx.Param(name))
	if err != nil {
		respondError(ctx, ErrInvalidID)
		return entity.ID{}, false
	}
	return id, true
}

// pathObjectID resolves a path parameter that must be an ObjectID.
func pathObjectID(ctx *gin.Context, name string) (entity.ID, bool) {
	id, err := entity.ParseObjectID(ctx.Param(name))
	if err != nil {
		respondError(ctx, ErrInvalidID)
		return entity.ID{}, false
	}
	return id, true
}

// pathCoordinates parses a lng/lat pair. Zero is rejected like a
// non-numeric value.
func pathCoordinates(ctx *gin.Context, lngName, latName string) (entity.Coordinates, bool) {
	lng, okLng := coordinate(ctx.Param(lngName))
	lat, okLat := coordinate(ctx.Param(latName))
	if !okLng || !okLat {
		respondError(ctx, ErrInvalidCoordinate)
		return entity.Coordinates{}, false
	}
	return entity.Coordinates{Lng: lng, Lat: lat}, true
}

func coordinate(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// pathYear accepts a digit-only year between 1500 and the current year.
func pathYear(ctx *gin.Context, name string) (int, bool) {
	s := ctx.Param(name)
	maxYear := service.CurrentYear()
	invalid := apperrors.ErrBadRequest.WithMessage(
		fmt.Sprintf("year must be a number between %d and %d", entity.MinMovieYear, maxYear))

	if !digitsPattern.MatchString(s) {
		respondError(ctx, invalid)
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < entity.MinMovieYear || year > maxYear {
		respondError(ctx, invalid)
		return 0, false
	}
	return year, true
}
