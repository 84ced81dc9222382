package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/moviedb-api/internal/config"
	"github.com/jrjohn/moviedb-api/internal/domain/service"
	"github.com/jrjohn/moviedb-api/internal/dto/response"
)

// CinemaController handles cinema and geo endpoints
type CinemaController struct {
	cinemaService service.CinemaService
	pagination    config.PaginationConfig
}

// NewCinemaController creates a new CinemaController instance
func NewCinemaController(cinemaService service.CinemaService, pagination config.PaginationConfig) *CinemaController {
	return &CinemaController{
		cinemaService: cinemaService,
		pagination:    pagination,
	}
}

// RegisterRoutes registers the cinema routes
func (c *CinemaController) RegisterRoutes(router gin.IRouter) {
	cinemas := router.Group("/cinemas")
	{
		cinemas.GET("", c.List)
		cinemas.PUT("/id/:id", c.AttachMovies)
		cinemas.GET("/movies/:id", c.MoviesShowing)
		cinemas.GET("/near/lng_lat/:lng/:lat", c.Near)
		cinemas.GET("/near/line/lng_lat/:lng1/:lat1/:lng2/:lat2", c.OnLine)
		cinemas.GET("/near/sum/lng_lat/:lng/:lat", c.CountNear)
		cinemas.GET("/within/long_lat/:lng/:lat", c.Within)
	}
}

// List retrieves cinemas with pagination
// @Summary List cinemas
// @Tags Cinemas
// @Produce json
// @Param page query int true "Page number"
// @Param limit query int true "Page size"
// @Router /cinemas [get]
func (c *CinemaController) List(ctx *gin.Context) {
	req, ok := pageRequest(ctx, c.pagination)
	if !ok {
		return
	}

	page, err := c.cinemaService.List(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPagedResponse(response.CinemasKey, page))
}

// AttachMovies adds existing movies to a cinema
// @Summary Attach movies to cinema
// @Tags Cinemas
// @Accept json
// @Produce json
// @Param id path string true "Cinema ObjectID"
// @Router /cinemas/id/{id} [put]
func (c *CinemaController) AttachMovies(ctx *gin.Context) {
	id, ok := pathObjectID(ctx, "id")
	if !ok {
		return
	}
	body, ok := bindBody(ctx)
	if !ok {
		return
	}

	result, err := c.cinemaService.AttachMovies(ctx.Request.Context(), id, body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// MoviesShowing lists the movies a cinema shows
// @Summary Movies showing at cinema
// @Tags Cinemas
// @Produce json
// @Param id path string true "Cinema ObjectID"
// @Router /cinemas/movies/{id} [get]
func (c *CinemaController) MoviesShowing(ctx *gin.Context) {
	id, ok := pathObjectID(ctx, "id")
	if !ok {
		return
	}

	movies, err := c.cinemaService.MoviesShowing(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

// Near lists the ids of cinemas within 5 km
// @Summary Cinemas nearby
// @Tags Cinemas
// @Produce json
// @Router /cinemas/near/lng_lat/{lng}/{lat} [get]
func (c *CinemaController) Near(ctx *gin.Context) {
	point, ok := pathCoordinates(ctx, "lng", "lat")
	if !ok {
		return
	}

	ids, err := c.cinemaService.Near(ctx.Request.Context(), point)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewCinemaRefs(ids))
}

// OnLine lists cinemas on the segment between two points
// @Summary Cinemas on a line
// @Tags Cinemas
// @Produce json
// @Router /cinemas/near/line/lng_lat/{lng1}/{lat1}/{lng2}/{lat2} [get]
func (c *CinemaController) OnLine(ctx *gin.Context) {
	a, ok := pathCoordinates(ctx, "lng1", "lat1")
	if !ok {
		return
	}
	b, ok := pathCoordinates(ctx, "lng2", "lat2")
	if !ok {
		return
	}

	cinemas, err := c.cinemaService.OnLine(ctx.Request.Context(), a, b)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, cinemas)
}

// CountNear counts cinemas within 5 km
// @Summary Count cinemas nearby
// @Tags Cinemas
// @Produce json
// @Router /cinemas/near/sum/lng_lat/{lng}/{lat} [get]
func (c *CinemaController) CountNear(ctx *gin.Context) {
	point, ok := pathCoordinates(ctx, "lng", "lat")
	if !ok {
		return
	}

	count, err := c.cinemaService.CountNear(ctx.Request.Context(), point)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.CountResponse{Count: count})
}

// Within reports whether a location is inside festival coverage
// @Summary Festival coverage check
// @Tags Cinemas
// @Produce json
// @Router /cinemas/within/long_lat/{lng}/{lat} [get]
func (c *CinemaController) Within(ctx *gin.Context) {
	point, ok := pathCoordinates(ctx, "lng", "lat")
	if !ok {
		return
	}

	cinemas, err := c.cinemaService.Coverage(ctx.Request.Context(), point)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.CoverageResponse{InsideCoverage: true, Cinemas: cinemas})
}
