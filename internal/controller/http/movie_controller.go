package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/moviedb-api/internal/config"
	"github.com/jrjohn/moviedb-api/internal/domain/service"
	"github.com/jrjohn/moviedb-api/internal/dto/response"
)

// MovieController handles movie endpoints
type MovieController struct {
	movieService service.MovieService
	pagination   config.PaginationConfig
}

// NewMovieController creates a new MovieController instance
func NewMovieController(movieService service.MovieService, pagination config.PaginationConfig) *MovieController {
	return &MovieController{
		movieService: movieService,
		pagination:   pagination,
	}
}

// RegisterRoutes registers the movie routes
func (c *MovieController) RegisterRoutes(router gin.IRouter) {
	movies := router.Group("/movies")
	{
		movies.GET("", c.List)
		movies.POST("", c.Create)
		movies.GET("/id/:id", c.GetByID)
		movies.PUT("/id/:id", c.Update)
		movies.DELETE("/id/:id", c.Delete)
		movies.GET("/higher/:n", c.TopRated)
		movies.GET("/ratings/:order", c.RankByTotalRating)
		movies.GET("/star", c.RankByFiveStars)
		movies.GET("/genres/:genre/year/:year", c.ByGenreAndYear)
		movies.GET("/originaltitle", c.OriginalTitles)
	}
}

// List retrieves movies with pagination
// @Summary List movies
// @Tags Movies
// @Produce json
// @Param page query int true "Page number"
// @Param limit query int true "Page size"
// @Router /movies [get]
func (c *MovieController) List(ctx *gin.Context) {
	req, ok := pageRequest(ctx, c.pagination)
	if !ok {
		return
	}

	page, err := c.movieService.List(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPagedResponse(response.MoviesKey, page))
}

// Create inserts a batch of movies
// @Summary Create movies
// @Tags Movies
// @Accept json
// @Produce json
// @Router /movies [post]
func (c *MovieController) Create(ctx *gin.Context) {
	body, ok := bindBody(ctx)
	if !ok {
		return
	}
	items, ok := body.([]any)
	if !ok {
		respondError(ctx, service.ErrArrayExpected)
		return
	}
	if len(items) == 0 {
		respondError(ctx, service.ErrEmptyBatch)
		return
	}

	result, err := c.movieService.Create(ctx.Request.Context(), items)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// GetByID retrieves a movie with its average rating
// @Summary Get movie by ID
// @Tags Movies
// @Produce json
// @Param id path string true "Movie ID"
// @Router /movies/id/{id} [get]
func (c *MovieController) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.movieService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// Update applies a partial update to a movie
// @Summary Update movie
// @Tags Movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Router /movies/id/{id} [put]
func (c *MovieController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	body, ok := bindBody(ctx)
	if !ok {
		return
	}

	result, err := c.movieService.Update(ctx.Request.Context(), id, body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Delete removes a movie
// @Summary Delete movie
// @Tags Movies
// @Produce json
// @Param id path string true "Movie ID"
// @Router /movies/id/{id} [delete]
func (c *MovieController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.movieService.Delete(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// TopRated returns the n best movies by average rating
// @Summary Top rated movies
// @Tags Movies
// @Produce json
// @Param n path int true "Number of movies"
// @Router /movies/higher/{n} [get]
func (c *MovieController) TopRated(ctx *gin.Context) {
	n, ok := positiveInt(ctx.Param("n"))
	if !ok {
		respondError(ctx, ErrInvalidN)
		return
	}

	movies, err := c.movieService.TopRated(ctx.Request.Context(), n)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

// RankByTotalRating orders movies by the sum of their ratings
// @Summary Movies by total rating
// @Tags Movies
// @Produce json
// @Param order path string true "asc or desc"
// @Router /movies/ratings/{order} [get]
func (c *MovieController) RankByTotalRating(ctx *gin.Context) {
	movies, err := c.movieService.RankByTotalRating(ctx.Request.Context(), ctx.Param("order"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

// RankByFiveStars orders movies by their number of 5-star ratings
// @Summary Movies by 5-star ratings
// @Tags Movies
// @Produce json
// @Router /movies/star [get]
func (c *MovieController) RankByFiveStars(ctx *gin.Context) {
	movies, err := c.movieService.RankByFiveStars(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

// ByGenreAndYear lists the movies of a year tagged with a genre
// @Summary Movies by genre and year
// @Tags Movies
// @Produce json
// @Param genre path string true "Genre"
// @Param year path int true "Year"
// @Router /movies/genres/{genre}/year/{year} [get]
func (c *MovieController) ByGenreAndYear(ctx *gin.Context) {
	genre := ctx.Param("genre")
	if !lettersPattern.MatchString(genre) {
		respondError(ctx, ErrInvalidGenre)
		return
	}
	year, ok := pathYear(ctx, "year")
	if !ok {
		return
	}

	movies, err := c.movieService.ByGenreAndYear(ctx.Request.Context(), genre, year)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

// OriginalTitles splits titles carrying an original title in parentheses
// @Summary Original titles
// @Tags Movies
// @Produce json
// @Router /movies/originaltitle [get]
func (c *MovieController) OriginalTitles(ctx *gin.Context) {
	titles, err := c.movieService.OriginalTitles(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, titles)
}
