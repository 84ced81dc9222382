package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/moviedb-api/internal/config"
	"github.com/jrjohn/moviedb-api/internal/domain/service"
	"github.com/jrjohn/moviedb-api/internal/dto/response"
)

// UserController handles user endpoints
type UserController struct {
	userService service.UserService
	pagination  config.PaginationConfig
}

// NewUserController creates a new UserController instance
func NewUserController(userService service.UserService, pagination config.PaginationConfig) *UserController {
	return &UserController{
		userService: userService,
		pagination:  pagination,
	}
}

// RegisterRoutes registers the user routes
func (c *UserController) RegisterRoutes(router gin.IRouter) {
	users := router.Group("/users")
	{
		users.GET("", c.List)
		users.POST("", c.Create)
		users.GET("/stats", c.Stats)
		users.GET("/id/:id", c.GetByID)
		users.PUT("/id/:id", c.Update)
		users.DELETE("/id/:id", c.Delete)
	}
}

// List retrieves users with pagination
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int true "Page number"
// @Param limit query int true "Page size"
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	req, ok := pageRequest(ctx, c.pagination)
	if !ok {
		return
	}

	page, err := c.userService.List(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPagedResponse(response.UsersKey, page))
}

// Create inserts a batch of users
// @Summary Create users
// @Tags Users
// @Accept json
// @Produce json
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
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

	result, err := c.userService.Create(ctx.Request.Context(), items)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// GetByID retrieves a user with its top rated movies
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Router /users/id/{id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.userService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// Update applies a partial update to a user
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Router /users/id/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	body, ok := bindBody(ctx)
	if !ok {
		return
	}

	result, err := c.userService.Update(ctx.Request.Context(), id, body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Delete removes a user
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Router /users/id/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.userService.Delete(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Stats returns per-user rating statistics
// @Summary User rating statistics
// @Tags Users
// @Produce json
// @Router /users/stats [get]
func (c *UserController) Stats(ctx *gin.Context) {
	stats, err := c.userService.Stats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
