package handler

import (
	"log/slog"
	"net/http"

	"manager_system/internal/middleware"
	"manager_system/internal/model"
	"manager_system/internal/policy"
	"manager_system/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user requests
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: s, logger: logger}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	user, err := h.service.Me(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	users, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) ListUsersByRole(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	var req model.RoleQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	users, err := h.service.ListByRole(c.Request.Context(), actor, req.Role)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	user, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser is the public sign-up endpoint.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.UpdateSelf(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSelf(c.Request.Context(), actor); err != nil {
		respondError(c, h.logger, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user successfully removed"})
}

func (h *UserHandler) PromoteDemote(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	var req model.PromoteDemoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.PromoteDemote(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to change role")
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/user", h.CreateUser)

	userGroup := rg.Group("/user")
	userGroup.Use(authMW)
	{
		userGroup.GET("", h.GetMe)
		userGroup.GET("/all", h.ListUsers)
		userGroup.POST("/role", middleware.RequireOperation(policy.OpUserListByRole), h.ListUsersByRole)
		userGroup.PATCH("", h.UpdateUser)
		userGroup.DELETE("", middleware.RequireOperation(policy.OpUserDeleteSelf), h.DeleteUser)
		userGroup.POST("/promote-demote", middleware.RequireOperation(policy.OpUserPromote), h.PromoteDemote)
		userGroup.GET("/:id", middleware.RequireOperation(policy.OpUserRead), h.GetUser)
	}
}
