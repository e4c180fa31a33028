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

// BranchHandler handles branch requests
type BranchHandler struct {
	service service.BranchService
	logger  *slog.Logger
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(s service.BranchService, logger *slog.Logger) *BranchHandler {
	return &BranchHandler{service: s, logger: logger}
}

func (h *BranchHandler) GetMyBranch(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	branch, err := h.service.Mine(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve branch")
		return
	}
	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) ListBranches(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	page, err := parsePage(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	branches, err := h.service.List(c.Request.Context(), actor, page)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve branches")
		return
	}
	c.JSON(http.StatusOK, branches)
}

func (h *BranchHandler) GetBranchByName(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: name is required"})
		return
	}
	branches, err := h.service.FindByName(c.Request.Context(), actor, name)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve branch")
		return
	}
	c.JSON(http.StatusOK, branches)
}

func (h *BranchHandler) GetBranch(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	branch, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve branch")
		return
	}
	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	var req model.BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	branch, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create branch")
		return
	}
	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	var req model.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	branch, err := h.service.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update branch")
		return
	}
	c.JSON(http.StatusOK, branch)
}

// DeleteBranch serves both DELETE /branch (own) and DELETE /branch/:id.
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete branch")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "branch successfully removed"})
}

// RegisterBranchRoutes registers branch routes
func (h *BranchHandler) RegisterBranchRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	branchGroup := rg.Group("/branch")
	branchGroup.Use(authMW)
	{
		branchGroup.GET("", h.GetMyBranch)
		branchGroup.GET("/all", middleware.RequireOperation(policy.OpBranchList), h.ListBranches)
		branchGroup.GET("/name", middleware.RequireOperation(policy.OpBranchRead), h.GetBranchByName)
		branchGroup.GET("/:id", middleware.RequireOperation(policy.OpBranchRead), h.GetBranch)
		branchGroup.POST("", middleware.RequireOperation(policy.OpBranchCreate), h.CreateBranch)
		branchGroup.PATCH("/:id", middleware.RequireOperation(policy.OpBranchUpdate), h.UpdateBranch)
		branchGroup.DELETE("", middleware.RequireOperation(policy.OpBranchDelete), h.DeleteBranch)
		branchGroup.DELETE("/:id", middleware.RequireOperation(policy.OpBranchDelete), h.DeleteBranch)
	}
}
