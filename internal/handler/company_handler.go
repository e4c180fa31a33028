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

// CompanyHandler handles company requests
type CompanyHandler struct {
	service service.CompanyService
	logger  *slog.Logger
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(s service.CompanyService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{service: s, logger: logger}
}

func (h *CompanyHandler) GetMyCompany(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	company, err := h.service.Mine(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	page, err := parsePage(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	companies, err := h.service.List(c.Request.Context(), actor, page)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve companies")
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) GetCompanyByName(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: name is required"})
		return
	}
	company, err := h.service.FindByName(c.Request.Context(), actor, name)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	company, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	var req model.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	company, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create company")
		return
	}
	c.JSON(http.StatusCreated, company)
}

// UpdateCompany serves both PATCH /company (own) and PATCH /company/:id.
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	var req model.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	company, err := h.service.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update company")
		return
	}
	c.JSON(http.StatusOK, company)
}

// DeleteCompany serves both DELETE /company (own) and DELETE /company/:id.
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete company")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company successfully removed"})
}

// RegisterCompanyRoutes registers company routes
func (h *CompanyHandler) RegisterCompanyRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	companyGroup := rg.Group("/company")
	companyGroup.Use(authMW)
	{
		companyGroup.GET("", h.GetMyCompany)
		companyGroup.GET("/all", middleware.RequireOperation(policy.OpCompanyList), h.ListCompanies)
		companyGroup.GET("/name", middleware.RequireOperation(policy.OpCompanyRead), h.GetCompanyByName)
		companyGroup.GET("/:id", middleware.RequireOperation(policy.OpCompanyRead), h.GetCompany)
		companyGroup.POST("", middleware.RequireOperation(policy.OpCompanyCreate), h.CreateCompany)
		companyGroup.PATCH("", middleware.RequireOperation(policy.OpCompanyUpdate), h.UpdateCompany)
		companyGroup.PATCH("/:id", middleware.RequireOperation(policy.OpCompanyUpdate), h.UpdateCompany)
		companyGroup.DELETE("", middleware.RequireOperation(policy.OpCompanyDelete), h.DeleteCompany)
		companyGroup.DELETE("/:id", middleware.RequireOperation(policy.OpCompanyDelete), h.DeleteCompany)
	}
}
