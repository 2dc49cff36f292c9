package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minazuki/interview-tracker-api/internal/dto"
	apierrors "github.com/minazuki/interview-tracker-api/internal/errors"
	"github.com/minazuki/interview-tracker-api/internal/middleware"
	"github.com/minazuki/interview-tracker-api/internal/repository"
)

// CatalogHandler serves the company/stage/stage-method lookup lists.
type CatalogHandler struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogRepo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo: catalogRepo,
	}
}

// ListCompanies returns the caller's companies, alphabetical
func (h *CatalogHandler) ListCompanies(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	companies, err := h.catalogRepo.ListCompanies(userID)
	if err != nil {
		log.Printf("list companies: %v", err)
		apierrors.InternalError(c, "Failed to fetch companies")
		return
	}

	result := make([]dto.CompanyDTO, len(companies))
	for i, company := range companies {
		result[i] = dto.ToCompanyDTO(company)
	}
	c.JSON(http.StatusOK, result)
}

// ListStages returns the global stage catalog, alphabetical
func (h *CatalogHandler) ListStages(c *gin.Context) {
	stages, err := h.catalogRepo.ListStages()
	if err != nil {
		log.Printf("list stages: %v", err)
		apierrors.InternalError(c, "Failed to fetch stages")
		return
	}

	result := make([]dto.StageDTO, len(stages))
	for i, stage := range stages {
		result[i] = dto.ToStageDTO(stage)
	}
	c.JSON(http.StatusOK, result)
}

// ListStageMethods returns the global method catalog, alphabetical
func (h *CatalogHandler) ListStageMethods(c *gin.Context) {
	methods, err := h.catalogRepo.ListStageMethods()
	if err != nil {
		log.Printf("list stage methods: %v", err)
		apierrors.InternalError(c, "Failed to fetch stage methods")
		return
	}

	result := make([]dto.StageMethodDTO, len(methods))
	for i, method := range methods {
		result[i] = dto.ToStageMethodDTO(method)
	}
	c.JSON(http.StatusOK, result)
}
