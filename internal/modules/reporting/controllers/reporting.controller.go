package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ecmis-core/internal/modules/reporting/dto"
	"ecmis-core/internal/modules/reporting/services"
	middlewareauth "ecmis-core/internal/shared/middleware/auth"
)

type ReportingController struct {
	service   *services.ReportingService
	validator *validator.Validate
}

func NewReportingController(service *services.ReportingService) *ReportingController {
	return &ReportingController{
		service:   service,
		validator: validator.New(),
	}
}

// GenerateListing POST /reporting/listings
func (c *ReportingController) GenerateListing(ctx *gin.Context) {
	rc, ok := middlewareauth.RequestContextFromGin(ctx)
	if !ok {
		return
	}

	scope, ok := c.bindScope(ctx)
	if !ok {
		return
	}

	rapport, err := c.service.GenerateListing(ctx.Request.Context(), rc, scope)
	switch {
	case errors.Is(err, dto.ErrScopeVide):
		respondScopeVide(ctx)
		return
	case err != nil:
		respondInternalError(ctx, "Erreur lors de la génération du rapport")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rapport,
	})
}

// GenerateExport POST /reporting/listings/export
func (c *ReportingController) GenerateExport(ctx *gin.Context) {
	rc, ok := middlewareauth.RequestContextFromGin(ctx)
	if !ok {
		return
	}

	scope, ok := c.bindScope(ctx)
	if !ok {
		return
	}

	payload, err := c.service.GenerateExport(ctx.Request.Context(), rc, scope)
	switch {
	case errors.Is(err, dto.ErrScopeVide):
		respondScopeVide(ctx)
		return
	case err != nil:
		respondInternalError(ctx, "Erreur lors de la génération de l'export")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payload,
	})
}

func (c *ReportingController) bindScope(ctx *gin.Context) (dto.Scope, bool) {
	var req dto.ListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return dto.Scope{}, false
	}
	if err := c.validator.Struct(req); err != nil {
		respondValidationError(ctx, err)
		return dto.Scope{}, false
	}

	scope, err := req.ToScope()
	if err != nil {
		respondValidationError(ctx, err)
		return dto.Scope{}, false
	}
	return scope, true
}

func respondScopeVide(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error": "Aucune clinique sélectionnée",
		"details": gin.H{
			"code": "SCOPE_VIDE",
		},
	})
}

func respondValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error": "Données invalides",
		"details": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": err.Error(),
		},
	})
}

func respondInternalError(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error": message,
		"details": gin.H{
			"code": "INTERNAL_ERROR",
		},
	})
}
