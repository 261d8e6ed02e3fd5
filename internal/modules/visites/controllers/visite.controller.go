package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	patientServices "ecmis-core/internal/modules/core-services/patient/services"
	"ecmis-core/internal/modules/visites/dto"
	"ecmis-core/internal/modules/visites/services"
)

type VisiteController struct {
	service   *services.VisiteService
	validator *validator.Validate
}

func NewVisiteController(service *services.VisiteService) *VisiteController {
	return &VisiteController{
		service:   service,
		validator: validator.New(),
	}
}

// CreateVisite POST /visites
func (c *VisiteController) CreateVisite(ctx *gin.Context) {
	var req dto.CreateVisiteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	visite, err := c.service.Create(ctx.Request.Context(), req)
	if errors.Is(err, patientServices.ErrPatientIntrouvable) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Patient introuvable",
			"details": gin.H{
				"code": "PATIENT_NOT_FOUND",
			},
		})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la création de la visite",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    visite,
	})
}

// GetVisite GET /visites/:id
func (c *VisiteController) GetVisite(ctx *gin.Context) {
	visite, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if errors.Is(err, services.ErrVisiteIntrouvable) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "Visite introuvable",
			"details": gin.H{
				"code": "VISITE_NOT_FOUND",
			},
		})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la récupération de la visite",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    visite,
	})
}

// ListVisitesByPatient GET /patients/:id/visites
func (c *VisiteController) ListVisitesByPatient(ctx *gin.Context) {
	visites, err := c.service.ListByPatient(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la récupération des visites",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    visites,
	})
}

// GetVisiteRecap GET /visites/:id/recap
func (c *VisiteController) GetVisiteRecap(ctx *gin.Context) {
	recap, err := c.service.GetRecap(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la récupération du récap",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}
	if recap == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "Récap introuvable pour cette visite",
			"details": gin.H{
				"code": "RECAP_NOT_FOUND",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    recap,
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
