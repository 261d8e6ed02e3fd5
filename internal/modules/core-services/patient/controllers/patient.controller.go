package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	cliniqueServices "ecmis-core/internal/modules/core-services/clinique/services"
	"ecmis-core/internal/modules/core-services/patient/dto"
	"ecmis-core/internal/modules/core-services/patient/services"
	middlewareauth "ecmis-core/internal/shared/middleware/auth"
)

type PatientController struct {
	service   *services.PatientService
	validator *validator.Validate
}

func NewPatientController(service *services.PatientService) *PatientController {
	return &PatientController{
		service:   service,
		validator: validator.New(),
	}
}

// CreatePatient POST /patients — admission
func (c *PatientController) CreatePatient(ctx *gin.Context) {
	var req dto.CreatePatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	patient, err := c.service.Create(ctx.Request.Context(), req)
	if errors.Is(err, cliniqueServices.ErrCliniqueIntrouvable) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Clinique introuvable",
			"details": gin.H{
				"code": "CLINIQUE_NOT_FOUND",
			},
		})
		return
	}
	if err != nil {
		var genErr *dto.CodeGenerationError
		if errors.As(err, &genErr) {
			ctx.JSON(http.StatusConflict, gin.H{
				"error": genErr.Message,
				"details": gin.H{
					"code": genErr.Code,
				},
			})
			return
		}
		respondInternalError(ctx, "Erreur lors de l'admission du patient")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    patient,
	})
}

// GetPatient GET /patients/:id
func (c *PatientController) GetPatient(ctx *gin.Context) {
	patient, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if errors.Is(err, services.ErrPatientIntrouvable) {
		respondPatientNotFound(ctx)
		return
	}
	if err != nil {
		respondInternalError(ctx, "Erreur lors de la récupération du patient")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    patient,
	})
}

// SearchPatients GET /patients?clinique_id=&terme=&limit=
func (c *PatientController) SearchPatients(ctx *gin.Context) {
	var req dto.SearchPatientsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	patients, err := c.service.Search(ctx.Request.Context(), req)
	if err != nil {
		respondInternalError(ctx, "Erreur lors de la recherche de patients")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    patients,
	})
}

// UpdatePatient PUT /patients/:id
func (c *PatientController) UpdatePatient(ctx *gin.Context) {
	var req dto.UpdatePatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	patient, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if errors.Is(err, services.ErrPatientIntrouvable) {
		respondPatientNotFound(ctx)
		return
	}
	if err != nil {
		respondInternalError(ctx, "Erreur lors de la mise à jour du patient")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    patient,
	})
}

// DeletePatient DELETE /patients/:id — échappatoire administrative,
// réservée au rôle ADMIN quelle que soit la matrice
func (c *PatientController) DeletePatient(ctx *gin.Context) {
	rc, ok := middlewareauth.RequestContextFromGin(ctx)
	if !ok {
		return
	}
	if !rc.IsAdmin() {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error": "Suppression réservée aux administrateurs",
			"details": gin.H{
				"code": "ADMIN_REQUIRED",
			},
		})
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondInternalError(ctx, "Erreur lors de la suppression du patient")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func respondPatientNotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, gin.H{
		"error": "Patient introuvable",
		"details": gin.H{
			"code": "PATIENT_NOT_FOUND",
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
