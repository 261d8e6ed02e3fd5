package dto

import (
	"fmt"
	"time"
)

// CodeGenerationResponse résultat d'une génération de code patient
type CodeGenerationResponse struct {
	CodePatient      string    `json:"code_patient"`
	CliniqueCode     string    `json:"clinique_code"`
	Annee            int       `json:"annee"`
	Numero           int       `json:"numero"`
	Suffixe          string    `json:"suffixe"`
	NombreGeneres    int64     `json:"nombre_generes,omitempty"`
	GeneratedAt      time.Time `json:"generated_at"`
	Source           string    `json:"source"`
	GenerationTimeMs int       `json:"generation_time_ms"`
}

// Codes d'erreur de génération
const (
	ErrCodeCliniqueInvalide  = "CLINIQUE_CODE_INVALIDE"
	ErrCodeCapaciteMaximale  = "CAPACITE_MAXIMALE_ATTEINTE"
	ErrCodeGenerationEchouee = "GENERATION_ECHOUEE"
)

// CodeGenerationError erreur typée de génération de code patient
type CodeGenerationError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	CliniqueCode string `json:"clinique_code,omitempty"`
	Annee        int    `json:"annee,omitempty"`
}

func (e *CodeGenerationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewCodeGenerationError(code, message, cliniqueCode string, annee int) *CodeGenerationError {
	return &CodeGenerationError{
		Code:         code,
		Message:      message,
		CliniqueCode: cliniqueCode,
		Annee:        annee,
	}
}
