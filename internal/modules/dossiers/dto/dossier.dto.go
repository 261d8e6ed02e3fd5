package dto

import (
	"time"

	authdto "ecmis-core/internal/modules/auth/dto"
)

// SousDomaine sous-domaine clinique d'un dossier
type SousDomaine string

const (
	SousDomaineObstetrique   SousDomaine = "obstetrique"
	SousDomainePlanification SousDomaine = "planification"
	SousDomaineIST           SousDomaine = "ist"
	SousDomaineVIH           SousDomaine = "vih"
	SousDomaineViolences     SousDomaine = "violences"
)

// SousDomaines liste ordonnée des sous-domaines cliniques
var SousDomaines = []SousDomaine{
	SousDomaineObstetrique,
	SousDomainePlanification,
	SousDomaineIST,
	SousDomaineVIH,
	SousDomaineViolences,
}

// Libelle nom d'affichage du sous-domaine (sections du reporting)
func (d SousDomaine) Libelle() string {
	switch d {
	case SousDomaineObstetrique:
		return "Obstétrique"
	case SousDomainePlanification:
		return "Planification Familiale"
	case SousDomaineIST:
		return "IST"
	case SousDomaineVIH:
		return "VIH"
	case SousDomaineViolences:
		return "Violences Basées sur le Genre"
	default:
		return string(d)
	}
}

// TableName table de la matrice de permissions gouvernant ce sous-domaine
func (d SousDomaine) TableName() authdto.TableName {
	switch d {
	case SousDomaineObstetrique:
		return authdto.TableObstetrique
	case SousDomainePlanification:
		return authdto.TablePlanification
	case SousDomaineIST:
		return authdto.TableIST
	case SousDomaineVIH:
		return authdto.TableVIH
	case SousDomaineViolences:
		return authdto.TableViolences
	default:
		return authdto.TableName("")
	}
}

// IsValid indique si le sous-domaine est reconnu
func (d SousDomaine) IsValid() bool {
	for _, valid := range SousDomaines {
		if d == valid {
			return true
		}
	}
	return false
}

// Dossier enregistrement clinique normalisé. En base, chaque sous-domaine
// porte son propre nommage de colonnes clinique/prescripteur (héritage) ;
// la normalisation se fait au scan.
type Dossier struct {
	ID             string                 `json:"id"`
	SousDomaine    SousDomaine            `json:"sous_domaine"`
	VisiteID       string                 `json:"visite_id"`
	PatientID      string                 `json:"patient_id"`
	CliniqueID     string                 `json:"clinique_id"`
	PrescripteurID *string                `json:"prescripteur_id,omitempty"`
	Donnees        map[string]interface{} `json:"donnees"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// CreateDossierRequest payload de création d'un dossier clinique
type CreateDossierRequest struct {
	VisiteID       string                 `json:"visite_id" validate:"required,uuid"`
	PatientID      string                 `json:"patient_id" validate:"required,uuid"`
	PrescripteurID *string                `json:"prescripteur_id,omitempty" validate:"omitempty,uuid"`
	Donnees        map[string]interface{} `json:"donnees"`
}
