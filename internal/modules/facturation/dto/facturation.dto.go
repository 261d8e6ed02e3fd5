package dto

import (
	"time"

	authdto "ecmis-core/internal/modules/auth/dto"
)

// TypeDemande type d'acte facturable
type TypeDemande string

const (
	TypeExamen      TypeDemande = "EXAMEN"
	TypeEchographie TypeDemande = "ECHOGRAPHIE"
	TypeProduit     TypeDemande = "PRODUIT"
	TypePrestation  TypeDemande = "PRESTATION"
)

// TypesDemande liste ordonnée des types facturables
var TypesDemande = []TypeDemande{
	TypeExamen,
	TypeEchographie,
	TypeProduit,
	TypePrestation,
}

// IsValid indique si le type est reconnu
func (t TypeDemande) IsValid() bool {
	for _, valid := range TypesDemande {
		if t == valid {
			return true
		}
	}
	return false
}

// TableName table de la matrice de permissions gouvernant ce type
func (t TypeDemande) TableName() authdto.TableName {
	switch t {
	case TypeExamen:
		return authdto.TableExamen
	case TypeEchographie:
		return authdto.TableEchographie
	case TypeProduit:
		return authdto.TableProduit
	case TypePrestation:
		return authdto.TablePrestation
	default:
		return authdto.TableName("")
	}
}

// Statuts de demande
const (
	StatutEnAttente = "EN_ATTENTE"
	StatutFacturee  = "FACTUREE"
	StatutAnnulee   = "ANNULEE"
)

// Tarif ligne d'un catalogue tarifaire (seedé au bootstrap)
type Tarif struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Libelle   string    `json:"libelle"`
	Prix      float64   `json:"prix"`
	EstActif  bool      `json:"est_actif"`
	CreatedAt time.Time `json:"created_at"`
}

// Demande requête d'acte pour une visite, en attente de facturation
type Demande struct {
	ID          string      `json:"id"`
	VisiteID    string      `json:"visite_id"`
	PatientID   string      `json:"patient_id"`
	CliniqueID  string      `json:"clinique_id"`
	TypeDemande TypeDemande `json:"type_demande"`
	TarifID     string      `json:"tarif_id"`
	Statut      string      `json:"statut"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CreateDemandeRequest payload de création d'une demande
type CreateDemandeRequest struct {
	VisiteID    string      `json:"visite_id" validate:"required,uuid"`
	PatientID   string      `json:"patient_id" validate:"required,uuid"`
	TypeDemande TypeDemande `json:"type_demande" validate:"required"`
	TarifID     string      `json:"tarif_id" validate:"required,uuid"`
}

// Facture ligne facturée immuable, créée à l'exécution d'une demande.
// En base chaque type porte son préfixe de colonnes hérité (exam_/echo_/prod_/prest_).
type Facture struct {
	ID         string      `json:"id"`
	DemandeID  string      `json:"demande_id"`
	VisiteID   string      `json:"visite_id"`
	PatientID  string      `json:"patient_id"`
	CliniqueID string      `json:"clinique_id"`
	UserID     string      `json:"user_id"`
	Type       TypeDemande `json:"type"`
	Libelle    string      `json:"libelle"`
	Prix       float64     `json:"prix"`
	Remise     *float64    `json:"remise,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// FacturerDemandeRequest payload de facturation d'une demande
type FacturerDemandeRequest struct {
	Remise *float64 `json:"remise,omitempty" validate:"omitempty,gte=0"`
}
