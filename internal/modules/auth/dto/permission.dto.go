package dto

import "time"

// Role rôle applicatif d'un utilisateur
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// RequestContext identité de l'appelant, fournie par le collaborateur
// d'authentification amont et passée explicitement à travers les services.
type RequestContext struct {
	UserID string
	Role   Role
}

func (rc RequestContext) IsAdmin() bool {
	return rc.Role == RoleAdmin
}

// TableName catégorie d'enregistrements gouvernée par la matrice de permissions
type TableName string

const (
	TablePatient       TableName = "PATIENT"
	TableVisite        TableName = "VISITE"
	TableObstetrique   TableName = "OBSTETRIQUE"
	TablePlanification TableName = "PLANIFICATION"
	TableIST           TableName = "IST"
	TableVIH           TableName = "VIH"
	TableViolences     TableName = "VIOLENCES"
	TableExamen        TableName = "EXAMEN"
	TableEchographie   TableName = "ECHOGRAPHIE"
	TableProduit       TableName = "PRODUIT"
	TablePrestation    TableName = "PRESTATION"
	TableDemande       TableName = "DEMANDE"
	TableUtilisateur   TableName = "UTILISATEUR"
	TablePermission    TableName = "PERMISSION"
)

// ValidTableNames tables reconnues par la matrice
var ValidTableNames = []TableName{
	TablePatient, TableVisite,
	TableObstetrique, TablePlanification, TableIST, TableVIH, TableViolences,
	TableExamen, TableEchographie, TableProduit, TablePrestation,
	TableDemande, TableUtilisateur, TablePermission,
}

func IsValidTableName(t TableName) bool {
	for _, valid := range ValidTableNames {
		if t == valid {
			return true
		}
	}
	return false
}

// Action action CRUD soumise à permission
type Action string

const (
	ActionCreer     Action = "creer"
	ActionLire      Action = "lire"
	ActionModifier  Action = "modifier"
	ActionSupprimer Action = "supprimer"
)

// Permission ligne de la matrice (utilisateur, table) -> 4 drapeaux CRUD
type Permission struct {
	ID            string    `json:"id"`
	UtilisateurID string    `json:"utilisateur_id"`
	Table         TableName `json:"table_name"`
	PeutCreer     bool      `json:"peut_creer"`
	PeutLire      bool      `json:"peut_lire"`
	PeutModifier  bool      `json:"peut_modifier"`
	PeutSupprimer bool      `json:"peut_supprimer"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Allows indique si la ligne autorise l'action donnée
func (p Permission) Allows(action Action) bool {
	switch action {
	case ActionCreer:
		return p.PeutCreer
	case ActionLire:
		return p.PeutLire
	case ActionModifier:
		return p.PeutModifier
	case ActionSupprimer:
		return p.PeutSupprimer
	default:
		return false
	}
}

// UpsertPermissionRequest payload d'écriture d'une ligne de la matrice
type UpsertPermissionRequest struct {
	Table         TableName `json:"table_name" validate:"required"`
	PeutCreer     bool      `json:"peut_creer"`
	PeutLire      bool      `json:"peut_lire"`
	PeutModifier  bool      `json:"peut_modifier"`
	PeutSupprimer bool      `json:"peut_supprimer"`
}
