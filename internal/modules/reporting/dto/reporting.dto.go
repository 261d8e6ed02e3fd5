package dto

import (
	"errors"
	"fmt"
	"time"
)

// ErrScopeVide aucun périmètre : la liste de cliniques est vide.
// Signalé avant toute requête, traité comme erreur de validation.
var ErrScopeVide = errors.New("aucune clinique sélectionnée")

// Periode bornes de dates inclusives. Une borne nil est ouverte ;
// deux bornes nil signifient historique complet.
type Periode struct {
	Debut *time.Time
	Fin   *time.Time
}

// Contient indique si la date tombe dans la période (bornes incluses)
func (p Periode) Contient(date time.Time) bool {
	if p.Debut != nil && date.Before(*p.Debut) {
		return false
	}
	if p.Fin != nil && date.After(*p.Fin) {
		return false
	}
	return true
}

// Scope périmètre d'un rapport : cliniques × période × activités optionnelles
type Scope struct {
	CliniqueIDs []string
	Periode     Periode
	ActiviteIDs []string
}

// ListingRequest payload du formulaire de filtres
type ListingRequest struct {
	CliniqueIDs []string `json:"clinique_ids" validate:"required,dive,uuid"`
	DateDebut   *string  `json:"date_debut,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateFin     *string  `json:"date_fin,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ActiviteIDs []string `json:"activite_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// ToScope convertit le payload en périmètre typé
func (r ListingRequest) ToScope() (Scope, error) {
	scope := Scope{
		CliniqueIDs: r.CliniqueIDs,
		ActiviteIDs: r.ActiviteIDs,
	}

	if r.DateDebut != nil {
		debut, err := time.Parse("2006-01-02", *r.DateDebut)
		if err != nil {
			return Scope{}, fmt.Errorf("date de début invalide: %w", err)
		}
		scope.Periode.Debut = &debut
	}
	if r.DateFin != nil {
		fin, err := time.Parse("2006-01-02", *r.DateFin)
		if err != nil {
			return Scope{}, fmt.Errorf("date de fin invalide: %w", err)
		}
		scope.Periode.Fin = &fin
	}

	return scope, nil
}

// VisiteRef visite résolue dans le périmètre
type VisiteRef struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	CliniqueID string    `json:"clinique_id"`
	DateVisite time.Time `json:"date_visite"`
}

// ClinicScoped frontière de normalisation : chaque ligne issue d'un
// sous-domaine expose sa clinique sous un nom unique, quel que soit le
// nommage de colonne hérité en base.
type ClinicScoped interface {
	ClinicID() string
}
