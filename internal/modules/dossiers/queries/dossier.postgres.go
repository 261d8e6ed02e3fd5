package queries

import (
	"fmt"

	"ecmis-core/internal/modules/dossiers/dto"
)

// DossierSQL requêtes d'un sous-domaine. Le SQL porte le nommage de colonnes
// historique (obst_/pf_/ist_/vih_/mdg_) ; les SELECT aliasent vers des noms
// normalisés pour que le scan soit identique partout.
type DossierSQL struct {
	Create          string
	ExistsForVisite string
	ListByVisite    string
}

// colonnes clinique/prescripteur héritées, par sous-domaine
var legacyColumns = map[dto.SousDomaine]struct {
	table        string
	clinique     string
	prescripteur string
}{
	dto.SousDomaineObstetrique:   {"dossiers_obstetrique", "obst_id_clinique", "obst_id_prescripteur"},
	dto.SousDomainePlanification: {"dossiers_planification", "pf_id_clinique", "pf_id_prescripteur"},
	dto.SousDomaineIST:           {"dossiers_ist", "ist_id_clinique", "ist_id_prescripteur"},
	dto.SousDomaineVIH:           {"dossiers_vih", "vih_id_clinique", "vih_id_prescripteur"},
	dto.SousDomaineViolences:     {"dossiers_violences", "mdg_id_clinique", "mdg_id_prescripteur"},
}

// DossierQueries requêtes par sous-domaine, construites une fois au chargement
var DossierQueries = buildDossierQueries()

func buildDossierQueries() map[dto.SousDomaine]DossierSQL {
	queries := make(map[dto.SousDomaine]DossierSQL, len(legacyColumns))
	for domaine, cols := range legacyColumns {
		queries[domaine] = DossierSQL{
			/**
			 * Paramètres: $1 = visite_id, $2 = patient_id, $3 = clinique_id,
			 *             $4 = prescripteur_id, $5 = donnees (jsonb)
			 */
			Create: fmt.Sprintf(`
				INSERT INTO %s (visite_id, patient_id, %s, %s, donnees)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, visite_id, patient_id, %s AS clinique_id, %s AS prescripteur_id, donnees, created_at, updated_at
			`, cols.table, cols.clinique, cols.prescripteur, cols.clinique, cols.prescripteur),

			/**
			 * Paramètres: $1 = visite_id
			 */
			ExistsForVisite: fmt.Sprintf(`
				SELECT EXISTS(SELECT 1 FROM %s WHERE visite_id = $1)
			`, cols.table),

			/**
			 * Paramètres: $1 = visite_id
			 */
			ListByVisite: fmt.Sprintf(`
				SELECT id, visite_id, patient_id, %s AS clinique_id, %s AS prescripteur_id, donnees, created_at, updated_at
				FROM %s
				WHERE visite_id = $1
			`, cols.clinique, cols.prescripteur, cols.table),
		}
	}
	return queries
}
