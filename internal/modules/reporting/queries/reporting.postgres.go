package queries

import (
	"fmt"

	dossierdto "ecmis-core/internal/modules/dossiers/dto"
	facturationdto "ecmis-core/internal/modules/facturation/dto"
)

// ScopeQueries requêtes de résolution du périmètre
var ScopeQueries = struct {
	ListVisitesInScope string
}{
	/**
	 * Visites du périmètre : cliniques × période inclusive × activités optionnelles.
	 * Une borne NULL est ouverte ; un tableau d'activités NULL désactive le filtre.
	 * Paramètres: $1 = clinique_ids (uuid[]), $2 = date_debut, $3 = date_fin,
	 *             $4 = activite_ids (uuid[] ou NULL)
	 */
	ListVisitesInScope: `
		SELECT v.id, v.patient_id, v.clinique_id, v.date_visite
		FROM visites v
		WHERE v.clinique_id = ANY($1)
		  AND ($2::date IS NULL OR v.date_visite >= $2)
		  AND ($3::date IS NULL OR v.date_visite <= $3)
		  AND ($4::uuid[] IS NULL OR v.activite_id = ANY($4))
		ORDER BY v.date_visite
	`,
}

// colonnes héritées des tables de dossiers, reprises du module dossiers
var dossierLegacy = map[dossierdto.SousDomaine]struct {
	table        string
	clinique     string
	prescripteur string
}{
	dossierdto.SousDomaineObstetrique:   {"dossiers_obstetrique", "obst_id_clinique", "obst_id_prescripteur"},
	dossierdto.SousDomainePlanification: {"dossiers_planification", "pf_id_clinique", "pf_id_prescripteur"},
	dossierdto.SousDomaineIST:           {"dossiers_ist", "ist_id_clinique", "ist_id_prescripteur"},
	dossierdto.SousDomaineVIH:           {"dossiers_vih", "vih_id_clinique", "vih_id_prescripteur"},
	dossierdto.SousDomaineViolences:     {"dossiers_violences", "mdg_id_clinique", "mdg_id_prescripteur"},
}

// DossierJoinQueries requêtes jointes par sous-domaine : dossier + visite +
// patient + clinique. La clinique est jointe en LEFT JOIN, une référence
// absente donne un nom NULL résolu en sentinelle à la lecture.
var DossierJoinQueries = buildDossierJoinQueries()

func buildDossierJoinQueries() map[dossierdto.SousDomaine]string {
	queries := make(map[dossierdto.SousDomaine]string, len(dossierLegacy))
	for domaine, cols := range dossierLegacy {
		/**
		 * Paramètres: $1 = clinique_ids (uuid[]), $2 = date_debut, $3 = date_fin,
		 *             $4 = activite_ids (uuid[] ou NULL)
		 */
		queries[domaine] = fmt.Sprintf(`
			SELECT
				d.id,
				d.visite_id,
				d.patient_id,
				p.nom,
				p.prenoms,
				p.code_patient,
				d.%s AS clinique_id,
				c.nom AS clinique_nom,
				d.%s AS prescripteur_id,
				v.date_visite,
				d.donnees
			FROM %s d
			JOIN visites v ON v.id = d.visite_id
			JOIN patients p ON p.id = d.patient_id
			LEFT JOIN cliniques c ON c.id = d.%s
			WHERE d.%s = ANY($1)
			  AND ($2::date IS NULL OR v.date_visite >= $2)
			  AND ($3::date IS NULL OR v.date_visite <= $3)
			  AND ($4::uuid[] IS NULL OR v.activite_id = ANY($4))
			ORDER BY v.date_visite, d.id
		`, cols.clinique, cols.prescripteur, cols.table, cols.clinique, cols.clinique)
	}
	return queries
}

// colonnes héritées des tables de factures
var billingLegacy = map[facturationdto.TypeDemande]struct {
	table    string
	clinique string
	user     string
}{
	facturationdto.TypeExamen:      {"factures_examens", "exam_id_clinique", "exam_id_user"},
	facturationdto.TypeEchographie: {"factures_echographies", "echo_id_clinique", "echo_id_user"},
	facturationdto.TypeProduit:     {"factures_produits", "prod_id_clinique", "prod_id_user"},
	facturationdto.TypePrestation:  {"factures_prestations", "prest_id_clinique", "prest_id_user"},
}

// BillingJoinQueries requêtes jointes par type facturable
var BillingJoinQueries = buildBillingJoinQueries()

func buildBillingJoinQueries() map[facturationdto.TypeDemande]string {
	queries := make(map[facturationdto.TypeDemande]string, len(billingLegacy))
	for typeDemande, cols := range billingLegacy {
		/**
		 * Paramètres: $1 = clinique_ids (uuid[]), $2 = date_debut, $3 = date_fin,
		 *             $4 = activite_ids (uuid[] ou NULL)
		 */
		queries[typeDemande] = fmt.Sprintf(`
			SELECT
				f.id,
				f.demande_id,
				f.visite_id,
				f.patient_id,
				p.nom,
				p.prenoms,
				p.code_patient,
				f.%s AS clinique_id,
				c.nom AS clinique_nom,
				f.%s AS user_id,
				f.libelle,
				f.prix,
				f.remise,
				v.date_visite
			FROM %s f
			JOIN visites v ON v.id = f.visite_id
			JOIN patients p ON p.id = f.patient_id
			LEFT JOIN cliniques c ON c.id = f.%s
			WHERE f.%s = ANY($1)
			  AND ($2::date IS NULL OR v.date_visite >= $2)
			  AND ($3::date IS NULL OR v.date_visite <= $3)
			  AND ($4::uuid[] IS NULL OR v.activite_id = ANY($4))
			ORDER BY v.date_visite, f.id
		`, cols.clinique, cols.user, cols.table, cols.clinique, cols.clinique)
	}
	return queries
}
