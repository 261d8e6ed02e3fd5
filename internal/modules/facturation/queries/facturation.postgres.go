package queries

import (
	"fmt"

	"ecmis-core/internal/modules/facturation/dto"
)

// DemandeQueries regroupe les requêtes SQL des demandes d'actes
var DemandeQueries = struct {
	Create       string
	GetByID      string
	ListByVisite string
	SetStatut    string
}{
	/**
	 * Crée une demande d'acte
	 * Paramètres: $1 = visite_id, $2 = patient_id, $3 = clinique_id,
	 *             $4 = type_demande, $5 = tarif_id, $6 = created_by
	 */
	Create: `
		INSERT INTO demandes (visite_id, patient_id, clinique_id, type_demande, tarif_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, visite_id, patient_id, clinique_id, type_demande, tarif_id, statut, created_by, created_at, updated_at
	`,

	/**
	 * Récupère une demande par identifiant
	 * Paramètres: $1 = demande_id
	 */
	GetByID: `
		SELECT id, visite_id, patient_id, clinique_id, type_demande, tarif_id, statut, created_by, created_at, updated_at
		FROM demandes
		WHERE id = $1
	`,

	/**
	 * Liste les demandes d'une visite
	 * Paramètres: $1 = visite_id
	 */
	ListByVisite: `
		SELECT id, visite_id, patient_id, clinique_id, type_demande, tarif_id, statut, created_by, created_at, updated_at
		FROM demandes
		WHERE visite_id = $1
		ORDER BY created_at
	`,

	/**
	 * Change le statut d'une demande si elle est encore en attente
	 * Paramètres: $1 = demande_id, $2 = nouveau_statut
	 */
	SetStatut: `
		UPDATE demandes
		SET statut = $2, updated_at = NOW()
		WHERE id = $1 AND statut = 'EN_ATTENTE'
		RETURNING id
	`,
}

// tables et préfixes de colonnes hérités, par type facturable
var legacyBilling = map[dto.TypeDemande]struct {
	tarifTable   string
	factureTable string
	clinique     string
	user         string
}{
	dto.TypeExamen:      {"tarifs_examens", "factures_examens", "exam_id_clinique", "exam_id_user"},
	dto.TypeEchographie: {"tarifs_echographies", "factures_echographies", "echo_id_clinique", "echo_id_user"},
	dto.TypeProduit:     {"tarifs_produits", "factures_produits", "prod_id_clinique", "prod_id_user"},
	dto.TypePrestation:  {"tarifs_prestations", "factures_prestations", "prest_id_clinique", "prest_id_user"},
}

// BillingSQL requêtes d'un type facturable. Les SELECT aliasent les colonnes
// héritées vers des noms normalisés, comme pour les dossiers.
type BillingSQL struct {
	ListTarifs    string
	GetTarifByID  string
	CreateFacture string
	ListFactures  string
}

// BillingQueries requêtes par type facturable, construites au chargement
var BillingQueries = buildBillingQueries()

func buildBillingQueries() map[dto.TypeDemande]BillingSQL {
	queries := make(map[dto.TypeDemande]BillingSQL, len(legacyBilling))
	for typeDemande, cols := range legacyBilling {
		queries[typeDemande] = BillingSQL{
			ListTarifs: fmt.Sprintf(`
				SELECT id, code, libelle, prix, est_actif, created_at
				FROM %s
				WHERE est_actif = TRUE
				ORDER BY libelle
			`, cols.tarifTable),

			/**
			 * Paramètres: $1 = tarif_id
			 */
			GetTarifByID: fmt.Sprintf(`
				SELECT id, code, libelle, prix, est_actif, created_at
				FROM %s
				WHERE id = $1
			`, cols.tarifTable),

			/**
			 * Paramètres: $1 = demande_id, $2 = visite_id, $3 = patient_id,
			 *             $4 = clinique_id, $5 = user_id, $6 = libelle, $7 = prix, $8 = remise
			 */
			CreateFacture: fmt.Sprintf(`
				INSERT INTO %s (demande_id, visite_id, patient_id, %s, %s, libelle, prix, remise)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id, demande_id, visite_id, patient_id, %s AS clinique_id, %s AS user_id, libelle, prix, remise, created_at
			`, cols.factureTable, cols.clinique, cols.user, cols.clinique, cols.user),

			/**
			 * Paramètres: $1 = visite_id
			 */
			ListFactures: fmt.Sprintf(`
				SELECT id, demande_id, visite_id, patient_id, %s AS clinique_id, %s AS user_id, libelle, prix, remise, created_at
				FROM %s
				WHERE visite_id = $1
				ORDER BY created_at
			`, cols.clinique, cols.user, cols.factureTable),
		}
	}
	return queries
}
