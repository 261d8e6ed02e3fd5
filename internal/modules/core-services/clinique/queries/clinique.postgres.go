package queries

// CliniqueQueries regroupe toutes les requêtes SQL pour les données de référence cliniques
var CliniqueQueries = struct {
	GetByID   string
	GetByCode string
	ListAll   string
	ListByIDs string
}{
	/**
	 * Récupère une clinique par identifiant
	 * Paramètres: $1 = clinique_id
	 */
	GetByID: `
		SELECT id, nom, code_region, code_clinique, created_at
		FROM cliniques
		WHERE id = $1
	`,

	/**
	 * Récupère une clinique par code
	 * Paramètres: $1 = code_clinique
	 */
	GetByCode: `
		SELECT id, nom, code_region, code_clinique, created_at
		FROM cliniques
		WHERE code_clinique = $1
	`,

	/**
	 * Liste toutes les cliniques du réseau
	 */
	ListAll: `
		SELECT id, nom, code_region, code_clinique, created_at
		FROM cliniques
		ORDER BY nom
	`,

	/**
	 * Liste les cliniques d'un ensemble d'identifiants
	 * Paramètres: $1 = clinique_ids (uuid[])
	 */
	ListByIDs: `
		SELECT id, nom, code_region, code_clinique, created_at
		FROM cliniques
		WHERE id = ANY($1)
	`,
}
