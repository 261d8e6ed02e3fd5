package queries

// UtilisateurQueries regroupe toutes les requêtes SQL pour la gestion des comptes
var UtilisateurQueries = struct {
	Create                       string
	GetByID                      string
	ListAll                      string
	Update                       string
	AddCliniqueMembership        string
	ClearCliniqueMemberships     string
	GetCliniqueMemberships       string
	ListPrescripteursByCliniques string
}{
	/**
	 * Crée un compte utilisateur
	 * Paramètres: $1 = identifiant, $2 = nom, $3 = prenoms, $4 = password_hash,
	 *             $5 = role, $6 = est_prescripteur
	 */
	Create: `
		INSERT INTO utilisateurs (identifiant, nom, prenoms, password_hash, role, est_prescripteur)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, identifiant, nom, prenoms, role, est_prescripteur, statut, created_at, updated_at
	`,

	/**
	 * Récupère un utilisateur par identifiant technique
	 * Paramètres: $1 = utilisateur_id
	 */
	GetByID: `
		SELECT id, identifiant, nom, prenoms, role, est_prescripteur, statut, created_at, updated_at
		FROM utilisateurs
		WHERE id = $1
	`,

	/**
	 * Liste tous les comptes (administration)
	 */
	ListAll: `
		SELECT id, identifiant, nom, prenoms, role, est_prescripteur, statut, created_at, updated_at
		FROM utilisateurs
		ORDER BY nom, prenoms
	`,

	/**
	 * Mise à jour partielle d'un compte
	 * Paramètres: $1 = utilisateur_id, $2 = nom, $3 = prenoms,
	 *             $4 = est_prescripteur, $5 = statut
	 */
	Update: `
		UPDATE utilisateurs
		SET
			nom = COALESCE($2, nom),
			prenoms = COALESCE($3, prenoms),
			est_prescripteur = COALESCE($4, est_prescripteur),
			statut = COALESCE($5, statut),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, identifiant, nom, prenoms, role, est_prescripteur, statut, created_at, updated_at
	`,

	/**
	 * Rattache un utilisateur à une clinique
	 * Paramètres: $1 = utilisateur_id, $2 = clinique_id
	 */
	AddCliniqueMembership: `
		INSERT INTO utilisateurs_cliniques (utilisateur_id, clinique_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`,

	/**
	 * Supprime tous les rattachements d'un utilisateur (avant réécriture)
	 * Paramètres: $1 = utilisateur_id
	 */
	ClearCliniqueMemberships: `
		DELETE FROM utilisateurs_cliniques
		WHERE utilisateur_id = $1
	`,

	/**
	 * Liste les cliniques d'un utilisateur
	 * Paramètres: $1 = utilisateur_id
	 */
	GetCliniqueMemberships: `
		SELECT clinique_id
		FROM utilisateurs_cliniques
		WHERE utilisateur_id = $1
	`,

	/**
	 * Liste les prescripteurs actifs rattachés à un ensemble de cliniques.
	 * Alimente l'ensemble des prescripteurs valides du reporting.
	 * Paramètres: $1 = clinique_ids (uuid[])
	 */
	ListPrescripteursByCliniques: `
		SELECT DISTINCT u.id, u.identifiant, u.nom, u.prenoms, u.role, u.est_prescripteur, u.statut, u.created_at, u.updated_at
		FROM utilisateurs u
		JOIN utilisateurs_cliniques uc ON uc.utilisateur_id = u.id
		WHERE uc.clinique_id = ANY($1)
		  AND u.est_prescripteur = TRUE
		  AND u.statut = 'actif'
	`,
}
