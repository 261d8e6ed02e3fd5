package queries

// PermissionQueries regroupe les requêtes SQL de la matrice de permissions
var PermissionQueries = struct {
	GetPermission   string
	ListByUser      string
	UpsertPermission string
	DeletePermission string
}{
	/**
	 * Récupère la ligne de permission d'un utilisateur pour une table
	 * Paramètres: $1 = utilisateur_id, $2 = table_name
	 */
	GetPermission: `
		SELECT id, utilisateur_id, table_name,
		       peut_creer, peut_lire, peut_modifier, peut_supprimer,
		       updated_at
		FROM permissions
		WHERE utilisateur_id = $1 AND table_name = $2
	`,

	/**
	 * Liste toutes les lignes de permission d'un utilisateur
	 * Paramètres: $1 = utilisateur_id
	 */
	ListByUser: `
		SELECT id, utilisateur_id, table_name,
		       peut_creer, peut_lire, peut_modifier, peut_supprimer,
		       updated_at
		FROM permissions
		WHERE utilisateur_id = $1
		ORDER BY table_name
	`,

	/**
	 * Crée ou met à jour une ligne de la matrice
	 * Paramètres: $1 = utilisateur_id, $2 = table_name,
	 *             $3..$6 = peut_creer, peut_lire, peut_modifier, peut_supprimer
	 */
	UpsertPermission: `
		INSERT INTO permissions (utilisateur_id, table_name, peut_creer, peut_lire, peut_modifier, peut_supprimer)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (utilisateur_id, table_name)
		DO UPDATE SET
			peut_creer     = EXCLUDED.peut_creer,
			peut_lire      = EXCLUDED.peut_lire,
			peut_modifier  = EXCLUDED.peut_modifier,
			peut_supprimer = EXCLUDED.peut_supprimer,
			updated_at     = NOW()
		RETURNING id, utilisateur_id, table_name, peut_creer, peut_lire, peut_modifier, peut_supprimer, updated_at
	`,

	/**
	 * Supprime une ligne de la matrice
	 * Paramètres: $1 = utilisateur_id, $2 = table_name
	 */
	DeletePermission: `
		DELETE FROM permissions
		WHERE utilisateur_id = $1 AND table_name = $2
	`,
}
