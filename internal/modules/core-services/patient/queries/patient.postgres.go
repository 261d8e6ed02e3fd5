package queries

// PatientQueries regroupe toutes les requêtes SQL pour la gestion des patients
var PatientQueries = struct {
	Create           string
	GetByID          string
	GetByCode        string
	SearchByClinique string
	Search           string
	Update           string
	Delete           string
}{
	/**
	 * Crée un patient (le code patient est généré en amont)
	 * Paramètres: $1 = clinique_id, $2 = code_patient, $3 = nom, $4 = prenoms,
	 *             $5 = sexe, $6 = date_naissance, $7 = telephone
	 */
	Create: `
		INSERT INTO patients (clinique_id, code_patient, nom, prenoms, sexe, date_naissance, telephone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, clinique_id, code_patient, nom, prenoms, sexe, date_naissance, telephone, created_at, updated_at
	`,

	/**
	 * Récupère un patient par identifiant
	 * Paramètres: $1 = patient_id
	 */
	GetByID: `
		SELECT id, clinique_id, code_patient, nom, prenoms, sexe, date_naissance, telephone, created_at, updated_at
		FROM patients
		WHERE id = $1
	`,

	/**
	 * Récupère un patient par code patient
	 * Paramètres: $1 = code_patient
	 */
	GetByCode: `
		SELECT id, clinique_id, code_patient, nom, prenoms, sexe, date_naissance, telephone, created_at, updated_at
		FROM patients
		WHERE code_patient = $1
	`,

	/**
	 * Recherche par nom/prénoms/code dans une clinique (trigramme)
	 * Paramètres: $1 = clinique_id, $2 = terme, $3 = limit
	 */
	SearchByClinique: `
		SELECT id, clinique_id, code_patient, nom, prenoms, sexe, date_naissance, telephone, created_at, updated_at
		FROM patients
		WHERE clinique_id = $1
		  AND (nom ILIKE '%' || $2 || '%'
		    OR prenoms ILIKE '%' || $2 || '%'
		    OR code_patient ILIKE '%' || $2 || '%')
		ORDER BY nom, prenoms
		LIMIT $3
	`,

	/**
	 * Recherche sur tout le réseau
	 * Paramètres: $1 = terme, $2 = limit
	 */
	Search: `
		SELECT id, clinique_id, code_patient, nom, prenoms, sexe, date_naissance, telephone, created_at, updated_at
		FROM patients
		WHERE nom ILIKE '%' || $1 || '%'
		   OR prenoms ILIKE '%' || $1 || '%'
		   OR code_patient ILIKE '%' || $1 || '%'
		ORDER BY nom, prenoms
		LIMIT $2
	`,

	/**
	 * Mise à jour administrative (COALESCE conserve les champs non fournis)
	 * Paramètres: $1 = patient_id, $2 = nom, $3 = prenoms, $4 = telephone, $5 = date_naissance
	 */
	Update: `
		UPDATE patients
		SET
			nom = COALESCE($2, nom),
			prenoms = COALESCE($3, prenoms),
			telephone = COALESCE($4, telephone),
			date_naissance = COALESCE($5, date_naissance),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, clinique_id, code_patient, nom, prenoms, sexe, date_naissance, telephone, created_at, updated_at
	`,

	/**
	 * Suppression administrative (échappatoire ADMIN, jamais utilisée en routine)
	 * Paramètres: $1 = patient_id
	 */
	Delete: `
		DELETE FROM patients
		WHERE id = $1
	`,
}
