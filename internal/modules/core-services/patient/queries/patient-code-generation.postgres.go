package queries

// PatientCodeGenerationQueries regroupe toutes les requêtes SQL pour la génération de codes patient
var PatientCodeGenerationQueries = struct {
	GetSequenceState              string
	GenerateNextCodeFromPostgres  string
	UpdateSequenceAfterGeneration string
}{
	/**
	 * Récupère l'état actuel de la séquence pour une clinique/année
	 * Paramètres: $1 = clinique_code, $2 = annee
	 * Retour: dernier_numero, dernier_suffixe, nombre_generes
	 */
	GetSequenceState: `
		SELECT
			dernier_numero,
			dernier_suffixe,
			nombre_generes
		FROM patients_code_sequences
		WHERE clinique_code = $1 AND annee = $2
	`,

	/**
	 * Génère le prochain code patient de manière atomique
	 * UPSERT : initialisation + incrémentation en une seule opération
	 * Paramètres: $1 = clinique_code, $2 = annee
	 * Retour: nouveau_numero, nouveau_suffixe, nombre_total_generes
	 */
	GenerateNextCodeFromPostgres: `
		INSERT INTO patients_code_sequences (clinique_code, annee, dernier_numero, dernier_suffixe, nombre_generes)
		VALUES ($1, $2, 1, 'AAA', 1)
		ON CONFLICT (clinique_code, annee)
		DO UPDATE SET
			dernier_numero = CASE
				WHEN patients_code_sequences.dernier_numero = 999 THEN 1
				ELSE patients_code_sequences.dernier_numero + 1
			END,
			dernier_suffixe = CASE
				WHEN patients_code_sequences.dernier_numero = 999
				THEN next_alpha_suffix(patients_code_sequences.dernier_suffixe)
				ELSE patients_code_sequences.dernier_suffixe
			END,
			nombre_generes = patients_code_sequences.nombre_generes + 1,
			updated_at = NOW()
		RETURNING dernier_numero, dernier_suffixe, nombre_generes
	`,

	/**
	 * Met à jour la séquence après génération Redis (synchronisation)
	 * Paramètres: $1 = clinique_code, $2 = annee, $3 = nouveau_numero, $4 = nouveau_suffixe
	 */
	UpdateSequenceAfterGeneration: `
		UPDATE patients_code_sequences
		SET
			dernier_numero = $3,
			dernier_suffixe = $4,
			nombre_generes = nombre_generes + 1,
			updated_at = NOW()
		WHERE clinique_code = $1 AND annee = $2
		RETURNING dernier_numero, dernier_suffixe, nombre_generes
	`,
}
