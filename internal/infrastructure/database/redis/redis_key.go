package redis

import (
	"fmt"
	"regexp"
	"strings"
)

// KeyGenerator génère et valide les clés Redis selon les conventions eCMIS
// Pattern: ecmis_{code_clinique}_{domain}_{context}:{identifier}
type KeyGenerator struct {
	environment string
}

func NewKeyGenerator(environment string) *KeyGenerator {
	return &KeyGenerator{environment: environment}
}

// KeyPattern définit les patterns standards des clés
type KeyPattern struct {
	Domain  string // sequence, cache, etc.
	Context string // patient, lock, etc.
	TTL     int    // TTL en secondes, 0 = pas d'expiration
}

// Patterns réellement implémentés dans l'application
var KeyPatterns = map[string]KeyPattern{
	// Séquence de codes patient par clinique/année
	"patient_sequence":      {Domain: "sequence", Context: "patient", TTL: 0},
	"patient_sequence_lock": {Domain: "sequence", Context: "patient_lock", TTL: 5},
}

var cliniqueCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{2,20}$`)

// GenerateKey construit une clé selon la convention ecmis_{clinique}_{domain}_{context}:{identifier}
func (kg *KeyGenerator) GenerateKey(patternName, codeClinique string, identifier ...string) (string, error) {
	pattern, exists := KeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	if codeClinique == "" {
		return "", fmt.Errorf("code clinique requis pour la génération de clé")
	}
	if !cliniqueCodePattern.MatchString(codeClinique) {
		return "", fmt.Errorf("code clinique invalide: %s", codeClinique)
	}

	prefix := fmt.Sprintf("ecmis_%s_%s_%s", codeClinique, pattern.Domain, pattern.Context)

	if len(identifier) > 0 {
		return fmt.Sprintf("%s:%s", prefix, strings.Join(identifier, "_")), nil
	}

	return prefix, nil
}

// PatientSequenceKey clé de la séquence de codes patient d'une clinique pour une année
func (kg *KeyGenerator) PatientSequenceKey(codeClinique string, annee int) string {
	key, err := kg.GenerateKey("patient_sequence", codeClinique, fmt.Sprintf("%d", annee))
	if err != nil {
		// Clé de repli sans validation, utilisée uniquement si le code clinique est hors convention
		return fmt.Sprintf("ecmis_%s_sequence_patient:%d", codeClinique, annee)
	}
	return key
}

// PatientSequenceLockKey clé de lock distribué protégeant l'incrément de séquence
func (kg *KeyGenerator) PatientSequenceLockKey(codeClinique string, annee int) string {
	key, err := kg.GenerateKey("patient_sequence_lock", codeClinique, fmt.Sprintf("%d", annee))
	if err != nil {
		return fmt.Sprintf("ecmis_%s_sequence_patient_lock:%d", codeClinique, annee)
	}
	return key
}

// GetTTL récupère le TTL (secondes) d'un pattern
func (kg *KeyGenerator) GetTTL(patternName string) (int, error) {
	pattern, exists := KeyPatterns[patternName]
	if !exists {
		return 0, fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return pattern.TTL, nil
}
