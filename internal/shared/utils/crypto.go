package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost coût de hachage des mots de passe utilisateurs
const bcryptCost = 12

// HashPassword hash un mot de passe avec bcrypt
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("mot de passe vide")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("impossible de hasher le mot de passe: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyPassword vérifie un mot de passe contre un hash bcrypt
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// ValidatePasswordStrength vérifie la longueur minimale du mot de passe
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("mot de passe trop court: minimum 8 caractères")
	}
	// bcrypt tronque silencieusement au-delà de 72 bytes
	if len(password) > 72 {
		return fmt.Errorf("mot de passe trop long: maximum 72 caractères")
	}
	return nil
}
