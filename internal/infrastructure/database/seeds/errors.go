package seeds

import "fmt"

// SeedError erreur typée du seeding avec le domaine concerné
type SeedError struct {
	Domain  string
	Message string
	Cause   error
}

func NewSeedError(domain, message string, cause error) *SeedError {
	return &SeedError{
		Domain:  domain,
		Message: message,
		Cause:   cause,
	}
}

func (e *SeedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("seed %s: %s: %v", e.Domain, e.Message, e.Cause)
	}
	return fmt.Sprintf("seed %s: %s", e.Domain, e.Message)
}

func (e *SeedError) Unwrap() error {
	return e.Cause
}
