package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ecmis-core/internal/modules/core-services/patient/dto"
)

func TestIncrementSequence(t *testing.T) {
	s := &PatientCodeGeneratorService{}

	numero, suffixe, err := s.incrementSequence(1, "AAA")
	require.NoError(t, err)
	require.Equal(t, 2, numero)
	require.Equal(t, "AAA", suffixe)
}

func TestIncrementSequenceRollover(t *testing.T) {
	s := &PatientCodeGeneratorService{}

	// 999 -> retour à 1 avec suffixe suivant
	numero, suffixe, err := s.incrementSequence(999, "AAA")
	require.NoError(t, err)
	require.Equal(t, 1, numero)
	require.Equal(t, "AAB", suffixe)
}

func TestNextSuffixCarry(t *testing.T) {
	s := &PatientCodeGeneratorService{}

	cases := map[string]string{
		"AAA": "AAB",
		"AAZ": "ABA",
		"AZZ": "BAA",
		"ZZY": "ZZZ",
	}
	for current, expected := range cases {
		next, err := s.nextSuffix(current)
		require.NoError(t, err)
		require.Equal(t, expected, next)
	}
}

func TestNextSuffixCapacityExhausted(t *testing.T) {
	s := &PatientCodeGeneratorService{}

	_, err := s.nextSuffix("ZZZ")
	require.Error(t, err)

	var codeErr *dto.CodeGenerationError
	require.True(t, errors.As(err, &codeErr))
	require.Equal(t, dto.ErrCodeCapaciteMaximale, codeErr.Code)
}

func TestValidateCliniqueCode(t *testing.T) {
	s := &PatientCodeGeneratorService{}

	require.NoError(t, s.validateCliniqueCode("CENTREA"))
	require.Error(t, s.validateCliniqueCode(""))
	require.Error(t, s.validateCliniqueCode("   "))
	require.Error(t, s.validateCliniqueCode("UNCODEBEAUCOUPTROPLONGPOURPASSER"))
}
