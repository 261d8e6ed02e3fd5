package dto

import (
	"testing"

	"github.com/stretchr/testify/require"

	authdto "ecmis-core/internal/modules/auth/dto"
)

func TestSousDomaineTableName(t *testing.T) {
	cases := map[SousDomaine]authdto.TableName{
		SousDomaineObstetrique:   authdto.TableObstetrique,
		SousDomainePlanification: authdto.TablePlanification,
		SousDomaineIST:           authdto.TableIST,
		SousDomaineVIH:           authdto.TableVIH,
		SousDomaineViolences:     authdto.TableViolences,
	}
	for domaine, table := range cases {
		require.Equal(t, table, domaine.TableName())
	}
}

func TestSousDomaineIsValid(t *testing.T) {
	for _, domaine := range SousDomaines {
		require.True(t, domaine.IsValid())
		require.NotEmpty(t, domaine.Libelle())
	}
	require.False(t, SousDomaine("cardiologie").IsValid())
}
