package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListingRequestToScope(t *testing.T) {
	debut := "2024-01-01"
	fin := "2024-01-31"

	scope, err := ListingRequest{
		CliniqueIDs: []string{"clinique-a"},
		DateDebut:   &debut,
		DateFin:     &fin,
		ActiviteIDs: []string{"activite-1"},
	}.ToScope()

	require.NoError(t, err)
	require.Equal(t, []string{"clinique-a"}, scope.CliniqueIDs)
	require.Equal(t, []string{"activite-1"}, scope.ActiviteIDs)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *scope.Periode.Debut)
	require.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *scope.Periode.Fin)
}

func TestListingRequestToScopeOpenBounds(t *testing.T) {
	scope, err := ListingRequest{CliniqueIDs: []string{"clinique-a"}}.ToScope()

	require.NoError(t, err)
	require.Nil(t, scope.Periode.Debut)
	require.Nil(t, scope.Periode.Fin)
}

func TestListingRequestToScopeInvalidDate(t *testing.T) {
	mauvaise := "15/01/2024"
	_, err := ListingRequest{
		CliniqueIDs: []string{"clinique-a"},
		DateDebut:   &mauvaise,
	}.ToScope()

	require.Error(t, err)
}
