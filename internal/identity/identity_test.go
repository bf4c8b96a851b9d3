package identity

import (
	"testing"

	"fleet-management-api/internal/models"
	"fleet-management-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestNextSequenceID(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	id, err := NextSequenceID(db, &models.FleetTask{})
	require.NoError(t, err)
	require.Equal(t, 1, id)

	require.NoError(t, db.Create(&models.FleetTask{ID: 41}).Error)
	id, err = NextSequenceID(db, &models.FleetTask{})
	require.NoError(t, err)
	require.Equal(t, 42, id)
}

func TestNextSequenceID_PerCollection(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Company{ID: 9, Name: "Acme", TenantCode: "ACME"}).Error)

	// Each collection keeps an independent sequence.
	companyID, err := NextSequenceID(db, &models.Company{})
	require.NoError(t, err)
	require.Equal(t, 10, companyID)

	driverID, err := NextSequenceID(db, &models.Driver{})
	require.NoError(t, err)
	require.Equal(t, 1, driverID)
}

func TestNewTaskID_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := NewTaskID()
		require.GreaterOrEqual(t, id, 10000)
		require.Less(t, id, 100000)
	}
}
