package driver_test

import (
	"testing"

	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenantID(t *testing.T) kernel.TenantID {
	t.Helper()
	id, err := kernel.NewTenantID("t1")
	require.NoError(t, err)
	return id
}

func TestNewDriver(t *testing.T) {
	t.Run("valid driver starts offline with no position", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), tenantID(t), "Carlos")
		require.NoError(t, err)
		require.NoError(t, d.Validate())

		assert.Equal(t, driver.StatusOffline, d.Status())
		assert.False(t, d.HasCoordinate())
		assert.Nil(t, d.Coordinate())
		assert.False(t, d.IsAvailable())
	})

	t.Run("validation failures", func(t *testing.T) {
		_, err := driver.NewDriver(kernel.UUID{}, tenantID(t), "Carlos")
		require.Error(t, err)

		_, err = driver.NewDriver(kernel.NewUUID(), kernel.TenantID{}, "Carlos")
		require.Error(t, err)

		_, err = driver.NewDriver(kernel.NewUUID(), tenantID(t), "")
		require.ErrorIs(t, err, driver.ErrNameIsRequired)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var d driver.Driver
		require.ErrorIs(t, d.Validate(), driver.ErrDriverIsNotConstructed)
	})
}

func TestDriver_ShiftTransitions(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), tenantID(t), "Carlos")
	require.NoError(t, err)

	d.MarkAvailable()
	assert.Equal(t, driver.StatusAvailable, d.Status())
	assert.True(t, d.IsAvailable())

	d.MarkBusy()
	assert.Equal(t, driver.StatusBusy, d.Status())
	assert.False(t, d.IsAvailable())

	d.MarkOffline()
	assert.Equal(t, driver.StatusOffline, d.Status())
}

func TestDriver_SetCoordinate(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), tenantID(t), "Carlos")
	require.NoError(t, err)

	coord, err := kernel.NewCoordinate(-23.5505, -46.6333)
	require.NoError(t, err)

	require.NoError(t, d.SetCoordinate(coord))
	require.True(t, d.HasCoordinate())
	equal, err := d.Coordinate().IsEqual(coord)
	require.NoError(t, err)
	assert.True(t, equal)

	require.Error(t, d.SetCoordinate(kernel.Coordinate{}))
}

func TestRestoreDriver(t *testing.T) {
	id := kernel.NewUUID()
	coord, err := kernel.NewCoordinate(-23.5505, -46.6333)
	require.NoError(t, err)

	d, err := driver.RestoreDriver(id, tenantID(t), "Carlos", driver.StatusBusy, &coord)
	require.NoError(t, err)

	assert.True(t, d.ID().IsEqual(id))
	assert.Equal(t, driver.StatusBusy, d.Status())
	require.True(t, d.HasCoordinate())

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, restoreErr := driver.RestoreDriver(id, tenantID(t), "Carlos", driver.StatusUnknown, nil)
		require.Error(t, restoreErr)
	})
}

func TestDriverStatus_Strings(t *testing.T) {
	assert.Equal(t, "available", driver.StatusAvailable.String())
	assert.Equal(t, "busy", driver.StatusBusy.String())
	assert.Equal(t, "offline", driver.StatusOffline.String())
	assert.Equal(t, "unknown", driver.StatusUnknown.String())

	parsed, err := driver.StatusFromString("busy")
	require.NoError(t, err)
	assert.Equal(t, driver.StatusBusy, parsed)

	_, err = driver.StatusFromString("sleeping")
	require.Error(t, err)
}
