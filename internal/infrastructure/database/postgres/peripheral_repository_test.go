package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-verification-portal/internal/domain/peripheral"
)

func seedStock(t *testing.T, repo *PeripheralRepository, pType peripheral.PeripheralType, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Create(context.Background(), &peripheral.Peripheral{
			Type:     pType,
			Location: "HQ",
		}))
	}
}

func TestAssignFromStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewPeripheralRepository(db)
	ctx := context.Background()

	seedStock(t, repo, peripheral.TypeCharger, 2)

	first, err := repo.AssignFromStock(ctx, peripheral.TypeCharger, "EMP001", "Alice Nguyen")
	require.NoError(t, err)
	assert.Equal(t, peripheral.StatusAssigned, first.Status)
	require.NotNil(t, first.AssignedTo)
	assert.Equal(t, "EMP001", *first.AssignedTo)

	second, err := repo.AssignFromStock(ctx, peripheral.TypeCharger, "EMP002", "Bob Tran")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = repo.AssignFromStock(ctx, peripheral.TypeCharger, "EMP003", "Carol Le")
	assert.ErrorIs(t, err, peripheral.ErrOutOfStock)

	count, err := repo.CountInstockByType(ctx, peripheral.TypeCharger)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAssignFromStockWrongType(t *testing.T) {
	db := newTestDB(t)
	repo := NewPeripheralRepository(db)

	seedStock(t, repo, peripheral.TypeMouse, 1)

	_, err := repo.AssignFromStock(context.Background(), peripheral.TypeDock, "EMP001", "Alice Nguyen")
	assert.ErrorIs(t, err, peripheral.ErrOutOfStock)
}

func TestAssignFromStockConcurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPeripheralRepository(db)
	ctx := context.Background()

	const stock = 3
	const callers = 10

	seedStock(t, repo, peripheral.TypeHeadphones, stock)

	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AssignFromStock(ctx, peripheral.TypeHeadphones, "EMP001", "Alice Nguyen")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, outOfStock int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, peripheral.ErrOutOfStock)
		outOfStock++
	}

	assert.Equal(t, stock, succeeded)
	assert.Equal(t, callers-stock, outOfStock)

	count, err := repo.CountInstockByType(ctx, peripheral.TypeHeadphones)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAssignFromStockContentionNeverUnderclaims(t *testing.T) {
	db := newTestDB(t)
	repo := NewPeripheralRepository(db)
	ctx := context.Background()

	// As many callers as units: every caller must win a unit, no matter how
	// many claim races it loses along the way.
	const stock = 8

	seedStock(t, repo, peripheral.TypeDock, stock)

	var wg sync.WaitGroup
	results := make(chan error, stock)

	for i := 0; i < stock; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AssignFromStock(ctx, peripheral.TypeDock, "EMP001", "Alice Nguyen")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	for err := range results {
		require.NoError(t, err)
	}

	count, err := repo.CountInstockByType(ctx, peripheral.TypeDock)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestReturnToStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewPeripheralRepository(db)
	ctx := context.Background()

	seedStock(t, repo, peripheral.TypeKeyboard, 1)

	assigned, err := repo.AssignFromStock(ctx, peripheral.TypeKeyboard, "EMP001", "Alice Nguyen")
	require.NoError(t, err)

	require.NoError(t, repo.ReturnToStock(ctx, assigned.ID))

	returned, err := repo.GetByID(ctx, assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, peripheral.StatusInstock, returned.Status)
	assert.Nil(t, returned.AssignedTo)
	assert.False(t, returned.Verified)

	// Already back in stock, second return is a conflict
	assert.ErrorIs(t, repo.ReturnToStock(ctx, assigned.ID), peripheral.ErrNotAssigned)
}

func TestSetVerified(t *testing.T) {
	db := newTestDB(t)
	repo := NewPeripheralRepository(db)
	ctx := context.Background()

	seedStock(t, repo, peripheral.TypeDock, 2)

	assigned, err := repo.AssignFromStock(ctx, peripheral.TypeDock, "EMP001", "Alice Nguyen")
	require.NoError(t, err)

	require.NoError(t, repo.SetVerified(ctx, nil))

	require.NoError(t, repo.SetVerified(ctx, []uuid.UUID{assigned.ID}))

	verified, err := repo.GetByID(ctx, assigned.ID)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.NotNil(t, verified.VerifiedDate)
}

func TestPeripheralStatistics(t *testing.T) {
	db := newTestDB(t)
	repo := NewPeripheralRepository(db)
	ctx := context.Background()

	seedStock(t, repo, peripheral.TypeCharger, 3)
	seedStock(t, repo, peripheral.TypeMouse, 2)

	_, err := repo.AssignFromStock(ctx, peripheral.TypeCharger, "EMP001", "Alice Nguyen")
	require.NoError(t, err)

	stats, err := repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalUnits)
	assert.Equal(t, 4, stats.InstockUnits)
	assert.Equal(t, 1, stats.AssignedUnits)
	assert.Equal(t, int64(2), stats.StockByType["Charger"])
	assert.Equal(t, int64(2), stats.StockByType["Mouse"])
}
