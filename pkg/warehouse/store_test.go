package warehouse_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/claimsight/dealersync/pkg/migrations/warehousedb"
	"github.com/claimsight/dealersync/pkg/pgutil"
	"github.com/claimsight/dealersync/pkg/warehouse"
	"github.com/claimsight/dealersync/pkg/warehouse/dao"
)

func setupWarehouse(t *testing.T, pageSize int) (*warehouse.Store, *bun.DB) {
	t.Helper()
	pgutil.RequireDockerAccess(t)

	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	migrator := migrate.NewMigrator(db, warehousedb.Migrations)
	ctx := context.Background()
	require.NoError(t, migrator.Init(ctx))
	_, err := migrator.Migrate(ctx)
	require.NoError(t, err)

	return warehouse.NewStore(db, pageSize), db
}

func strPtr(s string) *string { return &s }

func TestStore(t *testing.T) {
	store, db := setupWarehouse(t, 2)
	ctx := context.Background()

	t.Run("dealer inserts are additive only", func(t *testing.T) {
		rows := []dao.DealerDao{
			{DealerKey: "100-aaa", PayeeNumber: "100", Name: "Original Motors"},
		}
		require.NoError(t, store.InsertNewDealers(ctx, rows))

		// A second insert for the same payee must not touch the row
		again := []dao.DealerDao{
			{DealerKey: "100-bbb", PayeeNumber: "100", Name: "Impostor Motors"},
		}
		require.NoError(t, store.InsertNewDealers(ctx, again))

		var got dao.DealerDao
		err := db.NewSelect().Model(&got).Where("payee_number = ?", "100").Scan(ctx)
		require.NoError(t, err)
		assert.Equal(t, "100-aaa", got.DealerKey)
		assert.Equal(t, "Original Motors", got.Name)
	})

	t.Run("dealer keys paginate past the page size", func(t *testing.T) {
		var rows []dao.DealerDao
		for i := 0; i < 5; i++ {
			payee := fmt.Sprintf("2%02d", i)
			rows = append(rows, dao.DealerDao{DealerKey: payee + "-key", PayeeNumber: payee})
		}
		require.NoError(t, store.InsertNewDealers(ctx, rows))

		keys, err := store.DealerKeys(ctx)
		require.NoError(t, err)
		// 5 inserted here plus the one from the previous subtest
		assert.Len(t, keys, 6)
		assert.Equal(t, "201-key", keys["201"])
	})

	t.Run("agreement upsert overwrites on conflict", func(t *testing.T) {
		first := []dao.AgreementDao{
			{AgreementID: "AGR-1", DealerKey: "100-aaa", Status: "PENDING", Hash: "h1", IsActive: true},
		}
		require.NoError(t, store.UpsertAgreements(ctx, first))

		second := []dao.AgreementDao{
			{AgreementID: "AGR-1", DealerKey: "100-aaa", Status: "ACTIVE", Hash: "h2", IsActive: true},
		}
		require.NoError(t, store.UpsertAgreements(ctx, second))

		var got dao.AgreementDao
		err := db.NewSelect().Model(&got).Where("agreement_id = ?", "AGR-1").Scan(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", got.Status)
		assert.Equal(t, "h2", got.Hash)
	})

	t.Run("deactivation flips status and is_active", func(t *testing.T) {
		rows := []dao.AgreementDao{
			{AgreementID: "AGR-2", DealerKey: "100-aaa", Status: "ACTIVE", Hash: "h3", IsActive: true},
			{AgreementID: "AGR-3", DealerKey: "100-aaa", Status: "ACTIVE", Hash: "h4", IsActive: true},
		}
		require.NoError(t, store.UpsertAgreements(ctx, rows))

		affected, err := store.DeactivateAgreements(ctx, []string{"AGR-3"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		var got dao.AgreementDao
		err = db.NewSelect().Model(&got).Where("agreement_id = ?", "AGR-3").Scan(ctx)
		require.NoError(t, err)
		assert.Equal(t, string(warehouse.StatusInactive), got.Status)
		assert.False(t, got.IsActive)

		// Untouched rows keep their status
		err = db.NewSelect().Model(&got).Where("agreement_id = ?", "AGR-2").Scan(ctx)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	})

	t.Run("agreement ids paginate past the page size", func(t *testing.T) {
		ids, err := store.AgreementIDs(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"AGR-1", "AGR-2", "AGR-3"}, ids)
	})

	t.Run("claim upsert stores money as numeric", func(t *testing.T) {
		mod := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		rows := []dao.ClaimDao{
			{ClaimID: "CLM-1", AgreementID: "AGR-1", Status: "ACTIVE",
				TotalPaid: strPtr("150.25"), Odometer: 42000, LastModified: mod},
		}
		require.NoError(t, store.UpsertClaims(ctx, rows))

		rows[0].TotalPaid = strPtr("199.99")
		require.NoError(t, store.UpsertClaims(ctx, rows))

		var got dao.ClaimDao
		err := db.NewSelect().Model(&got).Where("claim_id = ?", "CLM-1").Scan(ctx)
		require.NoError(t, err)
		require.NotNil(t, got.TotalPaid)
		assert.Equal(t, "199.99", *got.TotalPaid)
		assert.True(t, got.LastModified.Equal(mod))
	})

	t.Run("claim checkpoints merge incrementally", func(t *testing.T) {
		t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		t2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

		require.NoError(t, store.UpsertClaimCheckpoints(ctx, []dao.ClaimCheckpointDao{
			{ClaimID: "CLM-1", LastModified: t1},
			{ClaimID: "CLM-2", LastModified: t1},
		}))
		require.NoError(t, store.UpsertClaimCheckpoints(ctx, []dao.ClaimCheckpointDao{
			{ClaimID: "CLM-2", LastModified: t2},
		}))

		checkpoints, err := store.ClaimCheckpoints(ctx)
		require.NoError(t, err)
		assert.Len(t, checkpoints, 2)
		assert.True(t, checkpoints["CLM-1"].Equal(t1))
		assert.True(t, checkpoints["CLM-2"].Equal(t2))
	})

	t.Run("hash checkpoints are partitioned by entity type", func(t *testing.T) {
		require.NoError(t, store.UpsertHashCheckpoints(ctx, []dao.HashCheckpointDao{
			{EntityType: warehouse.EntitySubclaims, EntityID: "S1", Hash: "old"},
			{EntityType: warehouse.EntitySubclaimParts, EntityID: "S1", Hash: "part-hash"},
		}))
		require.NoError(t, store.UpsertHashCheckpoints(ctx, []dao.HashCheckpointDao{
			{EntityType: warehouse.EntitySubclaims, EntityID: "S1", Hash: "new"},
			{EntityType: warehouse.EntitySubclaims, EntityID: "S2", Hash: "s2-hash"},
		}))

		subclaims, err := store.HashCheckpoints(ctx, warehouse.EntitySubclaims)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"S1": "new", "S2": "s2-hash"}, subclaims)

		parts, err := store.HashCheckpoints(ctx, warehouse.EntitySubclaimParts)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"S1": "part-hash"}, parts)
	})
}
