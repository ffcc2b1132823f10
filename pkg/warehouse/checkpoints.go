package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/claimsight/dealersync/pkg/warehouse/dao"
)

// Hash-checkpoint entity types.
const (
	EntityAgreements      = "agreements"
	EntitySubclaims       = "subclaims"
	EntitySubclaimParts   = "subclaim_parts"
	EntitySurchargePrices = "surcharge_prices"
)

// ClaimCheckpoints reads the claim_id -> last_modified mapping, page by page.
func (s *Store) ClaimCheckpoints(ctx context.Context) (map[string]time.Time, error) {
	checkpoints := make(map[string]time.Time)
	for offset := 0; ; offset += s.pageSize {
		var page []dao.ClaimCheckpointDao
		err := s.db.NewSelect().
			Model(&page).
			Column("claim_id", "last_modified").
			Order("claim_id ASC").
			Limit(s.pageSize).
			Offset(offset).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read claim checkpoints page at offset %d: %w", offset, err)
		}
		for _, row := range page {
			checkpoints[row.ClaimID] = row.LastModified
		}
		if len(page) < s.pageSize {
			return checkpoints, nil
		}
	}
}

// HashCheckpoints reads the entity_id -> hash mapping for one entity type,
// page by page.
func (s *Store) HashCheckpoints(ctx context.Context, entityType string) (map[string]string, error) {
	checkpoints := make(map[string]string)
	for offset := 0; ; offset += s.pageSize {
		var page []dao.HashCheckpointDao
		err := s.db.NewSelect().
			Model(&page).
			Column("entity_id", "hash").
			Where("entity_type = ?", entityType).
			Order("entity_id ASC").
			Limit(s.pageSize).
			Offset(offset).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s hash checkpoints page at offset %d: %w", entityType, offset, err)
		}
		for _, row := range page {
			checkpoints[row.EntityID] = row.Hash
		}
		if len(page) < s.pageSize {
			return checkpoints, nil
		}
	}
}

// UpsertClaimCheckpoints merges checkpoint rows for the given claims.
// Checkpoints are merged incrementally, never rewritten wholesale, so a
// checkpoint recorded in an earlier run survives runs that do not touch
// its claim.
func (s *Store) UpsertClaimCheckpoints(ctx context.Context, rows []dao.ClaimCheckpointDao) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (claim_id) DO UPDATE").
		Set("last_modified = EXCLUDED.last_modified").
		Set("updated_at = NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert claim checkpoints: %w", err)
	}
	return nil
}

// UpsertHashCheckpoints merges hash checkpoint rows.
func (s *Store) UpsertHashCheckpoints(ctx context.Context, rows []dao.HashCheckpointDao) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (entity_type, entity_id) DO UPDATE").
		Set("hash = EXCLUDED.hash").
		Set("updated_at = NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert hash checkpoints: %w", err)
	}
	return nil
}
