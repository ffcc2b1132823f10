package warehouse

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/claimsight/dealersync/pkg/warehouse/dao"
)

// Store provides warehouse database operations for the synchronizer.
type Store struct {
	db       *bun.DB
	pageSize int
}

// NewStore creates a warehouse store. pageSize bounds every checkpoint and
// identifier read; reads paginate until a short page signals end of data.
func NewStore(db *bun.DB, pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = 1000
	}
	return &Store{db: db, pageSize: pageSize}
}

// DB returns the underlying bun handle for migrations and tests.
func (s *Store) DB() *bun.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DealerKeys reads all (payee_number, dealer_key) pairs, page by page.
func (s *Store) DealerKeys(ctx context.Context) (map[string]string, error) {
	keys := make(map[string]string)
	for offset := 0; ; offset += s.pageSize {
		var page []dao.DealerDao
		err := s.db.NewSelect().
			Model(&page).
			Column("dealer_key", "payee_number").
			Order("dealer_key ASC").
			Limit(s.pageSize).
			Offset(offset).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read dealer keys page at offset %d: %w", offset, err)
		}
		for _, row := range page {
			keys[row.PayeeNumber] = row.DealerKey
		}
		if len(page) < s.pageSize {
			return keys, nil
		}
	}
}

// InsertNewDealers writes dealer rows with insert-if-absent semantics.
// Existing rows are never touched; dealer records are additive only.
func (s *Store) InsertNewDealers(ctx context.Context, rows []dao.DealerDao) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (payee_number) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert dealers: %w", err)
	}
	return nil
}

// UpsertAgreements writes agreement rows, overwriting on conflicting identifier.
func (s *Store) UpsertAgreements(ctx context.Context, rows []dao.AgreementDao) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (agreement_id) DO UPDATE").
		Set("dealer_key = EXCLUDED.dealer_key").
		Set("status = EXCLUDED.status").
		Set("hash = EXCLUDED.hash").
		Set("is_active = EXCLUDED.is_active").
		Set("holder_name = EXCLUDED.holder_name").
		Set("plan_code = EXCLUDED.plan_code").
		Set("vin = EXCLUDED.vin").
		Set("effective_date = EXCLUDED.effective_date").
		Set("expire_date = EXCLUDED.expire_date").
		Set("status_changed = EXCLUDED.status_changed").
		Set("updated_at = NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert agreements: %w", err)
	}
	return nil
}

// UpsertClaims writes claim rows, overwriting on conflicting identifier.
func (s *Store) UpsertClaims(ctx context.Context, rows []dao.ClaimDao) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (claim_id) DO UPDATE").
		Set("agreement_id = EXCLUDED.agreement_id").
		Set("status = EXCLUDED.status").
		Set("total_paid = EXCLUDED.total_paid").
		Set("odometer = EXCLUDED.odometer").
		Set("open_date = EXCLUDED.open_date").
		Set("close_date = EXCLUDED.close_date").
		Set("last_modified = EXCLUDED.last_modified").
		Set("updated_at = NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert claims: %w", err)
	}
	return nil
}

// UpsertSubclaims writes subclaim rows, overwriting on conflicting identifier.
func (s *Store) UpsertSubclaims(ctx context.Context, rows []dao.SubclaimDao) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("claim_id = EXCLUDED.claim_id").
		Set("hash = EXCLUDED.hash").
		Set("status = EXCLUDED.status").
		Set("complaint = EXCLUDED.complaint").
		Set("total_cost = EXCLUDED.total_cost").
		Set("pay_date = EXCLUDED.pay_date").
		Set("updated_at = NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert subclaims: %w", err)
	}
	return nil
}

// UpsertSubclaimParts writes subclaim part rows, overwriting on conflicting identifier.
func (s *Store) UpsertSubclaimParts(ctx context.Context, rows []dao.SubclaimPartDao) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("subclaim_id = EXCLUDED.subclaim_id").
		Set("hash = EXCLUDED.hash").
		Set("part_number = EXCLUDED.part_number").
		Set("description = EXCLUDED.description").
		Set("quantity = EXCLUDED.quantity").
		Set("unit_price = EXCLUDED.unit_price").
		Set("updated_at = NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert subclaim parts: %w", err)
	}
	return nil
}

// UpsertSurchargePrices writes surcharge price rows, overwriting on conflicting identifier.
func (s *Store) UpsertSurchargePrices(ctx context.Context, rows []dao.SurchargePriceDao) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("option_code = EXCLUDED.option_code").
		Set("plan_code = EXCLUDED.plan_code").
		Set("price = EXCLUDED.price").
		Set("dealer_cost = EXCLUDED.dealer_cost").
		Set("hash = EXCLUDED.hash").
		Set("updated_at = NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert surcharge prices: %w", err)
	}
	return nil
}

// AgreementIDs reads all warehouse agreement identifiers, page by page.
func (s *Store) AgreementIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for offset := 0; ; offset += s.pageSize {
		var page []string
		err := s.db.NewSelect().
			Model((*dao.AgreementDao)(nil)).
			Column("agreement_id").
			Order("agreement_id ASC").
			Limit(s.pageSize).
			Offset(offset).
			Scan(ctx, &page)
		if err != nil {
			return nil, fmt.Errorf("failed to read agreement ids page at offset %d: %w", offset, err)
		}
		ids = append(ids, page...)
		if len(page) < s.pageSize {
			return ids, nil
		}
	}
}

// DeactivateAgreements marks the given agreements inactive in a single bulk
// update. It never deletes rows; a reappearing agreement is re-activated by
// the normal upsert path.
func (s *Store) DeactivateAgreements(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.NewUpdate().
		Model((*dao.AgreementDao)(nil)).
		Set("status = ?", StatusInactive).
		Set("is_active = FALSE").
		Set("updated_at = NOW()").
		Where("agreement_id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate agreements: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}
