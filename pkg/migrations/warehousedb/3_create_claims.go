package warehousedb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/claimsight/dealersync/pkg/pgutil/migrations"
	"github.com/claimsight/dealersync/pkg/warehouse/dao"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating claims table...")
		if err := mghelper.CreateSchema(ctx, db, &dao.ClaimDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &dao.ClaimDao{}, "agreement_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping claims table...")
		return mghelper.DropTables(ctx, db, &dao.ClaimDao{})
	})
}
