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
		log.Println("creating agreements table...")
		if err := mghelper.CreateSchema(ctx, db, &dao.AgreementDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &dao.AgreementDao{}, "dealer_key", "is_active")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping agreements table...")
		return mghelper.DropTables(ctx, db, &dao.AgreementDao{})
	})
}
