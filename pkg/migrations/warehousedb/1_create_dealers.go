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
		log.Println("creating dealers table...")
		if err := mghelper.CreateSchema(ctx, db, &dao.DealerDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &dao.DealerDao{}, "payee_number")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping dealers table...")
		return mghelper.DropTables(ctx, db, &dao.DealerDao{})
	})
}
