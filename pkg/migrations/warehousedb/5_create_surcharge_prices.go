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
		log.Println("creating surcharge_prices table...")
		if err := mghelper.CreateSchema(ctx, db, &dao.SurchargePriceDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &dao.SurchargePriceDao{}, "option_code")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping surcharge_prices table...")
		return mghelper.DropTables(ctx, db, &dao.SurchargePriceDao{})
	})
}
