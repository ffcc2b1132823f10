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
		log.Println("creating subclaims and subclaim_parts tables...")
		if err := mghelper.CreateSchema(ctx, db, &dao.SubclaimDao{}, &dao.SubclaimPartDao{}); err != nil {
			return err
		}
		if err := mghelper.CreateModelIndexes(ctx, db, &dao.SubclaimDao{}, "claim_id"); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &dao.SubclaimPartDao{}, "subclaim_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping subclaims and subclaim_parts tables...")
		return mghelper.DropTables(ctx, db, &dao.SubclaimDao{}, &dao.SubclaimPartDao{})
	})
}
