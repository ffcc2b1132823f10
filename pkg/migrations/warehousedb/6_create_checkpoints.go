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
		log.Println("creating checkpoint tables...")
		return mghelper.CreateSchema(ctx, db, &dao.ClaimCheckpointDao{}, &dao.HashCheckpointDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping checkpoint tables...")
		return mghelper.DropTables(ctx, db, &dao.ClaimCheckpointDao{}, &dao.HashCheckpointDao{})
	})
}
