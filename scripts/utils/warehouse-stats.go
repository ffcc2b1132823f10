//go:build ignore
// +build ignore

// Warehouse Stats Script
//
// Print per-table row counts and checkpoint coverage for the warehouse
// database. Useful after a sync run to verify what landed.
//
// Usage:
//   go run scripts/utils/warehouse-stats.go -config config.yaml

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/claimsight/dealersync/pkg/config"
	"github.com/claimsight/dealersync/pkg/pgutil"
	"github.com/claimsight/dealersync/pkg/warehouse/dao"
)

var configPath = flag.String("config", "config.yaml", "Path to config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("ERROR: Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		fmt.Printf("ERROR: Failed to connect to warehouse: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	fmt.Println("Warehouse row counts")
	fmt.Println("--------------------")
	tables := []struct {
		name  string
		model interface{}
	}{
		{"dealers", (*dao.DealerDao)(nil)},
		{"agreements", (*dao.AgreementDao)(nil)},
		{"claims", (*dao.ClaimDao)(nil)},
		{"subclaims", (*dao.SubclaimDao)(nil)},
		{"subclaim_parts", (*dao.SubclaimPartDao)(nil)},
		{"surcharge_prices", (*dao.SurchargePriceDao)(nil)},
		{"claim_checkpoints", (*dao.ClaimCheckpointDao)(nil)},
		{"hash_checkpoints", (*dao.HashCheckpointDao)(nil)},
	}
	for _, table := range tables {
		count, err := db.NewSelect().Model(table.model).Count(ctx)
		if err != nil {
			fmt.Printf("  %-18s error: %v\n", table.name, err)
			continue
		}
		fmt.Printf("  %-18s %d\n", table.name, count)
	}

	var inactive int
	inactive, err = db.NewSelect().
		Model((*dao.AgreementDao)(nil)).
		Where("is_active = FALSE").
		Count(ctx)
	if err == nil {
		fmt.Println()
		fmt.Printf("  inactive agreements: %d\n", inactive)
	}
}
