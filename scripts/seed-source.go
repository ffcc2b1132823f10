//go:build ignore
// +build ignore

// Seed Source Script
//
// Populate the MongoDB source store with sample dealers, agreements and
// claims for local development. Safe to run repeatedly: documents are
// replaced by their natural identifier.
//
// Usage:
//   go run scripts/seed-source.go -config config.yaml -dealers 20 -claims 100

package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/claimsight/dealersync/pkg/config"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to config file")
	dealers    = flag.Int("dealers", 20, "Number of dealers to seed")
	claims     = flag.Int("claims", 100, "Number of claims to seed")
)

var statuses = []string{"active", "pending", "expired", "cancelled"}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("ERROR: Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Source.URI))
	if err != nil {
		fmt.Printf("ERROR: Failed to connect to source store: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.Source.Database)
	now := time.Now().UTC()

	fmt.Printf("Seeding %d dealers into %s...\n", *dealers, cfg.Source.Database)
	for i := 0; i < *dealers; i++ {
		payee := fmt.Sprintf("%06d", 100000+i)
		_, err := db.Collection("dealers").ReplaceOne(ctx,
			bson.M{"payeeNumber": payee},
			bson.M{
				"payeeNumber": payee,
				"name":        fmt.Sprintf("Sample Dealer %d", i+1),
				"city":        "Springfield",
				"state":       "IL",
			},
			options.Replace().SetUpsert(true))
		if err != nil {
			fmt.Printf("ERROR: Failed to seed dealer %s: %v\n", payee, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seeding %d agreements...\n", *dealers*2)
	for i := 0; i < *dealers*2; i++ {
		agreementID := fmt.Sprintf("AGR-%05d", i+1)
		payee := fmt.Sprintf("%06d", 100000+i%*dealers)
		doc := bson.M{
			"agreementId":      agreementID,
			"dealerNumber":     payee,
			"status":           statuses[rand.Intn(len(statuses))],
			"planCode":         fmt.Sprintf("PLAN-%d", rand.Intn(5)+1),
			"statusChangeDate": now.AddDate(0, 0, -rand.Intn(365)),
		}
		doc["hash"] = contentHash(doc)
		_, err := db.Collection("agreements").ReplaceOne(ctx,
			bson.M{"agreementId": agreementID}, doc,
			options.Replace().SetUpsert(true))
		if err != nil {
			fmt.Printf("ERROR: Failed to seed agreement %s: %v\n", agreementID, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seeding %d claims...\n", *claims)
	for i := 0; i < *claims; i++ {
		claimID := fmt.Sprintf("CLM-%06d", i+1)
		_, err := db.Collection("claims").ReplaceOne(ctx,
			bson.M{"claimId": claimID},
			bson.M{
				"claimId":      claimID,
				"agreementId":  fmt.Sprintf("AGR-%05d", rand.Intn(*dealers*2)+1),
				"status":       statuses[rand.Intn(len(statuses))],
				"totalPaid":    fmt.Sprintf("%d.%02d", rand.Intn(2000), rand.Intn(100)),
				"odometer":     int64(rand.Intn(150000)),
				"lastModified": now.AddDate(0, 0, -rand.Intn(90)),
			},
			options.Replace().SetUpsert(true))
		if err != nil {
			fmt.Printf("ERROR: Failed to seed claim %s: %v\n", claimID, err)
			os.Exit(1)
		}
	}

	fmt.Println()
	fmt.Println("Done. Run the synchronizer to load the warehouse:")
	fmt.Printf("  go run ./cmd/syncer -config %s\n", *configPath)
}

func contentHash(doc bson.M) string {
	raw, _ := bson.Marshal(doc)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
