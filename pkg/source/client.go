package source

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/claimsight/dealersync/pkg/config"
)

// Collection names in the source document store.
const (
	collDealers         = "dealers"
	collAgreements      = "agreements"
	collClaims          = "claims"
	collSubclaims       = "subclaims"
	collSubclaimParts   = "subclaimParts"
	collSurchargePrices = "optionSurchargePrice"
)

// Client reads documents from the source MongoDB store.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewClient connects to the source store and verifies the connection.
func NewClient(ctx context.Context, cfg *config.SourceConfig, logger *zap.Logger) (*Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts = opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to source store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping source store: %w", err)
	}

	logger.Info("Connected to source store", zap.String("database", cfg.Database))

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

// Close disconnects from the source store.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Dealers reads all dealer documents in natural order.
func (c *Client) Dealers(ctx context.Context) ([]DealerDoc, error) {
	return readAll[DealerDoc](ctx, c, collDealers)
}

// Agreements reads all raw agreement revisions in natural order.
// Latest-version collapsing happens in the sync engine, not in the store.
func (c *Client) Agreements(ctx context.Context) ([]AgreementDoc, error) {
	return readAll[AgreementDoc](ctx, c, collAgreements)
}

// Claims reads all claim documents.
func (c *Client) Claims(ctx context.Context) ([]ClaimDoc, error) {
	return readAll[ClaimDoc](ctx, c, collClaims)
}

// Subclaims reads all subclaim documents.
func (c *Client) Subclaims(ctx context.Context) ([]SubclaimDoc, error) {
	return readAll[SubclaimDoc](ctx, c, collSubclaims)
}

// SubclaimParts reads all subclaim part documents.
func (c *Client) SubclaimParts(ctx context.Context) ([]SubclaimPartDoc, error) {
	return readAll[SubclaimPartDoc](ctx, c, collSubclaimParts)
}

// SurchargePrices reads all option surcharge price documents.
func (c *Client) SurchargePrices(ctx context.Context) ([]SurchargePriceDoc, error) {
	return readAll[SurchargePriceDoc](ctx, c, collSurchargePrices)
}

func readAll[T any](ctx context.Context, c *Client, collection string) ([]T, error) {
	cursor, err := c.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s documents: %w", collection, err)
	}

	c.logger.Debug("Read source collection",
		zap.String("collection", collection),
		zap.Int("documents", len(docs)))

	return docs, nil
}
