package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// DealerDao is a data access object that maps directly to the 'dealers' table in PostgreSQL.
//
// DealerKey is assigned once and never changes; rows are additive only and
// the synchronizer never overwrites an existing dealer.
type DealerDao struct {
	bun.BaseModel `bun:"table:dealers,alias:d"`
	DealerKey     string    `bun:"dealer_key,pk,type:varchar(128)"`
	PayeeNumber   string    `bun:"payee_number,unique,notnull,type:varchar(64)"`
	Name          string    `bun:"name,type:varchar(255)"`
	Address       string    `bun:"address,type:varchar(255)"`
	City          string    `bun:"city,type:varchar(128)"`
	State         string    `bun:"state,type:varchar(32)"`
	Zip           string    `bun:"zip,type:varchar(16)"`
	Phone         string    `bun:"phone,type:varchar(32)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}
