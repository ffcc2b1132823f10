package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// SurchargePriceDao is a data access object that maps directly to the
// 'surcharge_prices' table in PostgreSQL.
type SurchargePriceDao struct {
	bun.BaseModel `bun:"table:surcharge_prices,alias:op"`
	ID            string    `bun:"id,pk,type:varchar(64)"`
	OptionCode    string    `bun:"option_code,notnull,type:varchar(64)"`
	PlanCode      string    `bun:"plan_code,type:varchar(64)"`
	Price         *string   `bun:"price,nullzero,type:numeric(14,2)"`
	DealerCost    *string   `bun:"dealer_cost,nullzero,type:numeric(14,2)"`
	Hash          string    `bun:"hash,notnull,type:varchar(128)"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}
