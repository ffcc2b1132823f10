package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// AgreementDao is a data access object that maps directly to the 'agreements' table in PostgreSQL.
//
// Exactly one row exists per agreement identifier; the synchronizer collapses
// raw source revisions before writing. Rows are soft-deleted by the
// reconciliation sweep (status INACTIVE, is_active false), never removed.
type AgreementDao struct {
	bun.BaseModel `bun:"table:agreements,alias:a"`
	AgreementID   string     `bun:"agreement_id,pk,type:varchar(64)"`
	DealerKey     string     `bun:"dealer_key,notnull,type:varchar(128)"`
	Status        string     `bun:"status,notnull,type:varchar(32)"`
	Hash          string     `bun:"hash,notnull,type:varchar(128)"`
	IsActive      bool       `bun:"is_active,notnull"`
	HolderName    string     `bun:"holder_name,type:varchar(255)"`
	PlanCode      string     `bun:"plan_code,type:varchar(64)"`
	VIN           string     `bun:"vin,type:varchar(32)"`
	EffectiveDate *time.Time `bun:"effective_date"`
	ExpireDate    *time.Time `bun:"expire_date"`
	StatusChanged *time.Time `bun:"status_changed"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,default:current_timestamp"`
}
