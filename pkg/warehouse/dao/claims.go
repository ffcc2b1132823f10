package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// ClaimDao is a data access object that maps directly to the 'claims' table in PostgreSQL.
type ClaimDao struct {
	bun.BaseModel `bun:"table:claims,alias:c"`
	ClaimID       string     `bun:"claim_id,pk,type:varchar(64)"`
	AgreementID   string     `bun:"agreement_id,notnull,type:varchar(64)"`
	Status        string     `bun:"status,type:varchar(32)"`
	TotalPaid     *string    `bun:"total_paid,nullzero,type:numeric(14,2)"`
	Odometer      int64      `bun:"odometer,notnull,use_zero"`
	OpenDate      *time.Time `bun:"open_date"`
	CloseDate     *time.Time `bun:"close_date"`
	LastModified  time.Time  `bun:"last_modified,notnull"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,default:current_timestamp"`
}

// SubclaimDao is a data access object that maps directly to the 'subclaims' table in PostgreSQL.
type SubclaimDao struct {
	bun.BaseModel `bun:"table:subclaims,alias:sc"`
	ID            string     `bun:"id,pk,type:varchar(64)"`
	ClaimID       string     `bun:"claim_id,notnull,type:varchar(64)"`
	Hash          string     `bun:"hash,notnull,type:varchar(128)"`
	Status        string     `bun:"status,type:varchar(32)"`
	Complaint     string     `bun:"complaint,type:text"`
	TotalCost     *string    `bun:"total_cost,nullzero,type:numeric(14,2)"`
	PayDate       *time.Time `bun:"pay_date"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,default:current_timestamp"`
}

// SubclaimPartDao is a data access object that maps directly to the 'subclaim_parts' table in PostgreSQL.
type SubclaimPartDao struct {
	bun.BaseModel `bun:"table:subclaim_parts,alias:sp"`
	ID            string    `bun:"id,pk,type:varchar(64)"`
	SubclaimID    string    `bun:"subclaim_id,notnull,type:varchar(64)"`
	Hash          string    `bun:"hash,notnull,type:varchar(128)"`
	PartNumber    string    `bun:"part_number,type:varchar(64)"`
	Description   string    `bun:"description,type:text"`
	Quantity      int64     `bun:"quantity,notnull,use_zero"`
	UnitPrice     *string   `bun:"unit_price,nullzero,type:numeric(14,2)"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}
