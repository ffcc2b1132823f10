package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// ClaimCheckpointDao maps to the 'claim_checkpoints' table: the last-seen
// LastModified timestamp per claim identifier. A claim is re-synced only when
// its source timestamp strictly exceeds the checkpointed value.
type ClaimCheckpointDao struct {
	bun.BaseModel `bun:"table:claim_checkpoints,alias:cc"`
	ClaimID       string    `bun:"claim_id,pk,type:varchar(64)"`
	LastModified  time.Time `bun:"last_modified,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}

// HashCheckpointDao maps to the 'hash_checkpoints' table: the last-seen
// content hash per hash-tracked entity. EntityType partitions the table by
// record category (agreements, subclaims, subclaim_parts, surcharge_prices).
type HashCheckpointDao struct {
	bun.BaseModel `bun:"table:hash_checkpoints,alias:hc"`
	EntityType    string    `bun:"entity_type,pk,type:varchar(32)"`
	EntityID      string    `bun:"entity_id,pk,type:varchar(64)"`
	Hash          string    `bun:"hash,notnull,type:varchar(128)"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}
