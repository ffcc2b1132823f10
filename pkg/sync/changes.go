package sync

import (
	"time"

	"github.com/claimsight/dealersync/pkg/source"
)

// HashTracked is a source document whose changes are detected by comparing
// content hashes against the recorded checkpoint.
type HashTracked interface {
	SyncKey() string
	SyncHash() string
}

// ChangedByHash returns the documents whose content hash differs from the
// recorded checkpoint, or that have no checkpoint at all. Documents without
// an identity are dropped.
func ChangedByHash[T HashTracked](docs []T, recorded map[string]string) []T {
	var changed []T
	for _, doc := range docs {
		key := doc.SyncKey()
		if key == "" {
			continue
		}
		if h, ok := recorded[key]; !ok || h != doc.SyncHash() {
			changed = append(changed, doc)
		}
	}
	return changed
}

// ChangedClaims returns the claims whose normalized LastModified strictly
// exceeds the checkpointed value, or that have no checkpoint. An equal
// timestamp is an idempotent no-op.
func ChangedClaims(docs []source.ClaimDoc, checkpoints map[string]time.Time) []source.ClaimDoc {
	var changed []source.ClaimDoc
	for _, doc := range docs {
		if doc.ClaimID == "" {
			continue
		}
		last, ok := checkpoints[doc.ClaimID]
		if !ok {
			changed = append(changed, doc)
			continue
		}
		lm := NormalizeTime(doc.LastModified)
		if lm != nil && lm.After(last) {
			changed = append(changed, doc)
		}
	}
	return changed
}

// NormalizeTime maps the year-0001 placeholder convention onto an explicit
// absence. The source store uses the zero date for "no timestamp"; any such
// value must never be treated as a real instant.
func NormalizeTime(t time.Time) *time.Time {
	if t.IsZero() || t.Year() <= 1 {
		return nil
	}
	return &t
}
