package sync

import (
	"strings"

	"github.com/claimsight/dealersync/pkg/source"
	"github.com/claimsight/dealersync/pkg/warehouse/dao"
)

// normalizePayee trims and case-folds a payee identifier for map lookups.
func normalizePayee(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

// ResolveDealers assigns a stable dealer key to every unique payee identifier.
//
// Existing keys are never re-assigned; a payee with no existing key gets a
// synthesized one of the form "<payee>-<source document id>". Source documents
// are deduplicated by normalized payee, keeping the first document in natural
// source order, and a second pass removes accidental key collisions. The
// returned rows contain only payees absent from the warehouse: dealer writes
// are additive only.
//
// The returned map (normalized payee -> dealer key) covers existing and newly
// assigned keys and feeds agreement foreign key resolution.
func ResolveDealers(docs []source.DealerDoc, existing map[string]string) ([]dao.DealerDao, map[string]string) {
	keys := make(map[string]string, len(existing))
	for payee, key := range existing {
		keys[normalizePayee(payee)] = key
	}

	seen := make(map[string]bool, len(docs))
	assigned := make(map[string]bool, len(docs))
	var rows []dao.DealerDao

	for _, doc := range docs {
		payee := normalizePayee(doc.PayeeNumber)
		if payee == "" || seen[payee] {
			continue
		}
		seen[payee] = true

		key, exists := keys[payee]
		if !exists {
			key = strings.TrimSpace(doc.PayeeNumber) + "-" + doc.ID.Hex()
			keys[payee] = key
		}

		if assigned[key] {
			continue
		}
		assigned[key] = true

		if exists {
			// Known dealer: key reused, row untouched
			continue
		}

		rows = append(rows, dao.DealerDao{
			DealerKey:   key,
			PayeeNumber: strings.TrimSpace(doc.PayeeNumber),
			Name:        doc.Name,
			Address:     doc.Address,
			City:        doc.City,
			State:       doc.State,
			Zip:         doc.Zip,
			Phone:       doc.Phone,
		})
	}

	return rows, keys
}
