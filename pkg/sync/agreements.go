package sync

import (
	"time"

	"github.com/claimsight/dealersync/pkg/source"
)

// EffectiveStatusChange returns the effective status-change timestamp of a
// raw agreement revision: the first candidate in priority order (4th, 3rd,
// 2nd, then 1st) whose normalized value is present. Placeholder dates are
// excluded from candidacy. Returns nil when no candidate is usable.
func EffectiveStatusChange(doc source.AgreementDoc) *time.Time {
	for _, ts := range []time.Time{
		doc.StatusChangeDate4,
		doc.StatusChangeDate3,
		doc.StatusChangeDate2,
		doc.StatusChangeDate,
	} {
		if t := NormalizeTime(ts); t != nil {
			return t
		}
	}
	return nil
}

// SelectLatestRevisions collapses raw agreement revisions to exactly one per
// agreement identifier: the revision with the greatest effective
// status-change timestamp wins. Ties, including revisions with no usable
// timestamp at all, keep the earlier revision in source order, so the result
// is deterministic for a given source ordering. Output preserves the order
// in which identifiers first appear.
func SelectLatestRevisions(docs []source.AgreementDoc) []source.AgreementDoc {
	type candidate struct {
		idx int
		eff *time.Time
	}

	best := make(map[string]candidate, len(docs))
	var order []string

	for i, doc := range docs {
		if doc.AgreementID == "" {
			continue
		}
		eff := EffectiveStatusChange(doc)
		cur, ok := best[doc.AgreementID]
		if !ok {
			best[doc.AgreementID] = candidate{idx: i, eff: eff}
			order = append(order, doc.AgreementID)
			continue
		}
		if timeStrictlyAfter(eff, cur.eff) {
			best[doc.AgreementID] = candidate{idx: i, eff: eff}
		}
	}

	out := make([]source.AgreementDoc, 0, len(order))
	for _, id := range order {
		out = append(out, docs[best[id].idx])
	}
	return out
}

// timeStrictlyAfter reports whether a is strictly after b, with nil treated
// as earlier than any instant.
func timeStrictlyAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
