package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimsight/dealersync/pkg/source"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEffectiveStatusChange_PriorityOrder(t *testing.T) {
	doc := source.AgreementDoc{
		StatusChangeDate:  ts("2023-01-01T00:00:00Z"),
		StatusChangeDate2: ts("2023-02-01T00:00:00Z"),
		StatusChangeDate3: ts("2023-03-01T00:00:00Z"),
		StatusChangeDate4: ts("2023-04-01T00:00:00Z"),
	}
	eff := EffectiveStatusChange(doc)
	require.NotNil(t, eff)
	assert.Equal(t, ts("2023-04-01T00:00:00Z"), *eff)
}

func TestEffectiveStatusChange_SkipsPlaceholders(t *testing.T) {
	doc := source.AgreementDoc{
		StatusChangeDate:  ts("2023-01-01T00:00:00Z"),
		StatusChangeDate4: ts("0001-01-01T00:00:00Z"),
	}
	eff := EffectiveStatusChange(doc)
	require.NotNil(t, eff)
	assert.Equal(t, ts("2023-01-01T00:00:00Z"), *eff)
}

func TestEffectiveStatusChange_AllPlaceholders(t *testing.T) {
	doc := source.AgreementDoc{
		StatusChangeDate: ts("0001-01-01T00:00:00Z"),
	}
	assert.Nil(t, EffectiveStatusChange(doc))
}

func TestSelectLatestRevisions_LatestWins(t *testing.T) {
	docs := []source.AgreementDoc{
		{AgreementID: "A1", Status: "PENDING", StatusChangeDate: ts("2023-01-01T00:00:00Z")},
		{AgreementID: "A1", Status: "ACTIVE", StatusChangeDate: ts("2023-06-01T00:00:00Z")},
		{AgreementID: "A1", Status: "EXPIRED", StatusChangeDate: ts("2023-03-01T00:00:00Z")},
	}
	out := SelectLatestRevisions(docs)
	require.Len(t, out, 1)
	assert.Equal(t, "ACTIVE", out[0].Status)
}

func TestSelectLatestRevisions_TieKeepsEarlierSeen(t *testing.T) {
	docs := []source.AgreementDoc{
		{AgreementID: "A1", Status: "ACTIVE", StatusChangeDate: ts("2023-06-01T00:00:00Z")},
		{AgreementID: "A1", Status: "CANCELLED", StatusChangeDate: ts("2023-06-01T00:00:00Z")},
	}
	out := SelectLatestRevisions(docs)
	require.Len(t, out, 1)
	assert.Equal(t, "ACTIVE", out[0].Status)
}

func TestSelectLatestRevisions_NoUsableTimestamp(t *testing.T) {
	docs := []source.AgreementDoc{
		{AgreementID: "A1", Status: "PENDING"},
		{AgreementID: "A1", Status: "ACTIVE"},
	}
	out := SelectLatestRevisions(docs)
	require.Len(t, out, 1)
	// No revision is strictly later, so the first seen survives
	assert.Equal(t, "PENDING", out[0].Status)
}

func TestSelectLatestRevisions_TimestampedBeatsUndated(t *testing.T) {
	docs := []source.AgreementDoc{
		{AgreementID: "A1", Status: "PENDING"},
		{AgreementID: "A1", Status: "ACTIVE", StatusChangeDate: ts("2023-06-01T00:00:00Z")},
	}
	out := SelectLatestRevisions(docs)
	require.Len(t, out, 1)
	assert.Equal(t, "ACTIVE", out[0].Status)
}

func TestSelectLatestRevisions_PreservesFirstSeenOrder(t *testing.T) {
	docs := []source.AgreementDoc{
		{AgreementID: "B", StatusChangeDate: ts("2023-01-01T00:00:00Z")},
		{AgreementID: "A", StatusChangeDate: ts("2023-01-01T00:00:00Z")},
		{AgreementID: "B", StatusChangeDate: ts("2023-02-01T00:00:00Z")},
		{AgreementID: "", StatusChangeDate: ts("2023-02-01T00:00:00Z")},
	}
	out := SelectLatestRevisions(docs)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].AgreementID)
	assert.Equal(t, "A", out[1].AgreementID)
	assert.Equal(t, ts("2023-02-01T00:00:00Z"), out[0].StatusChangeDate)
}
