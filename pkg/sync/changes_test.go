package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/claimsight/dealersync/pkg/source"
)

func TestNormalizeTime(t *testing.T) {
	assert.Nil(t, NormalizeTime(time.Time{}))
	assert.Nil(t, NormalizeTime(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)))

	real := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	got := NormalizeTime(real)
	if assert.NotNil(t, got) {
		assert.Equal(t, real, *got)
	}
}

func TestChangedClaims(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := []source.ClaimDoc{
		{ClaimID: "C1", LastModified: base.Add(time.Hour)}, // newer than checkpoint
		{ClaimID: "C2", LastModified: base},                // exactly equal, skip
		{ClaimID: "C3", LastModified: base},                // no checkpoint
		{ClaimID: "C4"},                                    // placeholder timestamp, checkpointed
		{ClaimID: ""},                                      // no identity, dropped
	}
	checkpoints := map[string]time.Time{
		"C1": base,
		"C2": base,
		"C4": base,
	}

	changed := ChangedClaims(docs, checkpoints)

	ids := make([]string, len(changed))
	for i, c := range changed {
		ids[i] = c.ClaimID
	}
	assert.Equal(t, []string{"C1", "C3"}, ids)
}

func TestChangedByHash(t *testing.T) {
	id1, id2, id3 := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	docs := []source.SubclaimDoc{
		{ID: id1, Hash: "aaa"}, // unchanged
		{ID: id2, Hash: "bbb"}, // hash differs
		{ID: id3, Hash: "ccc"}, // no checkpoint
	}
	recorded := map[string]string{
		id1.Hex(): "aaa",
		id2.Hex(): "old",
	}

	changed := ChangedByHash(docs, recorded)

	assert.Len(t, changed, 2)
	assert.Equal(t, id2, changed[0].ID)
	assert.Equal(t, id3, changed[1].ID)
}

func TestChangedByHash_NoCheckpoints(t *testing.T) {
	docs := []source.SurchargePriceDoc{
		{ID: primitive.NewObjectID(), Hash: "x"},
		{ID: primitive.NewObjectID(), Hash: "y"},
	}
	changed := ChangedByHash(docs, map[string]string{})
	assert.Len(t, changed, 2)
}
