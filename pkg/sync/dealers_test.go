package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/claimsight/dealersync/pkg/source"
)

func TestResolveDealers_SynthesizesKeyForNewPayee(t *testing.T) {
	id := primitive.NewObjectID()
	docs := []source.DealerDoc{
		{ID: id, PayeeNumber: "42", Name: "Main Street Motors"},
	}

	rows, keys := ResolveDealers(docs, map[string]string{})

	require.Len(t, rows, 1)
	assert.Equal(t, "42-"+id.Hex(), rows[0].DealerKey)
	assert.Equal(t, "42", rows[0].PayeeNumber)
	assert.Equal(t, "42-"+id.Hex(), keys["42"])
}

func TestResolveDealers_ReusesExistingKey(t *testing.T) {
	docs := []source.DealerDoc{
		{ID: primitive.NewObjectID(), PayeeNumber: "42", Name: "Renamed Motors"},
	}
	existing := map[string]string{"42": "42-preassigned"}

	rows, keys := ResolveDealers(docs, existing)

	// Key is immutable once assigned and the existing row is never rewritten
	assert.Empty(t, rows)
	assert.Equal(t, "42-preassigned", keys["42"])
}

func TestResolveDealers_DeduplicatesByPayee_FirstWins(t *testing.T) {
	first, second := primitive.NewObjectID(), primitive.NewObjectID()
	docs := []source.DealerDoc{
		{ID: first, PayeeNumber: "77", Name: "First Encountered"},
		{ID: second, PayeeNumber: "77", Name: "Duplicate"},
		{ID: second, PayeeNumber: " 77 ", Name: "Whitespace Duplicate"},
	}

	rows, _ := ResolveDealers(docs, map[string]string{})

	require.Len(t, rows, 1)
	assert.Equal(t, "First Encountered", rows[0].Name)
	assert.Equal(t, "77-"+first.Hex(), rows[0].DealerKey)
}

func TestResolveDealers_NormalizesCaseForLookup(t *testing.T) {
	docs := []source.DealerDoc{
		{ID: primitive.NewObjectID(), PayeeNumber: "AB123"},
	}
	existing := map[string]string{"ab123": "ab123-key"}

	rows, keys := ResolveDealers(docs, existing)

	assert.Empty(t, rows)
	assert.Equal(t, "ab123-key", keys["ab123"])
}

func TestResolveDealers_SkipsEmptyPayee(t *testing.T) {
	docs := []source.DealerDoc{
		{ID: primitive.NewObjectID(), PayeeNumber: "   "},
		{ID: primitive.NewObjectID(), PayeeNumber: ""},
	}

	rows, keys := ResolveDealers(docs, map[string]string{})

	assert.Empty(t, rows)
	assert.Empty(t, keys)
}
