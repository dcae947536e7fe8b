package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil777/curiefense/internal/types"
)

func makeDoc(docType types.DocType, id string) types.NormalizedDocument {
	return types.NormalizedDocument{
		ID:                  id,
		DocType:             docType,
		Name:                "test-" + id,
		Tags:                []string{},
		ConnectedACL:        []string{},
		ConnectedWAF:        []string{},
		ConnectedRateLimits: []string{},
	}
}

func TestStoreStartsEmpty(t *testing.T) {
	s := NewStore(nil)

	assert.Equal(t, 0, s.Count())
	assert.Equal(t, "", s.Branch())
	assert.NotNil(t, s.Snapshot())
	assert.Empty(t, s.Snapshot())
}

func TestStoreReplace(t *testing.T) {
	s := NewStore(nil)

	s.Replace("prod", []types.NormalizedDocument{
		makeDoc(types.DocTypeACLPolicies, "a1"),
		makeDoc(types.DocTypeWAFPolicies, "w1"),
	})

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "prod", s.Branch())

	// A later replace swaps wholesale, no merging.
	s.Replace("devops", []types.NormalizedDocument{
		makeDoc(types.DocTypeTagRules, "t1"),
	})
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, "devops", s.Branch())
}

func TestStoreReplaceNilBecomesEmpty(t *testing.T) {
	s := NewStore(nil)
	s.Replace("prod", nil)

	assert.NotNil(t, s.Snapshot())
	assert.Equal(t, 0, s.Count())
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore(nil)
	s.Replace("prod", []types.NormalizedDocument{makeDoc(types.DocTypeACLPolicies, "a1")})

	snap := s.Snapshot()
	snap[0].ID = "mutated"

	assert.Equal(t, "a1", s.Snapshot()[0].ID, "mutating a snapshot must not affect the store")
}

func TestStoreGet(t *testing.T) {
	s := NewStore(nil)
	s.Replace("prod", []types.NormalizedDocument{
		// Same id under two types: ids are only unique per type.
		makeDoc(types.DocTypeACLPolicies, "__default__"),
		makeDoc(types.DocTypeWAFPolicies, "__default__"),
	})

	doc, ok := s.Get(types.DocTypeWAFPolicies, "__default__")
	require.True(t, ok)
	assert.Equal(t, types.DocTypeWAFPolicies, doc.DocType)

	_, ok = s.Get(types.DocTypeRateLimits, "__default__")
	assert.False(t, ok)
}

func TestStoreOnChangeCallback(t *testing.T) {
	var events []IndexEvent
	s := NewStore(func(event IndexEvent) {
		events = append(events, event)
	})

	s.Replace("prod", []types.NormalizedDocument{makeDoc(types.DocTypeACLPolicies, "a1")})
	s.Replace("devops", nil)

	require.Len(t, events, 2)
	assert.Equal(t, IndexEvent{Branch: "prod", Count: 1}, events[0])
	assert.Equal(t, IndexEvent{Branch: "devops", Count: 0}, events[1])
}
