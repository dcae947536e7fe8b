package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil777/curiefense/internal/connections"
	"github.com/phil777/curiefense/internal/normalize"
	"github.com/phil777/curiefense/internal/testutil"
	"github.com/phil777/curiefense/internal/types"
)

// fixtureIndex builds the aggregate sequence from the standard fixtures in
// the fixed type order.
func fixtureIndex() []types.NormalizedDocument {
	docs := []types.NormalizedDocument{}
	fixture := testutil.Documents()
	for _, docType := range types.AllDocTypes {
		for _, raw := range fixture[docType] {
			docs = append(docs, connections.Apply(normalize.Normalize(raw, docType)))
		}
	}
	return docs
}

func TestFilterEmptyTextMatchesAll(t *testing.T) {
	docs := fixtureIndex()

	for _, mode := range types.AllSearchModes {
		result := Filter(docs, types.SearchQuery{Mode: mode, Text: ""})
		assert.Len(t, result, 8, "mode %s", mode)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	docs := fixtureIndex()

	result := Filter(docs, types.SearchQuery{Mode: types.SearchModeAll, Text: ""})
	require.Len(t, result, len(docs))
	for i := range docs {
		assert.Equal(t, docs[i].ID, result[i].ID)
		assert.Equal(t, docs[i].DocType, result[i].DocType)
	}
}

func TestFilterByType(t *testing.T) {
	docs := fixtureIndex()

	result := Filter(docs, types.SearchQuery{Mode: types.SearchModeType, Text: "acl"})
	require.Len(t, result, 2)
	for _, d := range result {
		assert.Equal(t, types.DocTypeACLPolicies, d.DocType)
	}
}

func TestFilterByID(t *testing.T) {
	docs := fixtureIndex()

	result := Filter(docs, types.SearchQuery{Mode: types.SearchModeID, Text: "5828321c37e0"})
	require.Len(t, result, 1)
	assert.Equal(t, types.DocTypeACLPolicies, result[0].DocType)
}

func TestFilterByName(t *testing.T) {
	docs := fixtureIndex()

	result := Filter(docs, types.SearchQuery{Mode: types.SearchModeName, Text: "rate limit example"})
	require.Len(t, result, 1)
	assert.Equal(t, "f971e92459e2", result[0].ID)
}

func TestFilterByDescription(t *testing.T) {
	docs := fixtureIndex()

	result := Filter(docs, types.SearchQuery{Mode: types.SearchModeDescription, Text: "requests per minute"})
	require.Len(t, result, 1)
	assert.Equal(t, types.DocTypeRateLimits, result[0].DocType)
}

func TestFilterTagsModeIsolation(t *testing.T) {
	docs := fixtureIndex()

	// "china" appears as an ACL force_deny tag AND inside a tag rule's
	// notes. Tags mode must only match the tag facet.
	result := Filter(docs, types.SearchQuery{Mode: types.SearchModeTags, Text: "china"})
	require.Len(t, result, 1)
	assert.Equal(t, types.DocTypeACLPolicies, result[0].DocType)
	assert.Equal(t, "__default__", result[0].ID)

	// Description mode finds the tag rule instead.
	result = Filter(docs, types.SearchQuery{Mode: types.SearchModeDescription, Text: "china"})
	require.Len(t, result, 1)
	assert.Equal(t, types.DocTypeTagRules, result[0].DocType)
}

func TestFilterByConnections(t *testing.T) {
	docs := fixtureIndex()

	result := Filter(docs, types.SearchQuery{Mode: types.SearchModeConnections, Text: "f971e92459e2"})
	require.Len(t, result, 1, "only the url map references the rate limit")
	assert.Equal(t, types.DocTypeURLMaps, result[0].DocType)

	// The rate limit's own id matches in id mode but not in connections mode.
	result = Filter(docs, types.SearchQuery{Mode: types.SearchModeID, Text: "f971e92459e2"})
	require.Len(t, result, 1)
	assert.Equal(t, types.DocTypeRateLimits, result[0].DocType)
}

func TestFilterAllModeIsFacetUnion(t *testing.T) {
	docs := fixtureIndex()

	// "f971e92459e2" appears as the rate limit's id and as a url map
	// connection: all mode returns both.
	result := Filter(docs, types.SearchQuery{Mode: types.SearchModeAll, Text: "f971e92459e2"})
	assert.Len(t, result, 2)

	// "china" appears in a tag facet and in a description: both match.
	result = Filter(docs, types.SearchQuery{Mode: types.SearchModeAll, Text: "china"})
	assert.Len(t, result, 2)
}

func TestFilterCaseInsensitive(t *testing.T) {
	docs := fixtureIndex()

	upper := Filter(docs, types.SearchQuery{Mode: types.SearchModeTags, Text: "CHINA"})
	lower := Filter(docs, types.SearchQuery{Mode: types.SearchModeTags, Text: "china"})
	assert.Equal(t, lower, upper)
}

func TestFilterNoMatches(t *testing.T) {
	docs := fixtureIndex()

	result := Filter(docs, types.SearchQuery{Mode: types.SearchModeAll, Text: "no-such-needle"})
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestFilterModeSwitchSameIndex(t *testing.T) {
	// Switching mode with the same text re-evaluates against the unchanged
	// sequence, no rebuild involved.
	docs := fixtureIndex()

	byTags := Filter(docs, types.SearchQuery{Mode: types.SearchModeTags, Text: "default"})
	byName := Filter(docs, types.SearchQuery{Mode: types.SearchModeName, Text: "default"})

	assert.Empty(t, byTags)
	assert.NotEmpty(t, byName)
}
