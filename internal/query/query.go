package query

import (
	"github.com/phil777/curiefense/internal/types"
	"github.com/phil777/curiefense/internal/util"
)

// Filter returns the documents matching the query, preserving the index's
// relative order (stable filter, no resort). All matching is case-insensitive
// substring; empty query text matches every document.
func Filter(docs []types.NormalizedDocument, q types.SearchQuery) []types.NormalizedDocument {
	result := []types.NormalizedDocument{}
	for _, doc := range docs {
		if Matches(doc, q) {
			result = append(result, doc)
		}
	}
	return result
}

// Matches reports whether a single document satisfies the query.
func Matches(doc types.NormalizedDocument, q types.SearchQuery) bool {
	if q.Text == "" {
		return true
	}
	switch q.Mode {
	case types.SearchModeType:
		return util.ContainsFold(string(doc.DocType), q.Text)
	case types.SearchModeID:
		return util.ContainsFold(doc.ID, q.Text)
	case types.SearchModeName:
		return util.ContainsFold(doc.Name, q.Text)
	case types.SearchModeDescription:
		return util.ContainsFold(doc.Description, q.Text)
	case types.SearchModeTags:
		return anyContainsFold(doc.Tags, q.Text)
	case types.SearchModeConnections:
		return matchesConnections(doc, q.Text)
	default:
		// SearchModeAll: the union of every other facet. Connection ids are
		// checked for every type even though only urlmaps carry any.
		return util.ContainsFold(doc.ID, q.Text) ||
			util.ContainsFold(string(doc.DocType), q.Text) ||
			util.ContainsFold(doc.Name, q.Text) ||
			util.ContainsFold(doc.Description, q.Text) ||
			anyContainsFold(doc.Tags, q.Text) ||
			matchesConnections(doc, q.Text)
	}
}

func matchesConnections(doc types.NormalizedDocument, text string) bool {
	return anyContainsFold(doc.ConnectedACL, text) ||
		anyContainsFold(doc.ConnectedWAF, text) ||
		anyContainsFold(doc.ConnectedRateLimits, text)
}

func anyContainsFold(values []string, text string) bool {
	for _, v := range values {
		if util.ContainsFold(v, text) {
			return true
		}
	}
	return false
}
