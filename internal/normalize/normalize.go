package normalize

import (
	"github.com/phil777/curiefense/internal/types"
	"github.com/phil777/curiefense/internal/util"
)

// fieldMapping describes where a document type keeps its searchable fields.
// Schemas differ per type (tag rules carry "notes" where rate limits carry
// "description"), so the mapping is an explicit per-type table rather than
// runtime field probing.
type fieldMapping struct {
	descriptionKey string
	tagKeys        []string
}

// fieldMappings covers all six document types. An absent key means the type
// has no such facet and the field normalizes to its empty value.
var fieldMappings = map[types.DocType]fieldMapping{
	types.DocTypeACLPolicies: {
		// ACL profiles have no free-text description; their operation tag
		// lists become the searchable tags facet.
		tagKeys: []string{"allow", "allow_bot", "deny_bot", "bypass", "force_deny", "deny"},
	},
	types.DocTypeTagRules: {
		descriptionKey: "notes",
		tagKeys:        []string{"tags"},
	},
	types.DocTypeURLMaps: {},
	types.DocTypeFlowControl: {
		descriptionKey: "notes",
		tagKeys:        []string{"include", "exclude"},
	},
	types.DocTypeRateLimits: {
		descriptionKey: "description",
	},
	types.DocTypeWAFPolicies: {},
}

// Normalize converts a raw backend document into the uniform searchable
// record, tagged with its source type. It is pure and never fails: missing
// optional fields default to the empty string or an empty slice.
func Normalize(raw types.RawDocument, docType types.DocType) types.NormalizedDocument {
	mapping := fieldMappings[docType]

	// A tag can recur across the contributing lists (an ACL may carry the
	// same tag in allow and deny); the merged facet keeps one copy in
	// first-occurrence order.
	tags := []string{}
	for _, key := range mapping.tagKeys {
		tags = append(tags, util.SafeStringSlice(raw, key)...)
	}
	tags = util.UniqueStrings(tags)

	description := ""
	if mapping.descriptionKey != "" {
		description = util.SafeString(raw, mapping.descriptionKey)
	}

	return types.NormalizedDocument{
		ID:                  util.SafeString(raw, "id"),
		DocType:             docType,
		Name:                util.SafeString(raw, "name"),
		Description:         description,
		Tags:                tags,
		ConnectedACL:        []string{},
		ConnectedWAF:        []string{},
		ConnectedRateLimits: []string{},
		Raw:                 raw,
	}
}
