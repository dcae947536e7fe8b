package connections

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil777/curiefense/internal/testutil"
	"github.com/phil777/curiefense/internal/types"
)

func TestResolveDeduplicatesInEntryOrder(t *testing.T) {
	doc := testutil.ParseDoc(`{
		"id": "__default__",
		"map": [
			{"acl_profile": "5828321c37e0", "acl_active": false,
			 "waf_profile": "__default__", "waf_active": true,
			 "limit_ids": ["f971e92459e2"]},
			{"acl_profile": "__default__", "acl_active": true,
			 "waf_profile": "__default__", "waf_active": false,
			 "limit_ids": []},
			{"acl_profile": "5828321c37e0", "acl_active": true,
			 "waf_profile": "__default__", "waf_active": true,
			 "limit_ids": ["f971e92459e2"]}
		]
	}`)

	conns := Resolve(doc)

	assert.Equal(t, []string{"5828321c37e0", "__default__"}, conns.ACL)
	assert.Equal(t, []string{"__default__"}, conns.WAF)
	assert.Equal(t, []string{"f971e92459e2"}, conns.RateLimits)
}

func TestResolveEntryOrderWinsPosition(t *testing.T) {
	// Same ids referenced in the opposite entry order flip the result order.
	doc := testutil.ParseDoc(`{
		"map": [
			{"acl_profile": "__default__"},
			{"acl_profile": "5828321c37e0"},
			{"acl_profile": "__default__"}
		]
	}`)

	conns := Resolve(doc)

	assert.Equal(t, []string{"__default__", "5828321c37e0"}, conns.ACL)
}

func TestResolveIgnoresActiveFlags(t *testing.T) {
	// An entry references its profiles even when they are disabled for it.
	doc := testutil.ParseDoc(`{
		"map": [
			{"acl_profile": "inactive-acl", "acl_active": false,
			 "waf_profile": "inactive-waf", "waf_active": false}
		]
	}`)

	conns := Resolve(doc)

	assert.Equal(t, []string{"inactive-acl"}, conns.ACL)
	assert.Equal(t, []string{"inactive-waf"}, conns.WAF)
}

func TestResolveEmptyProfilesContributeNothing(t *testing.T) {
	doc := testutil.ParseDoc(`{
		"map": [
			{"acl_profile": "", "waf_profile": "", "limit_ids": []},
			{"match": "/no-profiles/"}
		]
	}`)

	conns := Resolve(doc)

	assert.Empty(t, conns.ACL)
	assert.Empty(t, conns.WAF)
	assert.Empty(t, conns.RateLimits)
	assert.NotNil(t, conns.ACL, "empty results are slices, not nil")
}

func TestResolveMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing map", `{"id": "x"}`},
		{"map not a list", `{"map": "nope"}`},
		{"entry not an object", `{"map": ["nope", 42]}`},
		{"limit_ids not a list", `{"map": [{"limit_ids": "nope"}]}`},
		{"profile not a string", `{"map": [{"acl_profile": 42, "waf_profile": true}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conns := Resolve(testutil.ParseDoc(tt.doc))

			assert.Empty(t, conns.ACL)
			assert.Empty(t, conns.WAF)
			assert.Empty(t, conns.RateLimits)
		})
	}
}

func TestApplyOnlyTouchesURLMaps(t *testing.T) {
	raw := testutil.ParseDoc(`{"id": "m", "map": [{"acl_profile": "a1"}]}`)

	urlmap := types.NormalizedDocument{
		ID: "m", DocType: types.DocTypeURLMaps, Raw: raw,
		ConnectedACL: []string{}, ConnectedWAF: []string{}, ConnectedRateLimits: []string{},
	}
	resolved := Apply(urlmap)
	assert.Equal(t, []string{"a1"}, resolved.ConnectedACL)

	// Non-urlmap documents pass through with empty connections even if the
	// raw document happens to carry a map field.
	acl := types.NormalizedDocument{
		ID: "m", DocType: types.DocTypeACLPolicies, Raw: raw,
		ConnectedACL: []string{}, ConnectedWAF: []string{}, ConnectedRateLimits: []string{},
	}
	passed := Apply(acl)
	assert.Empty(t, passed.ConnectedACL)
}
