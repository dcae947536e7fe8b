package connections

import (
	"github.com/phil777/curiefense/internal/types"
	"github.com/phil777/curiefense/internal/util"
)

// Connections holds the deduplicated policy ids a url-map document references
// through its path entries. Slices are never nil and preserve first-occurrence
// order across entries.
type Connections struct {
	ACL        []string
	WAF        []string
	RateLimits []string
}

// orderedSet collects unique strings in insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), items: []string{}}
}

// add appends the id unless it is empty or already present. The first
// occurrence keeps its position.
func (s *orderedSet) add(id string) {
	if id == "" {
		return
	}
	if _, exists := s.seen[id]; exists {
		return
	}
	s.seen[id] = struct{}{}
	s.items = append(s.items, id)
}

// Resolve walks a urlmaps document's "map" entries in order and collects the
// ACL, WAF, and rate-limit ids they reference. The acl_active/waf_active
// flags are ignored: an entry references its profiles whether or not they are
// currently enabled. Malformed entries contribute nothing; Resolve never
// fails.
func Resolve(urlMapDoc types.RawDocument) Connections {
	acl := newOrderedSet()
	waf := newOrderedSet()
	limits := newOrderedSet()

	for _, raw := range util.SafeSlice(urlMapDoc, "map") {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		acl.add(util.SafeString(entry, "acl_profile"))
		waf.add(util.SafeString(entry, "waf_profile"))
		for _, id := range util.SafeStringSlice(entry, "limit_ids") {
			limits.add(id)
		}
	}

	return Connections{
		ACL:        acl.items,
		WAF:        waf.items,
		RateLimits: limits.items,
	}
}

// Apply resolves connections for urlmaps documents and stores them on the
// normalized record. Documents of any other type pass through unchanged with
// their empty connection slices.
func Apply(doc types.NormalizedDocument) types.NormalizedDocument {
	if doc.DocType != types.DocTypeURLMaps {
		return doc
	}
	conns := Resolve(doc.Raw)
	doc.ConnectedACL = conns.ACL
	doc.ConnectedWAF = conns.WAF
	doc.ConnectedRateLimits = conns.RateLimits
	return doc
}
