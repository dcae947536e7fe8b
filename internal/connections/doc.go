// Package connections computes which ACL, WAF, and rate-limit policies a
// url-map document references through its path entries.
//
// # Contract
//
//	Resolve(urlMapDoc types.RawDocument) Connections
//	  - Iterates the document's "map" entries in order.
//	  - A non-empty acl_profile / waf_profile / limit_ids id is appended to
//	    the matching result once; duplicates keep their first position.
//	  - acl_active / waf_active flags are ignored — entries reference
//	    policies even when the profile is disabled for that entry.
//	  - Malformed entries (missing "map", non-list limit_ids) contribute
//	    zero connections; Resolve never fails.
//
//	Apply(doc types.NormalizedDocument) types.NormalizedDocument
//	  - Fills the connection slices for urlmaps documents, passes every
//	    other type through untouched.
package connections
