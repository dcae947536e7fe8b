// Package index holds the aggregate index: the unified, ordered collection of
// normalized documents across all six document types, and the builder that
// repopulates it when the active branch changes.
//
// # Contract
//
// The Store keeps one ordered snapshot per branch. Replace swaps the whole
// sequence by value; Snapshot returns a copy. Thread safety via sync.RWMutex.
//
// The Builder's Rebuild(ctx, branch):
//   - issues the six per-type fetches concurrently and waits for all of them,
//   - normalizes every raw document and resolves url-map connections,
//   - concatenates per-type results in the fixed order aclpolicies, tagrules,
//     urlmaps, flowcontrol, ratelimits, wafpolicies,
//   - treats a failed fetch as an empty collection for that type,
//   - is idempotent for unchanged backend data,
//   - discards its result when a newer Rebuild superseded it (request-token
//     staleness check), so the index always reflects the branch active at
//     resolution time.
package index
