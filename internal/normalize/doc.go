// Package normalize converts heterogeneous raw policy documents into the
// uniform NormalizedDocument shape the aggregate index and query engine
// operate on.
//
// # Contract
//
//	Normalize(raw types.RawDocument, docType types.DocType) types.NormalizedDocument
//	  - Pure function, no side effects, never fails.
//	  - Missing optional fields default to "" / empty slice.
//	  - Reads the correct source field per type (tag rules keep their
//	    description under "notes", rate limits under "description") and maps
//	    it to the single description facet.
//	  - Connection slices start empty; the connections package fills them in
//	    for urlmaps documents.
package normalize
