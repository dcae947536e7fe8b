// Package query filters the aggregate index by faceted search queries.
//
// # Contract
//
//	Filter(docs []types.NormalizedDocument, q types.SearchQuery) []types.NormalizedDocument
//	  - Stable filter: matches keep the index's relative order.
//	  - Case-insensitive substring match; empty text matches everything.
//	  - Modes: all | type | id | name | description | tags | connections.
//	  - "all" is the union of the other facets, including connection ids on
//	    documents whose connection slices are always empty.
//
// Filtering is a pure, synchronous transformation; switching mode with the
// same text simply re-evaluates against the unchanged index.
package query
