// Package testutil provides shared test fixtures and a fake backend for the
// console engine. Import this in test files to avoid duplicating document
// fixtures and fetcher fakes.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/phil777/curiefense/internal/types"
)

// ParseDocs decodes a JSON array into raw documents. Panics on malformed
// JSON: fixtures are compile-time constants and a typo should fail loudly.
func ParseDocs(jsonArray string) []types.RawDocument {
	var docs []types.RawDocument
	if err := json.Unmarshal([]byte(jsonArray), &docs); err != nil {
		panic(fmt.Sprintf("bad fixture: %v", err))
	}
	return docs
}

// ParseDoc decodes a single JSON object into a raw document.
func ParseDoc(jsonObject string) types.RawDocument {
	var doc types.RawDocument
	if err := json.Unmarshal([]byte(jsonObject), &doc); err != nil {
		panic(fmt.Sprintf("bad fixture: %v", err))
	}
	return doc
}

// Branches returns the standard two-branch fixture.
func Branches() []types.Branch {
	return []types.Branch{
		{ID: "prod", Version: "1662043d", Description: "production branch"},
		{ID: "devops", Version: "0ff599f7", Description: "devops sandbox"},
	}
}

// Documents returns the standard per-type document fixture: 2 aclpolicies,
// 2 tagrules, 1 urlmaps, 1 flowcontrol, 1 ratelimits, 1 wafpolicies.
//
// The url map references ACL 5828321c37e0 twice (once with acl_active false)
// and __default__ once, WAF __default__ on every entry, and rate limit
// f971e92459e2 twice, so connection resolution dedup is exercised end to end.
func Documents() map[types.DocType][]types.RawDocument {
	return map[types.DocType][]types.RawDocument{
		types.DocTypeACLPolicies: ParseDocs(`[
			{"id": "__default__", "name": "default-acl",
			 "allow": [], "allow_bot": ["google"], "deny_bot": [],
			 "bypass": ["internal"], "force_deny": ["china"], "deny": ["tor"]},
			{"id": "5828321c37e0", "name": "an-acl-policy",
			 "allow": ["all"], "allow_bot": [], "deny_bot": [],
			 "bypass": [], "force_deny": [], "deny": []}
		]`),
		types.DocTypeTagRules: ParseDocs(`[
			{"id": "xlbp148c", "name": "API Discovery", "notes": "Tag API requests",
			 "active": true, "tags": ["api"]},
			{"id": "07656fbe", "name": "devop internal demo",
			 "notes": "this is my own list of the china region",
			 "active": false, "tags": ["internal", "devops"]}
		]`),
		types.DocTypeURLMaps: ParseDocs(`[
			{"id": "__default__", "name": "default entry", "match": "__default__",
			 "map": [
				{"name": "admin", "match": "/admin/",
				 "acl_profile": "5828321c37e0", "acl_active": false,
				 "waf_profile": "__default__", "waf_active": true,
				 "limit_ids": ["f971e92459e2"]},
				{"name": "default", "match": "/",
				 "acl_profile": "__default__", "acl_active": true,
				 "waf_profile": "__default__", "waf_active": false,
				 "limit_ids": []},
				{"name": "duplicate", "match": "/dup/",
				 "acl_profile": "5828321c37e0", "acl_active": true,
				 "waf_profile": "__default__", "waf_active": true,
				 "limit_ids": ["f971e92459e2"]}
			 ]}
		]`),
		types.DocTypeFlowControl: ParseDocs(`[
			{"id": "c03dabe4b9ca", "name": "flow control", "ttl": 60,
			 "include": ["all"], "exclude": [],
			 "notes": "New Flow Control Notes and Remarks"}
		]`),
		types.DocTypeRateLimits: ParseDocs(`[
			{"id": "f971e92459e2", "name": "Rate Limit Example Rule (5/60)",
			 "description": "5 requests per minute", "ttl": "60", "limit": "5"}
		]`),
		types.DocTypeWAFPolicies: ParseDocs(`[
			{"id": "__default__", "name": "default waf", "ignore_alphanum": true}
		]`),
	}
}

// FakeBackend implements fetch.BranchLister and fetch.DocumentFetcher for
// tests. Fetches for a branch with a gate block until the gate channel is
// closed, which lets tests stage in-flight rebuild races.
type FakeBackend struct {
	mu sync.Mutex

	BranchList  []types.Branch
	BranchesErr error

	// Docs maps branch → docType → documents. A missing branch or type
	// yields an empty slice.
	Docs map[string]map[types.DocType][]types.RawDocument

	// FetchErr fails every fetch for the given document type.
	FetchErr map[types.DocType]error

	// Gates maps branch → gate. When set, FetchDocuments for that branch
	// blocks until the gate's release channel is closed.
	Gates map[string]*gate
}

type gate struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

// NewFakeBackend creates a FakeBackend pre-loaded with the standard fixtures
// on the "prod" branch.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		BranchList: Branches(),
		Docs: map[string]map[types.DocType][]types.RawDocument{
			"prod": Documents(),
		},
	}
}

// ListBranches implements fetch.BranchLister.
func (f *FakeBackend) ListBranches(ctx context.Context) ([]types.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BranchesErr != nil {
		return nil, f.BranchesErr
	}
	return f.BranchList, nil
}

// FetchDocuments implements fetch.DocumentFetcher.
func (f *FakeBackend) FetchDocuments(ctx context.Context, branch string, docType types.DocType) ([]types.RawDocument, error) {
	f.mu.Lock()
	g := f.Gates[branch]
	f.mu.Unlock()
	if g != nil {
		g.once.Do(func() { close(g.started) })
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.FetchErr[docType]; err != nil {
		return nil, err
	}
	return f.Docs[branch][docType], nil
}

// SetGate installs a gate for the branch. The returned release channel
// unblocks held fetches when closed; the started channel closes as soon as
// the first fetch for the branch is in flight.
func (f *FakeBackend) SetGate(branch string) (release chan struct{}, started chan struct{}) {
	g := &gate{
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	f.mu.Lock()
	if f.Gates == nil {
		f.Gates = make(map[string]*gate)
	}
	f.Gates[branch] = g
	f.mu.Unlock()
	return g.release, g.started
}
