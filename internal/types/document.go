package types

import "fmt"

// DocType identifies one of the six policy document collections served by the
// configuration backend.
type DocType string

const (
	DocTypeACLPolicies DocType = "aclpolicies"
	DocTypeTagRules    DocType = "tagrules"
	DocTypeURLMaps     DocType = "urlmaps"
	DocTypeFlowControl DocType = "flowcontrol"
	DocTypeRateLimits  DocType = "ratelimits"
	DocTypeWAFPolicies DocType = "wafpolicies"
)

// AllDocTypes lists every document type in fetch/merge order. The aggregate
// index concatenates per-type results in exactly this order.
var AllDocTypes = []DocType{
	DocTypeACLPolicies,
	DocTypeTagRules,
	DocTypeURLMaps,
	DocTypeFlowControl,
	DocTypeRateLimits,
	DocTypeWAFPolicies,
}

// ParseDocType validates a document type string.
func ParseDocType(s string) (DocType, error) {
	for _, dt := range AllDocTypes {
		if string(dt) == s {
			return dt, nil
		}
	}
	return "", fmt.Errorf("unknown document type %q", s)
}

// RawDocument is a policy document exactly as the backend serves it. Schemas
// differ per document type, so access goes through the util map helpers.
type RawDocument map[string]interface{}

// NormalizedDocument is the uniform, searchable representation of any raw
// document. One NormalizedDocument exists per raw document; DocType never
// changes after creation.
type NormalizedDocument struct {
	ID          string   `json:"id"`
	DocType     DocType  `json:"docType"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`

	// Connection ids referenced by url-map entries. Empty (never nil) for
	// every type other than urlmaps. Each slice is deduplicated in
	// first-occurrence order.
	ConnectedACL        []string `json:"connectedACL"`
	ConnectedWAF        []string `json:"connectedWAF"`
	ConnectedRateLimits []string `json:"connectedRateLimits"`

	// Raw is the original document, kept for rendering. Stripped before
	// the document goes over the wire.
	Raw RawDocument `json:"-"`
}

// Branch describes one line of configuration history as returned by the
// backend's config listing.
type Branch struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// EditPath returns the console route for a document's edit view. The engine
// only supplies the target identity; navigation itself belongs to the UI.
func EditPath(branch string, docType DocType, id string) string {
	return fmt.Sprintf("/config/%s/%s/%s", branch, docType, id)
}
