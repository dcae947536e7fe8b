package types

import "fmt"

// SearchMode selects which facet of a NormalizedDocument a query matches
// against.
type SearchMode string

const (
	SearchModeAll         SearchMode = "all"
	SearchModeType        SearchMode = "type"
	SearchModeID          SearchMode = "id"
	SearchModeName        SearchMode = "name"
	SearchModeDescription SearchMode = "description"
	SearchModeTags        SearchMode = "tags"
	SearchModeConnections SearchMode = "connections"
)

// AllSearchModes lists every supported search mode.
var AllSearchModes = []SearchMode{
	SearchModeAll,
	SearchModeType,
	SearchModeID,
	SearchModeName,
	SearchModeDescription,
	SearchModeTags,
	SearchModeConnections,
}

// ParseSearchMode validates a search mode string. The empty string maps to
// SearchModeAll so callers can omit the mode entirely.
func ParseSearchMode(s string) (SearchMode, error) {
	if s == "" {
		return SearchModeAll, nil
	}
	for _, m := range AllSearchModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown search mode %q", s)
}

// SearchQuery is a single faceted search request. Text is matched
// case-insensitively as a substring; empty text matches every document.
type SearchQuery struct {
	Mode SearchMode `json:"mode"`
	Text string     `json:"text"`
}
