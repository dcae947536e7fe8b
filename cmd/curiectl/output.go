package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// Result types that mirror the server's wire formats.

// BranchesResult is the result of the branches command.
type BranchesResult struct {
	Current  string       `json:"current"`
	Branches []BranchInfo `json:"branches"`
}

// BranchInfo represents one branch in listing results.
type BranchInfo struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// SearchResult is the result of the search command.
type SearchResult struct {
	Branch    string         `json:"branch"`
	Total     int            `json:"total"`
	Documents []DocumentInfo `json:"documents"`
}

// DocumentInfo represents a normalized document in search results.
type DocumentInfo struct {
	ID                  string   `json:"id"`
	DocType             string   `json:"docType"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Tags                []string `json:"tags"`
	ConnectedACL        []string `json:"connectedACL"`
	ConnectedWAF        []string `json:"connectedWAF"`
	ConnectedRateLimits []string `json:"connectedRateLimits"`
}

// LinkResult is the result of the link command.
type LinkResult struct {
	DocType string `json:"docType"`
	ID      string `json:"id"`
	Path    string `json:"path"`
}

// StatusResult is the result of the select and refresh commands.
type StatusResult struct {
	Status string `json:"status"`
	Branch string `json:"branch,omitempty"`
}

func renderBranches(result BranchesResult) error {
	if outputFmt == "json" {
		return printJSON(result)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVERSION\tDESCRIPTION\tACTIVE")
	for _, b := range result.Branches {
		active := ""
		if b.ID == result.Current {
			active = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Version, b.Description, active)
	}
	return w.Flush()
}

func renderSearch(result SearchResult) error {
	if outputFmt == "json" {
		return printJSON(result)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tID\tNAME\tDESCRIPTION\tTAGS\tCONNECTIONS")
	for _, d := range result.Documents {
		connections := append([]string{}, d.ConnectedACL...)
		connections = append(connections, d.ConnectedWAF...)
		connections = append(connections, d.ConnectedRateLimits...)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.DocType, d.ID, d.Name, truncate(d.Description, 40),
			strings.Join(d.Tags, ","), strings.Join(connections, ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d documents (branch %s)\n", result.Total, result.Branch)
	return nil
}

func renderLink(result LinkResult) error {
	if outputFmt == "json" {
		return printJSON(result)
	}
	fmt.Println(result.Path)
	return nil
}

func renderStatus(result StatusResult, message string) error {
	if outputFmt == "json" {
		return printJSON(result)
	}
	fmt.Println(message)
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// truncate shortens a string for table display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
