package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// branchesCmd lists the branches known to the server.
func branchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branches",
		Short: "List configuration branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BranchesResult
			if err := getJSON(serverURL+"/api/v1/branches", &result); err != nil {
				return err
			}
			return renderBranches(result)
		},
	}
}

// searchCmd runs a faceted search against the aggregate index.
func searchCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search the document index",
		Long: `Search the aggregate document index of the active branch.

Empty text matches every document. The mode selects which facet the
text is matched against.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			u := fmt.Sprintf("%s/api/v1/search?mode=%s&q=%s",
				serverURL, url.QueryEscape(mode), url.QueryEscape(text))

			var result SearchResult
			if err := getJSON(u, &result); err != nil {
				return err
			}
			return renderSearch(result)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "all", "Search mode: all, type, id, name, description, tags, connections")
	return cmd
}

// linkCmd resolves the edit-view path for a document.
func linkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <doctype> <id>",
		Short: "Print the edit-view path for a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := fmt.Sprintf("%s/api/v1/documents/link?type=%s&id=%s",
				serverURL, url.QueryEscape(args[0]), url.QueryEscape(args[1]))

			var result LinkResult
			if err := getJSON(u, &result); err != nil {
				return err
			}
			return renderLink(result)
		},
	}
}

// selectCmd switches the server's active branch.
func selectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <branch>",
		Short: "Select the active configuration branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := fmt.Sprintf(`{"branch": %q}`, args[0])
			if err := postJSON(serverURL+"/api/v1/branches/select", body); err != nil {
				return err
			}
			return renderStatus(
				StatusResult{Status: "selected", Branch: args[0]},
				fmt.Sprintf("Switched to branch %s", args[0]),
			)
		},
	}
}

// refreshCmd refetches the active branch's documents.
func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the index from the active branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postJSON(serverURL+"/api/v1/refresh", ""); err != nil {
				return err
			}
			return renderStatus(StatusResult{Status: "refreshed"}, "Index refreshed")
		},
	}
}

// postJSON sends a POST with an optional JSON body and checks the status.
func postJSON(u, body string) error {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(u, "application/json", strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

// getJSON fetches a URL and decodes the JSON response.
func getJSON(u string, out interface{}) error {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(u)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
