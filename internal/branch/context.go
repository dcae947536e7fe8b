package branch

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/phil777/curiefense/internal/fetch"
	"github.com/phil777/curiefense/internal/types"
)

// OnSelectFunc is called whenever the active branch changes, with the newly
// selected branch id. The server wires this to the index builder's Rebuild.
type OnSelectFunc func(ctx context.Context, branch string)

// Context tracks the active configuration branch and the list of known
// branches. The listing is fetched once at startup and never cleared during
// the session; the selection changes only through Select.
type Context struct {
	logger   *zap.Logger
	lister   fetch.BranchLister
	onSelect OnSelectFunc

	mu       sync.RWMutex
	branches []types.Branch
	current  string
}

// New creates an unloaded branch context.
func New(logger *zap.Logger, lister fetch.BranchLister, onSelect OnSelectFunc) *Context {
	return &Context{
		logger:   logger.Named("branch"),
		lister:   lister,
		onSelect: onSelect,
		branches: []types.Branch{},
	}
}

// Load fetches the branch listing and selects the first branch returned, if
// any. A listing failure is absorbed: it logs a diagnostic and leaves the
// context branchless, so the aggregate index stays empty until a branch
// becomes available.
func (c *Context) Load(ctx context.Context) {
	branches, err := c.lister.ListBranches(ctx)
	if err != nil {
		c.logger.Error("Error while attempting to get configs", zap.Error(err))
		return
	}

	c.mu.Lock()
	c.branches = branches
	c.mu.Unlock()

	if len(branches) == 0 {
		c.logger.Warn("Branch listing returned no branches")
		return
	}
	c.selectBranch(ctx, branches[0].ID)
}

// Select makes the given branch active and triggers an index rebuild. The id
// must be one of the known branches.
func (c *Context) Select(ctx context.Context, id string) error {
	c.mu.RLock()
	known := false
	for _, b := range c.branches {
		if b.ID == id {
			known = true
			break
		}
	}
	c.mu.RUnlock()

	if !known {
		return fmt.Errorf("unknown branch %q", id)
	}
	c.selectBranch(ctx, id)
	return nil
}

func (c *Context) selectBranch(ctx context.Context, id string) {
	c.mu.Lock()
	c.current = id
	c.mu.Unlock()

	c.logger.Info("Branch selected", zap.String("branch", id))
	if c.onSelect != nil {
		c.onSelect(ctx, id)
	}
}

// Refresh re-triggers a rebuild for the active branch, picking up backend
// edits without switching branches. Returns an error when no branch is
// selected.
func (c *Context) Refresh(ctx context.Context) error {
	current := c.Current()
	if current == "" {
		return fmt.Errorf("no branch selected")
	}
	c.logger.Info("Refreshing branch", zap.String("branch", current))
	if c.onSelect != nil {
		c.onSelect(ctx, current)
	}
	return nil
}

// Current returns the active branch id, or "" when no branch is selected.
func (c *Context) Current() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Branches returns a copy of the known branch list.
func (c *Context) Branches() []types.Branch {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]types.Branch, len(c.branches))
	copy(result, c.branches)
	return result
}
