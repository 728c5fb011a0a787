package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/routelens/routelens/internal/pathfilter"
	"github.com/routelens/routelens/pkg/types"
)

// DefaultMaxFiles caps how many candidates a single walk may return.
const DefaultMaxFiles = 1000

// Walker enumerates scan candidates under a root directory.
type Walker struct {
	filter   *pathfilter.Filter
	maxFiles int
}

// New creates a walker over the given filter. maxFiles <= 0 uses the default.
func New(filter *pathfilter.Filter, maxFiles int) *Walker {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return &Walker{filter: filter, maxFiles: maxFiles}
}

// Walk traverses root depth-first, directories before files, and returns the
// accepted candidates sorted lexicographically. Unreadable directories are
// recorded as warnings and skipped; they never abort the walk.
func (w *Walker) Walk(root string) ([]types.CandidateFile, []types.Diagnostic) {
	var (
		candidates []types.CandidateFile
		diags      []types.Diagnostic
	)

	w.walkDir(root, &candidates, &diags)

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})
	if len(candidates) > w.maxFiles {
		diags = append(diags, types.Diagnostic{
			Stage:    "walker",
			Severity: types.SeverityInfo,
			Path:     root,
			Message:  fmt.Sprintf("file limit reached, keeping first %d of %d candidates", w.maxFiles, len(candidates)),
		})
		candidates = candidates[:w.maxFiles]
	}
	return candidates, diags
}

func (w *Walker) walkDir(dir string, candidates *[]types.CandidateFile, diags *[]types.Diagnostic) {
	if len(*candidates) > w.maxFiles {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		*diags = append(*diags, types.Diagnostic{
			Stage:    "walker",
			Severity: types.SeverityWarning,
			Path:     dir,
			Message:  fmt.Sprintf("skipping unreadable directory: %v", err),
		})
		return
	}

	// Directories first so nested routes surface before sibling files,
	// then a stable name order inside each group.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if w.filter.AcceptDir(entry.Name()) {
				w.walkDir(path, candidates, diags)
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Stat failure is a reject, not an error.
			continue
		}
		if !w.filter.AcceptFile(path, info.Size()) {
			continue
		}

		*candidates = append(*candidates, types.CandidateFile{
			Path:      path,
			Size:      info.Size(),
			Extension: strings.ToLower(filepath.Ext(path)),
		})
	}
}
