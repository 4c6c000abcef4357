package filebrowser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo is one directory entry.
type FileInfo struct {
	Title  string `json:"title"`
	Path   string `json:"path"`
	IsFile bool   `json:"is_file"`
}

// Listing is a provider's answer for one path. Corrected, when set, is the
// canonical form of the requested path.
type Listing struct {
	Path      string
	Corrected string
	Entries   []FileInfo
}

// Provider lists directories. Implementations may block; the browser only
// ever calls them from commands.
type Provider interface {
	List(ctx context.Context, path string) (Listing, error)
}

// OSProvider lists the local filesystem.
type OSProvider struct {
	// ShowHidden includes dot entries.
	ShowHidden bool
}

// List reads path, directories first, each group sorted by name. The
// corrected path is the absolute, cleaned form of path.
func (p OSProvider) List(ctx context.Context, path string) (Listing, error) {
	if err := ctx.Err(); err != nil {
		return Listing{Path: path}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Listing{Path: path}, fmt.Errorf("resolve %s: %w", path, err)
	}
	dirents, err := os.ReadDir(abs)
	if err != nil {
		return Listing{Path: path}, fmt.Errorf("read %s: %w", abs, err)
	}
	entries := make([]FileInfo, 0, len(dirents))
	for _, d := range dirents {
		name := d.Name()
		if !p.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		isDir := d.IsDir()
		if d.Type()&os.ModeSymlink != 0 {
			if st, err := os.Stat(filepath.Join(abs, name)); err == nil {
				isDir = st.IsDir()
			}
		}
		entries = append(entries, FileInfo{Title: name, Path: filepath.Join(abs, name), IsFile: !isDir})
	}
	SortEntries(entries)
	listing := Listing{Path: path, Entries: entries}
	if abs != path {
		listing.Corrected = abs
	}
	return listing, nil
}

// SortEntries orders directories before files, then by case-folded title.
func SortEntries(entries []FileInfo) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsFile != b.IsFile {
			return !a.IsFile
		}
		la, lb := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if la != lb {
			return la < lb
		}
		return a.Title < b.Title
	})
}

// StaticProvider serves a fixed tree keyed by path.
type StaticProvider map[string][]FileInfo

func (s StaticProvider) List(_ context.Context, path string) (Listing, error) {
	entries, ok := s[path]
	if !ok {
		return Listing{Path: path}, nil
	}
	dup := make([]FileInfo, len(entries))
	copy(dup, entries)
	return Listing{Path: path, Entries: dup}, nil
}

// Parent returns the parent of path and whether one exists.
func Parent(path string) (string, bool) {
	clean := filepath.Clean(path)
	parent := filepath.Dir(clean)
	if parent == clean {
		return "", false
	}
	return parent, true
}
