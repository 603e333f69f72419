package display

import (
	"path/filepath"
	"sort"

	"github.com/disiqueira/gotree/v3"
)

// FileTree renders the set of newly placed files as an ASCII directory
// tree for the end-of-run report. Paths are inserted relative to the
// destination root.
type FileTree struct {
	paths []string
}

// NewFileTree returns an empty tree collector.
func NewFileTree() *FileTree {
	return &FileTree{}
}

// Add records one placed path (relative to the destination root).
func (t *FileTree) Add(relPath string) {
	t.paths = append(t.paths, relPath)
}

// Len reports how many files have been recorded.
func (t *FileTree) Len() int { return len(t.paths) }

// Render returns the tree as printable text rooted at rootLabel. Insertion
// order does not matter; output is sorted for stable display.
func (t *FileTree) Render(rootLabel string) string {
	root := gotree.New(rootLabel)
	dirs := map[string]gotree.Tree{".": root}

	sorted := append([]string(nil), t.paths...)
	sort.Strings(sorted)

	var dirNode func(dir string) gotree.Tree
	dirNode = func(dir string) gotree.Tree {
		if node, ok := dirs[dir]; ok {
			return node
		}
		parent := dirNode(filepath.Dir(dir))
		node := parent.Add(filepath.Base(dir))
		dirs[dir] = node
		return node
	}

	for _, p := range sorted {
		dirNode(filepath.Dir(p)).Add(filepath.Base(p))
	}
	return root.Print()
}
