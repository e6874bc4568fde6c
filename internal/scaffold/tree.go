package scaffold

import (
	"fmt"
	"strings"
)

// File is one entry of a FileTree.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// FileTree is an ordered mapping from relative, forward-slash paths to text
// content. Setting an existing path replaces its content but keeps its
// original position.
type FileTree struct {
	order []string
	files map[string]string
}

// NewFileTree returns an empty tree.
func NewFileTree() *FileTree {
	return &FileTree{files: make(map[string]string)}
}

// Set writes content at path. The last write for a path wins.
func (t *FileTree) Set(path, content string) {
	if _, ok := t.files[path]; !ok {
		t.order = append(t.order, path)
	}
	t.files[path] = content
}

// Get returns the content at path.
func (t *FileTree) Get(path string) (string, bool) {
	c, ok := t.files[path]
	return c, ok
}

// Has reports whether path exists.
func (t *FileTree) Has(path string) bool {
	_, ok := t.files[path]
	return ok
}

// Len returns the number of files.
func (t *FileTree) Len() int {
	return len(t.order)
}

// Paths returns the paths in insertion order.
func (t *FileTree) Paths() []string {
	return append([]string(nil), t.order...)
}

// Files returns every entry in insertion order.
func (t *FileTree) Files() []File {
	out := make([]File, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, File{Path: p, Content: t.files[p]})
	}
	return out
}

// Size returns the total content length in bytes.
func (t *FileTree) Size() int {
	n := 0
	for _, c := range t.files {
		n += len(c)
	}
	return n
}

// Clone returns an independent copy.
func (t *FileTree) Clone() *FileTree {
	c := &FileTree{
		order: append([]string(nil), t.order...),
		files: make(map[string]string, len(t.files)),
	}
	for k, v := range t.files {
		c.files[k] = v
	}
	return c
}

// Equal reports whether both trees hold the same paths, in the same order,
// with identical content.
func (t *FileTree) Equal(other *FileTree) bool {
	if t.Len() != other.Len() {
		return false
	}
	for i, p := range t.order {
		if other.order[i] != p || other.files[p] != t.files[p] {
			return false
		}
	}
	return true
}

// Validate checks every path with ValidatePath.
func (t *FileTree) Validate() error {
	for _, p := range t.order {
		if err := ValidatePath(p); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePath rejects empty, absolute, backslash, and parent-relative paths.
func ValidatePath(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("empty path")
	case strings.HasPrefix(p, "/"):
		return fmt.Errorf("path %q must be relative", p)
	case strings.Contains(p, `\`):
		return fmt.Errorf("path %q must use forward slashes", p)
	case strings.HasSuffix(p, "/"):
		return fmt.Errorf("path %q names a directory", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("path %q has an empty or relative segment", p)
		}
	}
	return nil
}
