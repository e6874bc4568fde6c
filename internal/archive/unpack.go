package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/scaffold"
)

// Unpack writes every file of tree beneath dir. dir must be missing or empty
// unless force is set. Files are opened without following symlinks.
func Unpack(tree *scaffold.FileTree, dir string, force bool) error {
	if dir == "" {
		return errors.NewInvalidRequest("output directory is required")
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid output directory: %v", err))
	}

	entries, err := os.ReadDir(root)
	switch {
	case err == nil && len(entries) > 0 && !force:
		return errors.NewFileExists(dir)
	case err != nil && !os.IsNotExist(err):
		return errors.NewArchiveFailed(err)
	}

	for _, f := range tree.Files() {
		if err := scaffold.ValidatePath(f.Path); err != nil {
			return errors.NewArchiveFailed(err)
		}
		target := filepath.Join(root, filepath.FromSlash(f.Path))
		if rel, err := filepath.Rel(root, target); err != nil || strings.HasPrefix(rel, "..") {
			return errors.NewArchiveFailed(fmt.Errorf("entry %s escapes %s", f.Path, dir))
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.NewArchiveFailed(err)
		}
		if err := writeNoFollow(target, []byte(f.Content), fileMode(f.Path), true); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes an archive to path. An existing file is only replaced when
// force is set.
func WriteFile(path string, data []byte, force bool) error {
	if path == "" {
		return errors.NewInvalidRequest("output path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewArchiveFailed(err)
		}
	}
	return writeNoFollow(path, data, 0o644, force)
}

func writeNoFollow(path string, data []byte, perm os.FileMode, force bool) error {
	flag := os.O_WRONLY | os.O_CREATE
	if force {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_EXCL
	}

	f, err := openFileNoFollow(path, flag, perm)
	if err != nil {
		if os.IsExist(err) {
			return errors.NewFileExists(path)
		}
		if _, ok := errors.As(err); ok {
			return err
		}
		return errors.NewArchiveFailed(err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.NewArchiveFailed(err)
	}
	if err := f.Close(); err != nil {
		return errors.NewArchiveFailed(err)
	}
	return nil
}
