// Package archive converts file trees to and from ZIP archives and unpacks
// them onto disk.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/scaffold"
)

// ContentType is the MIME type of a serialized archive.
const ContentType = "application/zip"

// Limits applied when reading archives from untrusted sources.
const (
	MaxEntryBytes   = 8 << 20
	MaxArchiveBytes = 64 << 20
)

// modTime is stamped on every entry so equal trees serialize to equal bytes.
var modTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Serialize writes tree as a deflated ZIP in tree order. Directories are
// implied by entry paths.
func Serialize(tree *scaffold.FileTree) ([]byte, error) {
	if tree == nil || tree.Len() == 0 {
		return nil, errors.NewArchiveFailed(fmt.Errorf("file tree is empty"))
	}
	if err := tree.Validate(); err != nil {
		return nil, errors.NewArchiveFailed(err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range tree.Files() {
		hdr := &zip.FileHeader{
			Name:     f.Path,
			Method:   zip.Deflate,
			Modified: modTime,
		}
		hdr.SetMode(fileMode(f.Path))

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, errors.NewArchiveFailed(fmt.Errorf("add %s: %w", f.Path, err))
		}
		if _, err := io.WriteString(w, f.Content); err != nil {
			return nil, errors.NewArchiveFailed(fmt.Errorf("write %s: %w", f.Path, err))
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.NewArchiveFailed(err)
	}
	return buf.Bytes(), nil
}

// Extract reads a ZIP archive back into a tree, in archive order. Directory
// entries are skipped; unsafe or oversized entries fail the whole read.
func Extract(data []byte) (*scaffold.FileTree, error) {
	if len(data) > MaxArchiveBytes {
		return nil, errors.NewArchiveFailed(fmt.Errorf("archive exceeds %d bytes", MaxArchiveBytes))
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.NewArchiveFailed(fmt.Errorf("read archive: %w", err))
	}

	tree := scaffold.NewFileTree()
	var total int64
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		if err := scaffold.ValidatePath(f.Name); err != nil {
			return nil, errors.NewArchiveFailed(fmt.Errorf("unsafe entry: %w", err))
		}

		content, err := readEntry(f)
		if err != nil {
			return nil, errors.NewArchiveFailed(fmt.Errorf("read %s: %w", f.Name, err))
		}
		total += int64(len(content))
		if total > MaxArchiveBytes {
			return nil, errors.NewArchiveFailed(fmt.Errorf("archive expands beyond %d bytes", MaxArchiveBytes))
		}
		tree.Set(f.Name, string(content))
	}
	return tree, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, MaxEntryBytes+1))
	if err != nil {
		return nil, err
	}
	if len(content) > MaxEntryBytes {
		return nil, fmt.Errorf("entry exceeds %d bytes", MaxEntryBytes)
	}
	return content, nil
}

// fileMode marks git hook scripts executable.
func fileMode(path string) fs.FileMode {
	if strings.HasPrefix(path, ".husky/") {
		return 0o755
	}
	return 0o644
}
