package aggregate

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	oerrors "github.com/lfrtheme/themelet/internal/errors"
)

// Copier copies the files below srcRoot that match a doublestar pattern
// into dstRoot, keeping their relative paths. It returns the destination
// paths written. A missing srcRoot copies nothing and is not an error.
type Copier interface {
	CopyTree(ctx context.Context, srcRoot, pattern, dstRoot string) ([]string, error)
}

// FSCopier is the Copier backed by the local filesystem.
type FSCopier struct{}

var _ Copier = FSCopier{}

// CopyTree implements Copier.
func (FSCopier) CopyTree(ctx context.Context, srcRoot, pattern, dstRoot string) ([]string, error) {
	info, err := os.Stat(srcRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, oerrors.WrapIO(err, "reading", srcRoot)
	}
	if !info.IsDir() {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(srcRoot), pattern,
		doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, oerrors.WrapIO(err, "listing", srcRoot)
	}
	slices.Sort(matches)

	written := make([]string, 0, len(matches))
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		src := filepath.Join(srcRoot, filepath.FromSlash(rel))
		dst := filepath.Join(dstRoot, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			return written, err
		}
		written = append(written, dst)
	}

	return written, nil
}

// copyFile copies src to dst, creating parent directories and keeping the
// file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return oerrors.WrapIO(err, "opening", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return oerrors.WrapIO(err, "reading", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return oerrors.WrapIO(err, "creating directory", filepath.Dir(dst))
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return oerrors.WrapIO(err, "creating", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return oerrors.WrapIO(err, "writing", dst)
	}
	if err := out.Close(); err != nil {
		return oerrors.WrapIO(err, "writing", dst)
	}

	return nil
}
