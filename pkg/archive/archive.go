package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/jdcrensh/sftemplate/pkg/logging"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// FileFilter returns true if a path, relative to the archived directory,
// should be left out of the archive
type FileFilter func(rel string, fi os.FileInfo) bool

// IgnoreFilter returns a FileFilter excluding paths matched by the given
// gitignore patterns. Blank lines and comments are skipped.
func IgnoreFilter(patterns []string) FileFilter {
	var ps []gitignore.Pattern
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(p, nil))
	}
	if len(ps) == 0 {
		return nil
	}

	matcher := gitignore.NewMatcher(ps)
	return func(rel string, fi os.FileInfo) bool {
		return matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), fi.IsDir())
	}
}

// Result describes a written archive
type Result struct {
	Path    string
	Entries int
	Size    int64
}

// Zip atomically archives dir into dest. Entry names are relative to dir and
// directories get their own entries. The archive is written to a temporary
// file next to dest and renamed into place, so a failed run never leaves a
// partial archive behind.
func Zip(ctx context.Context, fs afero.Fs, dir, dest string, filter FileFilter) (res *Result, err error) {
	logger := logging.GetLogger("archive")

	if fi, statErr := fs.Stat(dir); statErr != nil || !fi.IsDir() {
		return nil, errors.Newf(errors.ErrArchive, "invalid dir path: %s", dir).
			WithDetail("dir", dir)
	}

	if err := fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchive, "failed to create directory for %s", dest)
	}

	tf, err := afero.TempFile(fs, filepath.Dir(dest), "."+filepath.Base(dest)+"-*")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchive, "failed to create temp file for %s", dest)
	}
	tmpName := tf.Name()
	defer func() {
		if err != nil {
			_ = fs.Remove(tmpName)
		}
	}()

	skip := map[string]bool{
		filepath.Clean(tmpName): true,
		filepath.Clean(dest):    true,
	}

	entries := 0
	zw := zip.NewWriter(tf)
	walkErr := afero.Walk(fs, dir, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		// Ignore anything that is not a file or directory e.g. symlinks
		if m := fi.Mode(); !(m.IsRegular() || m.IsDir()) {
			return nil
		}
		if skip[filepath.Clean(p)] {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if filter != nil && filter(rel, fi) {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		header, err := zip.FileInfoHeader(fi)
		if err != nil {
			return err
		}
		sanitizeHeader(rel, fi, header)

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		entries++

		if fi.IsDir() {
			return nil
		}
		f, err := fs.Open(p)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
	if walkErr != nil {
		zw.Close()
		tf.Close()
		return nil, errors.Wrapf(walkErr, errors.ErrArchive, "failed to archive %s", dir).
			WithDetail("dir", dir)
	}

	if err := zw.Close(); err != nil {
		tf.Close()
		return nil, errors.Wrapf(err, errors.ErrArchive, "failed to finish archive %s", dest)
	}
	if err := tf.Close(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchive, "failed to close archive %s", dest)
	}

	if err := fs.Rename(tmpName, dest); err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchive, "failed to move archive into place at %s", dest)
	}

	res = &Result{Path: dest, Entries: entries}
	if fi, statErr := fs.Stat(dest); statErr == nil {
		res.Size = fi.Size()
	}

	logger.Info().
		Str("dir", dir).
		Str("dest", dest).
		Int("entries", res.Entries).
		Int64("size", res.Size).
		Msg("Static resource archived")

	return res, nil
}

// sanitizeHeader makes the entry name relative to the archive root and picks
// the compression method
func sanitizeHeader(rel string, fi os.FileInfo, h *zip.FileHeader) {
	h.Name = filepath.ToSlash(rel)
	if fi.IsDir() {
		h.Name += "/"
		h.Method = zip.Store
		return
	}
	h.Method = zip.Deflate
	h.Modified = fi.ModTime().UTC()
}
