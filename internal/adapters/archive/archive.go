// Package archive opens SportVU game files, either a .7z archive holding one
// JSON document or the JSON document itself.
package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

const (
	extSevenZip = ".7z"
	extJSON     = ".json"
)

// Source is an open game document. Close releases the member and the
// archive behind it.
type Source struct {
	io.Reader
	// Path is the file that was opened.
	Path string
	// Member is the archive entry being read, or the base name for plain
	// JSON files.
	Member string

	closers []io.Closer
}

// Close closes everything Open acquired, innermost first.
func (s *Source) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Open returns a streaming reader over the JSON document at path. Archives
// are read in place; the first .json member wins.
func Open(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupported, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case extSevenZip:
		return openSevenZip(path)
	case extJSON:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return &Source{Reader: f, Path: path, Member: filepath.Base(path), closers: []io.Closer{f}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

func openSevenZip(path string) (*Source, error) {
	rc, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	names := make([]string, len(rc.File))
	dirs := make([]bool, len(rc.File))
	for i, f := range rc.File {
		names[i] = f.Name
		dirs[i] = f.FileInfo().IsDir()
	}
	idx := firstJSON(names, dirs)
	if idx < 0 {
		_ = rc.Close()
		return nil, fmt.Errorf("%w: %s", ErrMissingMember, path)
	}

	member, err := rc.File[idx].Open()
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("open member %s in %s: %w", names[idx], path, err)
	}
	return &Source{Reader: member, Path: path, Member: names[idx], closers: []io.Closer{rc, member}}, nil
}

// firstJSON returns the index of the first non-directory entry with a .json
// extension, or -1.
func firstJSON(names []string, dirs []bool) int {
	for i, name := range names {
		if i < len(dirs) && dirs[i] {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), extJSON) {
			return i
		}
	}
	return -1
}
