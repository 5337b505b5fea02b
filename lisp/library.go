// Copyright © 2024 The SLIP authors

package lisp

import (
	"fmt"
	"os"
	"path/filepath"
)

// SourceContext describes the source currently being evaluated so that a
// SourceLibrary can resolve relative references from it.
type SourceContext interface {
	// Name returns the name of the current source, typically its file name.
	Name() string
	// Location returns the physical location of the current source, typically
	// a file system path.  Location returns "" when the current source has no
	// physical location.
	Location() string
}

type sourceContext struct {
	name string
	loc  string
}

func (c *sourceContext) Name() string     { return c.name }
func (c *sourceContext) Location() string { return c.loc }

// SourceLibrary locates program text for the load builtin.
type SourceLibrary interface {
	// LoadSource returns the location and contents of the named source.  The
	// given context identifies the source from which the load was requested.
	LoadSource(ctx SourceContext, name string) (loc string, data []byte, err error)
}

// RelativeFileSystemLibrary is a SourceLibrary that reads sources from the
// file system.  Relative names resolve against the directory containing the
// requesting source when that source has a physical location, and otherwise
// against RootDir (or the working directory when RootDir is empty).
type RelativeFileSystemLibrary struct {
	RootDir string
}

var _ SourceLibrary = (*RelativeFileSystemLibrary)(nil)

func (lib *RelativeFileSystemLibrary) LoadSource(ctx SourceContext, name string) (string, []byte, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(lib.baseDir(ctx), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("unable to load source: %w", err)
	}
	return path, data, nil
}

func (lib *RelativeFileSystemLibrary) baseDir(ctx SourceContext) string {
	if ctx != nil && ctx.Location() != "" {
		return filepath.Dir(ctx.Location())
	}
	return lib.RootDir
}
