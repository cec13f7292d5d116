package fshelper

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// NameFS is a filesystem that has a name
type NameFS interface {
	fs.FS
	Name() string
}

// DirFS is the directory that holds one named file
type DirFS struct {
	fs.FS
	dir  string
	name string
}

// Name returns the file name inside the directory
func (d *DirFS) Name() string {
	return d.name
}

// Path returns the full path of the file
func (d *DirFS) Path() string {
	return filepath.Join(d.dir, d.name)
}

// ResolvePath joins a relative name onto wd. Absolute names are kept.
func ResolvePath(wd, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(wd, name)
}

// ForFile returns a filesystem rooted at the directory of path
func ForFile(path string) *DirFS {
	dir := filepath.Dir(path)
	return &DirFS{
		FS:   os.DirFS(dir),
		dir:  dir,
		name: filepath.Base(path),
	}
}

// Exists checks if a path exists
func Exists(fsys fs.FS, path string) (bool, error) {
	_, err := fs.Stat(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
