package file

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// resolve returns the file system and name to open a user supplied file name with.
// Names fsys cannot express, i.e. rooted ones or ones leaving its root,
// are opened through the operating system instead.
func resolve(fsys fs.FS, name string) (fs.FS, string) {
	clean := path.Clean(filepath.ToSlash(name))
	if fs.ValidPath(clean) {
		return fsys, clean
	}
	return os.DirFS(filepath.Dir(name)), filepath.Base(name)
}

// relativeTo makes name relative to the directory of the file base.
func relativeTo(base, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(base), name)
}
