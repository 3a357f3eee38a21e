package file

import (
	"os"

	"github.com/spf13/afero"
)

// Exists reports whether a regular file (not a directory) is found at the given path.
func Exists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if os.IsNotExist(err) || err != nil {
		return false
	}
	return !info.IsDir()
}
