//go:build !windows

package files

import "os"

func renameAtomic(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func isReparsePoint(string) (bool, error) {
	return false, nil
}
