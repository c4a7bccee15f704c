//go:build !unix

package segments

import "os"

// isWritable approximates access(2) with the permission bits where it is
// unavailable.
func isWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}
