// Package preflight verifies output destinations before a repair run writes
// anything, so failures surface with the offending path instead of halfway
// through serialization.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Result captures the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Err converts a failed result into an error; a passed result yields nil.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	return fmt.Errorf("%s: %s", r.Name, r.Detail)
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies that the filesystem holding path has at least
// need bytes available.
func CheckFreeSpace(name, path string, need uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := stat.Bavail * uint64(stat.Bsize)
	if available < need {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %d bytes free, need %d)", path, available, need)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d bytes free)", path, available)}
}

// OutputDir runs every output-destination check for dir, sized to the
// payload about to be written. The first failure is returned as an error.
func OutputDir(dir string, payloadSize int) error {
	if err := CheckDirectoryAccess("output directory", dir).Err(); err != nil {
		return err
	}
	need := uint64(payloadSize)
	return CheckFreeSpace("output free space", dir, need).Err()
}
