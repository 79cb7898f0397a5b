//go:build linux

package data

import "golang.org/x/sys/unix"

// adviseSequential hints the kernel that the mapped input will be scanned
// front to back.
func adviseSequential(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Madvise(b, unix.MADV_SEQUENTIAL)
}
