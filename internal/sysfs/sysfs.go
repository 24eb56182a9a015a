// Package sysfs provides small helpers for kernel pseudo-file attributes
// (cpufreq tunables and similar single-value files).
package sysfs

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// Write writes the literal bytes of value to a sysfs attribute.
//
// The file is opened O_WRONLY without O_TRUNC/O_CREATE.
// Some sysfs attributes reject truncation flags even when mode bits
// allow writes, resulting in confusing EACCES/EPERM at open() time,
// and the kernel replaces the attribute value on every write anyway.
// No trailing newline is appended; the kernel does not require one.
func Write(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	_, werr := f.WriteString(value)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

// Read reads up to size bytes from a sysfs attribute in a single read,
// retrying only when interrupted by a signal.
//
// The returned bytes are raw: no trimming, no terminator. Sysfs values
// usually carry a trailing newline, so callers should compare prefixes
// against the valid range rather than expecting an exact match.
func Read(path string, size int) ([]byte, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	defer unix.Close(fd)

	buf := make([]byte, size)
	for {
		n, err := unix.Read(fd, buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return nil, &os.PathError{Op: "read", Path: path, Err: err}
		}
		return buf[:n], nil
	}
}
