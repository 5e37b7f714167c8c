//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// redirectStderr points fd 2 at path. stdout is left alone because it
// carries the rendered image.
func redirectStderr(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	// Dup2 rather than swapping os.Stderr so runtime panics from any
	// goroutine land in the file too.
	return unix.Dup2(int(f.Fd()), int(os.Stderr.Fd()))
}
