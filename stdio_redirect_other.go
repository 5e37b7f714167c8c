//go:build !unix

package main

import "os"

// Best-effort fallback for non-Unix platforms: logs follow os.Stderr, but
// runtime panic output still goes to the original stderr.
func redirectStderr(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	os.Stderr = f
	return nil
}
