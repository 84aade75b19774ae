// Package staging writes incoming uploads to short-lived local files.
package staging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// File is an upload copied to local disk for the duration of one request.
type File struct {
	Path string
	Name string
	Size int64
}

// Stage copies r into a new file under dir and returns it together with a
// release function that removes it. The release function is safe to call more
// than once and must be called on every path once the file is no longer needed.
func Stage(dir, name string, r io.Reader) (*File, func(), error) {
	if dir == "" {
		dir = os.TempDir()
	}

	out, err := os.CreateTemp(dir, "upload-*"+safeExt(name))
	if err != nil {
		return nil, func() {}, fmt.Errorf("creating staging file: %w", err)
	}

	path := out.Name()
	release := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("staging: failed to remove %s: %v", path, err)
		}
	}

	n, err := io.Copy(out, r)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		release()
		return nil, func() {}, fmt.Errorf("writing staging file: %w", err)
	}

	return &File{Path: path, Name: name, Size: n}, release, nil
}

// safeExt keeps the original extension so the store can infer the format,
// dropping anything that could escape the temp file pattern.
func safeExt(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	if ext == "" || len(ext) > 16 || strings.ContainsAny(ext, `/\*`) {
		return ""
	}
	return strings.ToLower(ext)
}
