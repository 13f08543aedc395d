// Package status appends watched repositories to a local markdown checklist.
// The file is user-maintained; the append is best effort with no
// deduplication and no validation of existing content.
package status

import (
	"fmt"
	"os"
)

const annotation = "watching via mcpwatch, tune notifications in the web UI"

// File is the markdown status document.
type File struct {
	path string
}

// NewFile points at the status document. The file is never created by this
// tool.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the document location.
func (f *File) Path() string {
	return f.path
}

// Append records repo as an unchecked checklist item. When the document does
// not exist the append is skipped silently and appended is false.
func (f *File) Append(repo string) (appended bool, err error) {
	if _, err := os.Stat(f.path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat status file: %w", err)
	}

	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open status file: %w", err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close status file: %w", cerr)
		}
	}()

	if _, err := fh.WriteString(Line(repo)); err != nil {
		return false, fmt.Errorf("failed to append to status file: %w", err)
	}
	return true, nil
}

// Line is the checklist line appended for a repository.
func Line(repo string) string {
	return fmt.Sprintf("- [ ] `https://github.com/%s` - %s\n", repo, annotation)
}
