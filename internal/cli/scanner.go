package cli

import (
	"path/filepath"
	"strings"

	"github.com/toyz/wired/internal/errors"
	"github.com/toyz/wired/internal/utils"
)

// DirectoryScanner expands directory patterns into package directories
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a scanner with its own file processor
func NewDirectoryScanner() *DirectoryScanner {
	return NewDirectoryScannerWithProcessor(utils.NewFileProcessor())
}

// NewDirectoryScannerWithProcessor creates a scanner sharing a file processor
func NewDirectoryScannerWithProcessor(processor *utils.FileProcessor) *DirectoryScanner {
	return &DirectoryScanner{fileProcessor: processor}
}

// splitPattern turns "dir/..." into (dir, true) and "dir" into (dir, false)
func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}
	if base, ok := strings.CutSuffix(pattern, "/..."); ok {
		if base == "" {
			base = "."
		}
		return base, true
	}
	return pattern, false
}

// ScanDirectories returns the absolute package directories matched by the
// patterns. A plain directory matches itself when it holds Go files; a
// "dir/..." pattern matches every package below dir.
func (s *DirectoryScanner) ScanDirectories(patterns []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	add := func(found ...string) {
		for _, dir := range found {
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}

	for _, pattern := range patterns {
		base, recursive := splitPattern(pattern)
		abs, err := filepath.Abs(base)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", base, err)
		}

		if recursive {
			found, err := s.fileProcessor.ScanDirectoriesWithGoFiles([]string{abs})
			if err != nil {
				return nil, errors.WrapFileSystemError("scan", abs, err)
			}
			add(found...)
			continue
		}

		ok, err := s.fileProcessor.HasGoFiles(abs)
		if err != nil {
			return nil, errors.WrapFileSystemError("read", abs, err)
		}
		if ok {
			add(abs)
		}
	}
	return dirs, nil
}
