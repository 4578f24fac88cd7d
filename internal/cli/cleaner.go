package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/wired/internal/errors"
	"github.com/toyz/wired/internal/generator"
	"github.com/toyz/wired/internal/utils"
)

// Cleaner removes generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{fileProcessor: utils.NewFileProcessor()}
}

// CleanGeneratedFiles removes autogen_wired.go from the directories matched
// by patterns and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	var removed []string

	for _, pattern := range patterns {
		base, recursive := splitPattern(pattern)

		if recursive {
			files, err := c.fileProcessor.RemoveGeneratedFiles([]string{base}, generator.GeneratedFileName)
			removed = append(removed, files...)
			if err != nil {
				return removed, errors.WrapFileSystemError("clean", base, err)
			}
			continue
		}

		path := filepath.Join(base, generator.GeneratedFileName)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, errors.WrapFileSystemError("remove", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
