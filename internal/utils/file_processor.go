package utils

import (
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GeneratedFilePrefix marks files written by the generator. They are never
// parsed as input.
const GeneratedFilePrefix = "autogen_"

// FileProcessor walks package directories and parses their sources
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a file processor with its own reader
func NewFileProcessor() *FileProcessor {
	return NewFileProcessorWithReader(NewFileReader())
}

// NewFileProcessorWithReader creates a file processor sharing an existing FileReader
func NewFileProcessorWithReader(reader *FileReader) *FileProcessor {
	return &FileProcessor{fileReader: reader}
}

// FileFilter decides whether a directory entry is processed
type FileFilter func(path string, entry os.DirEntry) bool

// SourceFile is one parsed file of a package
type SourceFile struct {
	Path string
	AST  *ast.File
}

// DefaultGoFileFilter accepts .go files, excluding tests and generated files
func DefaultGoFileFilter() FileFilter {
	return func(path string, entry os.DirEntry) bool {
		if entry.IsDir() {
			return false
		}
		name := entry.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasPrefix(name, GeneratedFilePrefix)
	}
}

// DefaultDirectoryFilter skips hidden, vendored and build output directories
func DefaultDirectoryFilter() FileFilter {
	skip := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
	}

	return func(path string, entry os.DirEntry) bool {
		if !entry.IsDir() {
			return false
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return false
		}
		return !skip[name]
	}
}

// ScanDirectoriesWithGoFiles returns every directory below the roots that
// holds at least one non-test Go file. Each directory is reported once.
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(roots []string) ([]string, error) {
	var dirs []string
	visited := make(map[string]bool)

	for _, root := range roots {
		found, err := fp.scan(root, visited)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, found...)
	}
	return dirs, nil
}

func (fp *FileProcessor) scan(dir string, visited map[string]bool) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, wrapf("process", fmt.Sprintf("path %s", dir), err)
	}
	if visited[abs] {
		return nil, nil
	}
	visited[abs] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, wrapf("process", fmt.Sprintf("directory %s", dir), err)
	}

	var dirs []string
	if hasGoFiles(dir, entries) {
		dirs = append(dirs, dir)
	}

	dirFilter := DefaultDirectoryFilter()
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !dirFilter(path, entry) {
			continue
		}
		sub, err := fp.scan(path, visited)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, sub...)
	}
	return dirs, nil
}

// HasGoFiles reports whether dir holds a non-test, non-generated Go file
func (fp *FileProcessor) HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	return hasGoFiles(dir, entries), nil
}

func hasGoFiles(dir string, entries []os.DirEntry) bool {
	filter := DefaultGoFileFilter()
	for _, entry := range entries {
		if filter(filepath.Join(dir, entry.Name()), entry) {
			return true
		}
	}
	return false
}

// ParseDirectoryFiles parses the Go files of one package directory, sorted
// by path, and returns them with the package name they share.
func (fp *FileProcessor) ParseDirectoryFiles(dir string) ([]SourceFile, string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, "", wrapf("process", fmt.Sprintf("directory %s", dir), err)
	}

	var (
		files       []SourceFile
		packageName string
		filter      = DefaultGoFileFilter()
	)
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !filter(path, entry) {
			continue
		}

		file, err := fp.fileReader.ParseGoFile(path)
		if err != nil {
			return nil, "", err
		}

		switch {
		case packageName == "":
			packageName = file.Name.Name
		case file.Name.Name != packageName:
			return nil, "", fmt.Errorf("multiple packages found in %s: %s and %s", dir, packageName, file.Name.Name)
		}
		files = append(files, SourceFile{Path: path, AST: file})
	}

	if len(files) == 0 {
		return nil, "", fmt.Errorf("no Go files found in %s", dir)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, packageName, nil
}

// RemoveGeneratedFiles deletes fileName from every directory below the
// roots and returns the paths it removed.
func (fp *FileProcessor) RemoveGeneratedFiles(roots []string, fileName string) ([]string, error) {
	var removed []string
	dirFilter := DefaultDirectoryFilter()

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if entry.IsDir() {
				if path != root && !dirFilter(path, entry) {
					return filepath.SkipDir
				}
				return nil
			}
			if entry.Name() != fileName {
				return nil
			}
			if err := os.Remove(path); err != nil {
				return wrapf("process", fmt.Sprintf("removal of %s", path), err)
			}
			fp.fileReader.Invalidate(path)
			removed = append(removed, path)
			return nil
		})
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// FileReader returns the underlying reader
func (fp *FileProcessor) FileReader() *FileReader {
	return fp.fileReader
}
