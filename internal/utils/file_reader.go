package utils

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
)

// FileReader parses and reads source files through a shared token.FileSet,
// caching results until the file changes on disk.
type FileReader struct {
	fileSet  *token.FileSet
	asts     *FileCache[*ast.File]
	contents *FileCache[string]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		fileSet:  token.NewFileSet(),
		asts:     NewFileCache[*ast.File](),
		contents: NewFileCache[string](),
	}
}

// ParseGoFile parses a Go source file, comments included
func (fr *FileReader) ParseGoFile(filePath string) (*ast.File, error) {
	cleanPath, err := cleanFilePath(filePath)
	if err != nil {
		return nil, err
	}

	if cached, ok := fr.asts.Get(cleanPath); ok {
		return cached, nil
	}

	file, err := parser.ParseFile(fr.fileSet, cleanPath, nil, parser.ParseComments)
	if err != nil {
		return nil, wrapf("parse", filepath.Base(cleanPath), err)
	}

	fr.asts.Put(cleanPath, file)
	return file, nil
}

// ParseGoSource parses in-memory Go source registered under filename
func (fr *FileReader) ParseGoSource(filename, source string) (*ast.File, error) {
	file, err := parser.ParseFile(fr.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, wrapf("parse", filename, err)
	}
	return file, nil
}

// ReadFile returns the contents of a file
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	cleanPath, err := cleanFilePath(filePath)
	if err != nil {
		return "", err
	}

	if cached, ok := fr.contents.Get(cleanPath); ok {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
	}

	fr.contents.Put(cleanPath, string(content))
	return string(content), nil
}

// Position resolves pos against the reader's file set
func (fr *FileReader) Position(pos token.Pos) token.Position {
	return fr.fileSet.Position(pos)
}

// Invalidate drops any cached state for a file
func (fr *FileReader) Invalidate(filePath string) {
	cleanPath := filepath.Clean(filePath)
	fr.asts.Delete(cleanPath)
	fr.contents.Delete(cleanPath)
}

// CacheSize reports how many parsed and raw files are cached
func (fr *FileReader) CacheSize() (asts, contents int) {
	return fr.asts.Len(), fr.contents.Len()
}

func cleanFilePath(filePath string) (string, error) {
	if filePath == "" {
		return "", errors.New("file path must not be empty")
	}

	cleanPath := filepath.Clean(filePath)
	if _, err := os.Stat(cleanPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return "", err
	}
	return cleanPath, nil
}
