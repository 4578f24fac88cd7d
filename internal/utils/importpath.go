package utils

import (
	"path"
	"strconv"
	"strings"
	"unicode"
)

// AssumedPackageName guesses a package name from its import path: the last
// element, skipping a major version suffix, without a "go-" prefix and cut
// at the first character that is not valid in an identifier.
func AssumedPackageName(importPath string) string {
	base := path.Base(importPath)
	if strings.HasPrefix(base, "v") {
		if _, err := strconv.Atoi(base[1:]); err == nil {
			if dir := path.Dir(importPath); dir != "." {
				base = path.Base(dir)
			}
		}
	}
	base = strings.TrimPrefix(base, "go-")
	if i := strings.IndexFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}); i >= 0 {
		base = base[:i]
	}
	return base
}
