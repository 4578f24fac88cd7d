package wired

import (
	"fmt"
	"strconv"
	"strings"
)

// Lookup reads a nested parameter by dot-separated path. Every segment must
// name a key of the current mapping or an index of the current list;
// otherwise def is returned. A present key holding nil yields nil, not def.
func Lookup(params map[string]any, path string, def any) any {
	var current any = params
	for _, segment := range strings.Split(path, ".") {
		next, ok := child(current, segment)
		if !ok {
			return def
		}
		current = next
	}
	return current
}

func child(node any, key string) (any, bool) {
	switch n := node.(type) {
	case map[string]any:
		v, ok := n[key]
		return v, ok
	case map[any]any:
		if v, ok := n[key]; ok {
			return v, true
		}
		// YAML keys such as 8080 or true decode to non-string values.
		for k, v := range n {
			if fmt.Sprint(k) == key {
				return v, true
			}
		}
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(n) {
			return nil, false
		}
		return n[i], true
	}
	return nil, false
}

// mergeParameters deep-merges src into dst. Nested mappings are merged, other
// values in src replace those in dst.
func mergeParameters(dst, src map[string]any) {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeParameters(dstMap, srcMap)
			continue
		}
		if srcIsMap {
			copied := make(map[string]any, len(srcMap))
			mergeParameters(copied, srcMap)
			dst[key] = copied
			continue
		}
		dst[key] = value
	}
}
