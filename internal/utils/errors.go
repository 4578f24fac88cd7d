package utils

import "fmt"

// wrapf prefixes err with the failed action, e.g. "failed to parse go.mod: ..."
func wrapf(action, item string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", action, item, err)
}
