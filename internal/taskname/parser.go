// internal/taskname/parser.go
package taskname

import (
	"errors"
	"fmt"
	"strings"
)

// Parse splits raw on its first separator. It never fails: any string is a
// valid pattern, it may just not resolve.
func Parse(raw string) Pattern {
	prefix, suffix, found := strings.Cut(raw, Separator)
	return Pattern{
		Raw:       raw,
		Prefix:    prefix,
		Suffix:    suffix,
		HasSuffix: found,
	}
}

// IsWildcard reports whether p selects tasks by suffix. A bare `*` without a
// separator is an ordinary name.
func (p Pattern) IsWildcard() bool {
	return p.Prefix == Wildcard && p.HasSuffix
}

// Matches reports whether name is selected by the wildcard pattern p.
func (p Pattern) Matches(name string) bool {
	if !p.IsWildcard() {
		return name == p.Raw
	}
	return strings.HasSuffix(name, Separator+p.Suffix)
}

func (p Pattern) String() string {
	return p.Raw
}

// Validate checks that name can be registered. Wildcard patterns are rejected
// because they could never be requested by their exact name.
func Validate(name string) error {
	if name == "" {
		return errors.New("task name cannot be empty")
	}
	if Parse(name).IsWildcard() {
		return fmt.Errorf("task name %q is a wildcard pattern", name)
	}
	return nil
}
