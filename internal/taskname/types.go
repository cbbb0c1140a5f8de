// internal/taskname/types.go
package taskname

// Wildcard is the prefix that turns a pattern into a suffix match.
const Wildcard = "*"

// Separator splits a name into its prefix and suffix.
const Separator = ":"

// Pattern is a requested task name split on its first separator.
type Pattern struct {
	Raw    string
	Prefix string
	Suffix string
	// HasSuffix is false when Raw contains no separator.
	HasSuffix bool
}
