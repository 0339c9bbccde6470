package models

// ParsedTitle is the result of parsing a decorated issue title line.
// Assignees and Labels keep the left-to-right order in which their
// markers appeared in the raw line.
type ParsedTitle struct {
	Title     string
	Assignees []string
	Labels    []string
}
