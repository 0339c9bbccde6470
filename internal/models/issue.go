package models

// Issue holds the fields passed to gh issue create.
type Issue struct {
	Title     string
	Body      string
	Assignees []string
	Labels    []string
}
