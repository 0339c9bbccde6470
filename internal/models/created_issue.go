package models

// CreatedIssue represents an issue created through the gh CLI.
type CreatedIssue struct {
	Number uint64
	URL    string
	Title  string
}
