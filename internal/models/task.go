package models

// Task is one actionable item extracted from a meeting transcript.
// Field names match the JSON schema the extraction prompt asks for.
type Task struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Deadline  string   `json:"deadline"`
	Assignees []string `json:"assignees"`
	Labels    []string `json:"labels"`
}

// ToIssue converts the task into the issue that will be offered for editing.
// Deadline is not carried over; the extraction prompt already embeds it in
// the title.
func (t Task) ToIssue() Issue {
	return Issue{
		Title:     t.Title,
		Body:      t.Body,
		Assignees: t.Assignees,
		Labels:    t.Labels,
	}
}
