// Package title parses decorated issue title lines.
//
// A title line coming back from an editing session may carry inline
// assignee markers (@username) and label markers (<[label]>) anywhere
// between the title text. Parse extracts both kinds of markers and
// returns the title with the markers stripped.
package title

import (
	"regexp"
	"strings"

	"github.com/wahlandcase/attuned.standup/internal/models"
)

var (
	assigneeRe = regexp.MustCompile(`@([\p{L}\p{N}_-]+)`)
	labelRe    = regexp.MustCompile(`<\[([^\]]+)\]>`)

	// Strip variants: the label strip also matches empty <[]> markers,
	// which are removed from the title but never collected.
	assigneeStripRe = regexp.MustCompile(`\s*@[\p{L}\p{N}_-]+\s*`)
	labelStripRe    = regexp.MustCompile(`\s*<\[[^\]]*\]>\s*`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Parse splits a raw decorated title line into the clean title, the
// assignees, and the labels. Both marker scans run over the original
// string, so removals can never shift what the other scan matches.
// Parse never fails: malformed markers simply stay in the title.
func Parse(raw string) models.ParsedTitle {
	var assignees []string
	for _, m := range assigneeRe.FindAllStringSubmatch(raw, -1) {
		assignees = append(assignees, m[1])
	}

	var labels []string
	for _, m := range labelRe.FindAllStringSubmatch(raw, -1) {
		labels = append(labels, m[1])
	}

	// Each marker is replaced together with one adjacent whitespace run
	// by a single space so neighboring words never fuse.
	clean := assigneeStripRe.ReplaceAllString(raw, " ")
	clean = labelStripRe.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(whitespaceRe.ReplaceAllString(clean, " "))

	return models.ParsedTitle{
		Title:     clean,
		Assignees: assignees,
		Labels:    labels,
	}
}
