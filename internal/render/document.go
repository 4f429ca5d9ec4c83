package render

import "strings"

// Document is the rendered README for one directory.
type Document string

// AssembleDocument joins sections in order, separated by a blank line.
func AssembleDocument(sections []Section) Document {
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = string(s)
	}
	return Document(strings.Join(parts, paragraph))
}
