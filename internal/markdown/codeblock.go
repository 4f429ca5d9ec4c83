package markdown

import (
	"strings"

	"git.home.luguber.info/inful/jsdocmd/internal/util/sets"
)

// LineBreak is the line terminator used for everything this package inserts.
const LineBreak = "\r\n"

const fenceMarker = "```"

// DefaultFenceLanguages lists the fence languages that get a line break after
// the language tag when none is configured.
var DefaultFenceLanguages = []string{"js"}

// Normalizer rewrites fenced code delimiters so blocks always start on their
// own line and language-tagged openings end their line.
type Normalizer struct {
	languages sets.Set[string]
}

// NewNormalizer returns a Normalizer that breaks the line after fences tagged
// with any of languages. A nil slice selects DefaultFenceLanguages; an empty
// non-nil slice disables post-tag breaks.
func NewNormalizer(languages []string) *Normalizer {
	if languages == nil {
		languages = DefaultFenceLanguages
	}
	set := sets.New[string]()
	for _, lang := range languages {
		if lang = strings.TrimSpace(lang); lang != "" {
			set.Add(lang)
		}
	}
	return &Normalizer{languages: set}
}

var defaultNormalizer = NewNormalizer(nil)

// NormalizeCodeBlocks normalizes text with the default fence languages.
func NormalizeCodeBlocks(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalize inserts a line break before every fence delimiter not already at
// the start of a line, and after the language tag of every configured fence
// not already followed by one. Normalizing twice yields the same text.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	edits := n.fenceEdits(text)
	if len(edits) == 0 {
		return text
	}
	return MustApplyEdits(text, edits)
}

func (n *Normalizer) fenceEdits(text string) []Edit {
	var edits []Edit
	for i := 0; i < len(text); {
		idx := strings.Index(text[i:], fenceMarker)
		if idx < 0 {
			break
		}
		start := i + idx
		end := start
		for end < len(text) && text[end] == '`' {
			end++
		}

		if start == 0 || text[start-1] != '\n' {
			edits = append(edits, Edit{Start: start, End: start, Text: LineBreak})
		}

		langEnd := end
		for langEnd < len(text) && isLangByte(text[langEnd]) {
			langEnd++
		}
		if lang := text[end:langEnd]; lang != "" {
			if n.languages.Has(lang) && !startsWithLineBreak(text[langEnd:]) {
				edits = append(edits, Edit{Start: langEnd, End: langEnd, Text: LineBreak})
			}
		}
		i = langEnd
	}
	return edits
}

func startsWithLineBreak(s string) bool {
	return strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\r\n")
}

func isLangByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '+', c == '#', c == '.':
		return true
	}
	return false
}
