package markdown

import "strings"

// LinkTag identifies the inline JSDoc tag a cross-reference was written with.
type LinkTag string

const (
	TagLink     LinkTag = "link"
	TagTutorial LinkTag = "tutorial"
)

var linkTags = []LinkTag{TagLink, TagTutorial}

// LinkRef is one cross-reference found in a description, e.g.
// `[Docs]{@link https://example.com|Guide}`.
type LinkRef struct {
	Tag      LinkTag
	Target   string
	Display  string
	External bool

	// Start and End delimit the whole tag, bracket prefix included.
	Start int
	End   int
}

// Destination returns the Markdown link target: external targets verbatim,
// everything else as a lowercased in-page anchor.
func (l LinkRef) Destination() string {
	if l.External {
		return l.Target
	}
	return "#" + strings.ToLower(l.Target)
}

// Markdown renders the reference as an inline Markdown link.
func (l LinkRef) Markdown() string {
	return "[" + l.Display + "](" + l.Destination() + ")"
}

// FindLinkRefs scans text for `{@link ...}` and `{@tutorial ...}` tags.
//
// A tag is `{@<tag> <target>}` optionally followed, inside the braces, by an
// explicit label separated from the target by `|` or spaces. A bracketed
// display text directly in front of the tag (`[text]{@link x}`) is part of
// the tag. Tags never span line breaks.
func FindLinkRefs(text string) []LinkRef {
	var refs []LinkRef
	floor := 0
	for i := 0; i < len(text); {
		open := strings.Index(text[i:], "{@")
		if open < 0 {
			break
		}
		open += i
		ref, ok := scanLinkTag(text, open, floor)
		if !ok {
			i = open + 2
			continue
		}
		refs = append(refs, ref)
		i = ref.End
		floor = ref.End
	}
	return refs
}

func scanLinkTag(text string, open, floor int) (LinkRef, bool) {
	rest := text[open+2:]
	var tag LinkTag
	for _, t := range linkTags {
		if strings.HasPrefix(rest, string(t)+" ") {
			tag = t
			break
		}
	}
	if tag == "" {
		return LinkRef{}, false
	}

	bodyStart := open + 2 + len(tag) + 1
	closing := strings.IndexAny(text[bodyStart:], "}\n")
	if closing < 0 || text[bodyStart+closing] != '}' {
		return LinkRef{}, false
	}
	body := text[bodyStart : bodyStart+closing]

	target, label := body, ""
	if sep := strings.IndexAny(body, "| "); sep >= 0 {
		target, label = body[:sep], body[sep+1:]
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return LinkRef{}, false
	}

	ref := LinkRef{
		Tag:      tag,
		Target:   target,
		External: strings.Contains(target, ":"),
		Start:    open,
		End:      bodyStart + closing + 1,
	}

	bracket := ""
	if start, inner, ok := bracketBefore(text, open, floor); ok {
		ref.Start = start
		bracket = strings.TrimSpace(inner)
	}

	switch {
	case strings.TrimSpace(label) != "":
		ref.Display = strings.TrimSpace(label)
	case bracket != "":
		ref.Display = bracket
	default:
		ref.Display = target
	}
	return ref, true
}

// bracketBefore reports a `[text]` that ends exactly at pos and starts at or
// after floor.
func bracketBefore(text string, pos, floor int) (start int, inner string, ok bool) {
	if pos == 0 || text[pos-1] != ']' {
		return 0, "", false
	}
	for j := pos - 2; j >= floor; j-- {
		switch text[j] {
		case '[':
			return j, text[j+1 : pos-1], true
		case ']', '\n':
			return 0, "", false
		}
	}
	return 0, "", false
}

// ResolveLinks replaces every cross-reference tag in text with a Markdown
// link. Text without tags is returned unchanged.
func ResolveLinks(text string) string {
	if text == "" {
		return ""
	}
	refs := FindLinkRefs(text)
	if len(refs) == 0 {
		return text
	}
	edits := make([]Edit, 0, len(refs))
	for _, ref := range refs {
		edits = append(edits, Edit{Start: ref.Start, End: ref.End, Text: ref.Markdown()})
	}
	return MustApplyEdits(text, edits)
}
