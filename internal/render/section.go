package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/jsdocmd/internal/jsdoc"
)

// Section is one module's rendered documentation.
type Section string

// Separator closes every section.
const Separator = crlf + crlf +
	"![-----------------------------------------------------](https://raw.githubusercontent.com/andreasbm/readme/master/assets/lines/aqua.png)" +
	crlf + crlf

type column struct {
	title string
	// padded cells surround their content with blank lines.
	padded bool
	cell   func(jsdoc.Entry) string
}

type partition struct {
	kind    jsdoc.Kind
	scope   jsdoc.Scope
	heading string
	entries func(jsdoc.ModuleDocs) []jsdoc.Entry
}

var partitions = []partition{
	{kind: jsdoc.KindMember, scope: jsdoc.ScopeInstance, entries: func(d jsdoc.ModuleDocs) []jsdoc.Entry { return d.InstanceMembers }},
	{kind: jsdoc.KindMember, scope: jsdoc.ScopeGlobal, entries: func(d jsdoc.ModuleDocs) []jsdoc.Entry { return d.GlobalMembers }},
	{kind: jsdoc.KindFunction, scope: jsdoc.ScopeInstance, entries: func(d jsdoc.ModuleDocs) []jsdoc.Entry { return d.InstanceFunctions }},
	{kind: jsdoc.KindFunction, scope: jsdoc.ScopeGlobal, entries: func(d jsdoc.ModuleDocs) []jsdoc.Entry { return d.GlobalFunctions }},
}

func init() {
	// Casers are stateful, so headings are computed once up front.
	title := cases.Title(language.English)
	for i := range partitions {
		p := &partitions[i]
		p.heading = "## " + title.String(string(p.scope)+" "+string(p.kind)+"s")
	}
}

// RenderSection partitions a module's entries and renders them.
func RenderSection(modulePath string, entries []jsdoc.Entry, opts Options) Section {
	return RenderModule(jsdoc.Partition(modulePath, entries), opts)
}

// RenderModule renders an already partitioned module. The result always ends
// with Separator and is exactly Separator when there is nothing to show.
func RenderModule(docs jsdoc.ModuleDocs, opts Options) Section {
	opts = opts.prepared()
	var b strings.Builder

	if class, ok := docs.Class.Get(); ok {
		b.WriteString("# `" + class.Name + "`" + crlf)
		b.WriteString(opts.text(class.Description))
		b.WriteString(crlf)
		b.WriteString(RenderExamples(class, opts))
	} else if docs.Owner != "" {
		b.WriteString("# `" + docs.Owner + "`")
	}

	if ctor, ok := docs.Constructor.Get(); ok {
		if ctor.Description != "" {
			b.WriteString(crlf + opts.text(ctor.Description) + crlf)
		}
		b.WriteString(RenderExamples(ctor, opts))
	}

	for _, p := range partitions {
		entries := p.entries(docs)
		if len(entries) == 0 {
			continue
		}
		writeTable(&b, p, entries, docs.Path, opts)
	}

	if b.Len() == 0 {
		return Separator
	}
	return Section(crlf + b.String() + Separator)
}

func writeTable(b *strings.Builder, p partition, entries []jsdoc.Entry, modulePath string, opts Options) {
	cols := columns(p, modulePath, opts)

	b.WriteString(crlf + p.heading + crlf)
	b.WriteString("<table><thead><tr>")
	for _, c := range cols {
		b.WriteString("<th>" + c.title + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	for _, e := range entries {
		b.WriteString(crlf + "<tr>")
		for _, c := range cols {
			b.WriteString("<td>")
			if c.padded {
				b.WriteString(paragraph + c.cell(e) + paragraph)
			} else {
				b.WriteString(c.cell(e))
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}

	b.WriteString(crlf + "</tbody></table>" + crlf)
}

func columns(p partition, modulePath string, opts Options) []column {
	name := column{title: "Name", padded: true, cell: func(e jsdoc.Entry) string { return "`" + e.Name + "`" }}
	description := column{title: "Description", cell: func(e jsdoc.Entry) string { return opts.text(e.Description) }}
	example := column{title: "Example", padded: true, cell: func(e jsdoc.Entry) string {
		if p.scope == jsdoc.ScopeGlobal {
			return RenderImportExample(modulePath, e, opts) + RenderExamples(e, opts)
		}
		return RenderExamples(e, opts)
	}}

	if p.kind == jsdoc.KindMember {
		typ := column{title: "Type", padded: true, cell: func(e jsdoc.Entry) string { return RenderType(e.TypeNames()) }}
		return []column{name, typ, description, example}
	}

	params := column{title: "Parameters", padded: true, cell: func(e jsdoc.Entry) string { return RenderParameters(e, opts) }}
	returns := column{title: "Return", padded: true, cell: func(e jsdoc.Entry) string { return RenderReturns(e, opts) }}
	return []column{name, description, params, returns, example}
}
