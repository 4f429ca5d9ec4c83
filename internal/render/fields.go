package render

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/jsdocmd/internal/jsdoc"
)

const (
	crlf      = "\r\n"
	paragraph = crlf + crlf
	fence     = "```"
)

// RenderType renders a type union as backticked names joined by "|".
func RenderType(names []string) string {
	if len(names) == 0 {
		return ""
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, "|")
}

// RenderParameters renders one "name {type} - description" line per parameter.
func RenderParameters(entry jsdoc.Entry, opts Options) string {
	if len(entry.Params) == 0 {
		return ""
	}
	lines := make([]string, len(entry.Params))
	for i, p := range entry.Params {
		lines[i] = p.Name + " {" + RenderType(p.Type.Names) + "} - " + opts.text(p.Description)
	}
	return strings.Join(lines, paragraph)
}

// RenderReturns renders one "{type} - description" line per return value.
func RenderReturns(entry jsdoc.Entry, opts Options) string {
	if len(entry.Returns) == 0 {
		return ""
	}
	lines := make([]string, len(entry.Returns))
	for i, r := range entry.Returns {
		lines[i] = "{" + RenderType(r.Type.Names) + "} - " + opts.text(r.Description)
	}
	return strings.Join(lines, paragraph)
}

// ImportPath is the module specifier used in synthesized imports for a
// module at modulePath.
func ImportPath(modulePath string, opts Options) string {
	dir := path.Dir(modulePath)
	if !opts.KeepImports && opts.ImportRoot != "" && opts.OutputDir != "" {
		dir = strings.Replace(dir, opts.OutputDir, opts.ImportRoot, 1)
	}
	return dir
}

// RenderImportExample renders a js fence importing the entry by name.
func RenderImportExample(modulePath string, entry jsdoc.Entry, opts Options) string {
	block := fence + "js" + crlf +
		"import { " + entry.Name + " } from '" + ImportPath(modulePath, opts) + "';" + crlf +
		fence
	return opts.normalize(block)
}

// RenderExamples wraps each example in a js fence, in input order.
func RenderExamples(entry jsdoc.Entry, opts Options) string {
	if len(entry.Examples) == 0 {
		return ""
	}
	var b strings.Builder
	for _, ex := range entry.Examples {
		b.WriteString(crlf + fence + "js" + crlf)
		b.WriteString(ex)
		b.WriteString(crlf + fence + crlf)
	}
	return opts.normalize(b.String())
}
