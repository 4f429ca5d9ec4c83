package jsdoc

import "git.home.luguber.info/inful/jsdocmd/internal/foundation"

// ModuleDocs is the entries of one module, partitioned once by role.
type ModuleDocs struct {
	// Path is the module's logical path, used for synthesized imports.
	Path string

	Class       foundation.Option[Entry]
	Constructor foundation.Option[Entry]
	// Owner is the MemberOf of the first entry that has one.
	Owner string

	InstanceMembers   []Entry
	GlobalMembers     []Entry
	InstanceFunctions []Entry
	GlobalFunctions   []Entry
}

// Partition splits entries by kind and scope, preserving input order within
// each partition. The first class and the first constructor win.
func Partition(path string, entries []Entry) ModuleDocs {
	docs := ModuleDocs{
		Path:        path,
		Class:       foundation.None[Entry](),
		Constructor: foundation.None[Entry](),
	}

	for _, e := range entries {
		if docs.Owner == "" && e.MemberOf != "" {
			docs.Owner = e.MemberOf
		}

		switch e.Kind {
		case KindClass:
			if docs.Class.IsNone() {
				docs.Class = foundation.Some(e)
			}
		case KindConstructor:
			if docs.Constructor.IsNone() {
				docs.Constructor = foundation.Some(e)
			}
		case KindMember:
			switch e.Scope {
			case ScopeInstance:
				docs.InstanceMembers = append(docs.InstanceMembers, e)
			case ScopeGlobal:
				docs.GlobalMembers = append(docs.GlobalMembers, e)
			}
		case KindFunction:
			switch e.Scope {
			case ScopeInstance:
				docs.InstanceFunctions = append(docs.InstanceFunctions, e)
			case ScopeGlobal:
				docs.GlobalFunctions = append(docs.GlobalFunctions, e)
			}
		}
	}
	return docs
}
