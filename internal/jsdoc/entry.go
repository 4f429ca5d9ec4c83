// Package jsdoc holds the documentation entry model consumed by the renderer
// and the decoding of doc extractor output into it.
package jsdoc

// Kind is the documentation entry kind. Unrecognized kinds are carried through
// decoding but ignored by the renderer.
type Kind string

const (
	KindClass       Kind = "class"
	KindConstructor Kind = "constructor"
	KindMember      Kind = "member"
	KindFunction    Kind = "function"
)

// Scope is the entry scope. Only instance and global entries are rendered in
// member and function tables.
type Scope string

const (
	ScopeInstance Scope = "instance"
	ScopeGlobal   Scope = "global"
)

// TypeExpr is a type union as emitted by jsdoc: an ordered list of type names.
type TypeExpr struct {
	Names []string `json:"names,omitempty" yaml:"names,omitempty"`
}

// Param documents one function parameter.
type Param struct {
	Name        string   `json:"name"                  yaml:"name"`
	Type        TypeExpr `json:"type"                  yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Return documents one return value.
type Return struct {
	Type        TypeExpr `json:"type"                  yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Entry is one documented symbol. Entries are treated as immutable once
// decoded.
type Entry struct {
	Kind        Kind      `json:"kind"                  yaml:"kind"`
	Scope       Scope     `json:"scope,omitempty"       yaml:"scope,omitempty"`
	Name        string    `json:"name"                  yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	MemberOf    string    `json:"memberof,omitempty"    yaml:"memberof,omitempty"`
	Type        *TypeExpr `json:"type,omitempty"        yaml:"type,omitempty"`
	Params      []Param   `json:"params,omitempty"      yaml:"params,omitempty"`
	Returns     []Return  `json:"returns,omitempty"     yaml:"returns,omitempty"`
	Examples    []string  `json:"examples,omitempty"    yaml:"examples,omitempty"`
}

// TypeNames returns the entry's type names, or nil when it has no type.
func (e Entry) TypeNames() []string {
	if e.Type == nil {
		return nil
	}
	return e.Type.Names
}
