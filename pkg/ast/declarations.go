package ast

import "sort"

// DeclKind identifies what kind of top-level declaration a TypeDecl came from.
type DeclKind string

const (
	DeclInterface DeclKind = "interface"
	DeclAlias     DeclKind = "alias"
	DeclEnum      DeclKind = "enum"
)

// TypeDecl is a named type declaration.
//
// Interfaces carry their extends clauses followed by their property
// signatures in Members. Aliases carry their right-hand side in Type. Enums
// carry their member initializers in EnumMembers.
type TypeDecl struct {
	Name        string
	Kind        DeclKind
	Members     []*Member
	Type        *TypeNode
	EnumMembers []Literal
	Exported    bool
	Pos         Position
}

// TypeDeclarationMap maps a type name to its declaration.
//
// A map is built once per source file and never mutated afterwards, so it can
// be shared freely between goroutines.
type TypeDeclarationMap struct {
	decls map[string]*TypeDecl
}

// NewTypeDeclarationMap builds a map from decls. Later declarations with the
// same name replace earlier ones; callers that care about duplicates check
// before building.
func NewTypeDeclarationMap(decls ...*TypeDecl) TypeDeclarationMap {
	m := make(map[string]*TypeDecl, len(decls))
	for _, d := range decls {
		if d == nil {
			continue
		}
		m[d.Name] = d
	}
	return TypeDeclarationMap{decls: m}
}

// Lookup returns the declaration named name.
func (m TypeDeclarationMap) Lookup(name string) (*TypeDecl, bool) {
	d, ok := m.decls[name]
	return d, ok
}

// Has reports whether name is declared.
func (m TypeDeclarationMap) Has(name string) bool {
	_, ok := m.decls[name]
	return ok
}

// Len returns the number of declarations.
func (m TypeDeclarationMap) Len() int {
	return len(m.decls)
}

// Names returns the declared names in sorted order.
func (m TypeDeclarationMap) Names() []string {
	names := make([]string, 0, len(m.decls))
	for n := range m.decls {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
