// Package declarations converts TypeScript type declarations from a
// tree-sitter parse tree into pkg/ast values.
package declarations

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propschema/pkg/ast"
	"github.com/gnana997/propschema/pkg/parser"
	"github.com/gnana997/propschema/pkg/parser/queries"
)

var (
	// ErrDuplicateDeclaration is returned when a file declares a type name twice.
	ErrDuplicateDeclaration = errors.New("duplicate type declaration")

	// ErrNotObjectType is returned when a declaration cannot supply props members.
	ErrNotObjectType = errors.New("declaration is not an object type")
)

// Collector builds the type declaration map of a parsed file.
type Collector struct {
	queries *queries.QueryManager
	logger  *slog.Logger
}

// NewCollector creates a Collector. Logger can be nil (uses slog.Default()).
func NewCollector(qm *queries.QueryManager, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{queries: qm, logger: logger}
}

// Collect returns every module-level interface, type alias and enum in
// tree. Declaring the same name twice is an error.
func (c *Collector) Collect(tree *ts.Tree, dialect parser.Dialect, source []byte) (ast.TypeDeclarationMap, error) {
	matches, err := c.queries.Run(tree, dialect, queries.QueryTypeDeclarations, source)
	if err != nil {
		return ast.TypeDeclarationMap{}, fmt.Errorf("failed to query declarations: %w", err)
	}

	decls := make([]*ast.TypeDecl, 0, len(matches))
	seen := make(map[string]ast.Position, len(matches))

	for _, match := range matches {
		for _, capture := range match.Captures {
			if capture.Category != "decl" || capture.Field == "name" {
				continue
			}

			decl := ConvertDeclaration(capture.Node, source)
			if decl == nil {
				continue
			}
			if prev, ok := seen[decl.Name]; ok {
				return ast.TypeDeclarationMap{}, fmt.Errorf("%w: %s at %d:%d, first declared at %d:%d",
					ErrDuplicateDeclaration, decl.Name,
					decl.Pos.Line, decl.Pos.Column, prev.Line, prev.Column)
			}
			seen[decl.Name] = decl.Pos
			decls = append(decls, decl)
		}
	}

	c.logger.Debug("collected type declarations", "count", len(decls))

	return ast.NewTypeDeclarationMap(decls...), nil
}

// ConvertDeclaration converts an interface_declaration,
// type_alias_declaration or enum_declaration node. Returns nil for any
// other node.
func ConvertDeclaration(node *ts.Node, source []byte) *ast.TypeDecl {
	if node == nil {
		return nil
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	decl := &ast.TypeDecl{
		Name: nameNode.Utf8Text(source),
		Pos:  position(node),
	}
	if parent := node.Parent(); parent != nil && parent.Kind() == "export_statement" {
		decl.Exported = true
	}

	switch node.Kind() {
	case "interface_declaration":
		decl.Kind = ast.DeclInterface
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			if child := node.Child(i); child.Kind() == "extends_type_clause" {
				decl.Members = append(decl.Members, extendsMembers(child, source)...)
			}
		}
		if body := node.ChildByFieldName("body"); body != nil {
			decl.Members = append(decl.Members, bodyMembers(body, source)...)
		}

	case "type_alias_declaration":
		decl.Kind = ast.DeclAlias
		decl.Type = ConvertType(node.ChildByFieldName("value"), source)

	case "enum_declaration":
		decl.Kind = ast.DeclEnum
		if body := node.ChildByFieldName("body"); body != nil {
			decl.EnumMembers = enumMembers(body, source)
		}

	default:
		return nil
	}

	return decl
}

// enumMembers returns the value of each enum member. Members without an
// initializer continue numbering from the previous numeric member.
func enumMembers(body *ts.Node, source []byte) []ast.Literal {
	var out []ast.Literal
	next := 0

	for _, child := range namedChildren(body) {
		switch child.Kind() {
		case "enum_assignment":
			value := child.ChildByFieldName("value")
			if value == nil {
				continue
			}
			text := value.Utf8Text(source)
			if value.Kind() == "string" {
				out = append(out, ast.Literal{Kind: ast.LiteralString, Value: unquote(text)})
				continue
			}
			if n, err := strconv.Atoi(text); err == nil {
				next = n + 1
			}
			out = append(out, ast.Literal{Kind: ast.LiteralNumber, Value: text})

		case "property_identifier", "string", "number":
			out = append(out, ast.Literal{Kind: ast.LiteralNumber, Value: strconv.Itoa(next)})
			next++
		}
	}

	return out
}
