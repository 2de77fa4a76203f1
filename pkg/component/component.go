// Package component turns a native component source file into a schema
// module.
//
// A file registers components through codegenNativeComponent<Props>(name,
// options) and, optionally, commands through codegenNativeCommands. The
// Props type argument names a local interface or type alias whose members
// are handed to the props extractor.
package component

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propschema/pkg/ast"
	"github.com/gnana997/propschema/pkg/declarations"
	"github.com/gnana997/propschema/pkg/parser"
	"github.com/gnana997/propschema/pkg/parser/queries"
	"github.com/gnana997/propschema/pkg/props"
	"github.com/gnana997/propschema/pkg/schema"
)

var (
	// ErrUnsupportedFile is returned for files that are not TypeScript.
	ErrUnsupportedFile = errors.New("unsupported file")

	// ErrMissingName is returned when a component call has no string name.
	ErrMissingName = errors.New("component name must be a string literal")

	// ErrMissingPropsType is returned when a component call has no props type argument.
	ErrMissingPropsType = errors.New("component props type argument is required")

	// ErrPropsTypeNotFound is returned when the props type is not declared in the file.
	ErrPropsTypeNotFound = errors.New("component props type not found")

	// ErrDuplicateComponent is returned when a file registers a name twice.
	ErrDuplicateComponent = errors.New("duplicate component")

	// ErrInvalidOptions is returned for malformed component or command options.
	ErrInvalidOptions = errors.New("invalid options")
)

// Parser extracts component schemas from source files. Safe for concurrent
// use.
type Parser struct {
	parsers   *parser.ParserManager
	queries   *queries.QueryManager
	collector *declarations.Collector
	extractor *props.Extractor
	logger    *slog.Logger
}

// NewParser creates a Parser. Extractor and logger can be nil (a default
// extractor and slog.Default() are used).
func NewParser(pm *parser.ParserManager, qm *queries.QueryManager, extractor *props.Extractor, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if extractor == nil {
		extractor = props.NewExtractor(props.Resolvers{}, logger)
	}

	return &Parser{
		parsers:   pm,
		queries:   qm,
		collector: declarations.NewCollector(qm, logger),
		extractor: extractor,
		logger:    logger,
	}
}

// ModuleName returns the schema module name for a source path: its base
// name without extension.
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// call is one codegenNativeComponent registration.
type call struct {
	name      string
	propsType string
	options   Options
	pos       queries.Location
}

// ParseFile extracts every component registered in source. A file that
// registers no component yields a schema with no modules.
func (p *Parser) ParseFile(path string, source []byte) (*schema.SchemaType, error) {
	dialect := parser.DetectDialect(path)
	if dialect == parser.DialectUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	tree, err := p.parsers.Parse(source, dialect)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer tree.Close()

	matches, err := p.queries.Run(tree, dialect, queries.QueryTypeComponents, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	calls, commands, err := readCalls(matches, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := schema.NewSchema()
	if len(calls) == 0 {
		return out, nil
	}

	types, err := p.collector.Collect(tree, dialect, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	module := schema.NewComponentModule()
	for _, c := range calls {
		if _, exists := module.Components[c.name]; exists {
			return nil, fmt.Errorf("%s:%d: %w: %s", path, c.pos.StartLine, ErrDuplicateComponent, c.name)
		}

		shape, err := p.buildComponent(c, types, commands)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: component %s: %w", path, c.pos.StartLine, c.name, err)
		}
		module.Components[c.name] = shape

		p.logger.Debug("extracted component",
			"file", path,
			"component", c.name,
			"props", len(shape.Props),
			"extends", len(shape.ExtendsProps))
	}

	out.Modules[ModuleName(path)] = module
	return out, nil
}

func (p *Parser) buildComponent(c call, types ast.TypeDeclarationMap, commands []schema.CommandShape) (schema.ComponentShape, error) {
	decl, ok := types.Lookup(c.propsType)
	if !ok {
		return schema.ComponentShape{}, fmt.Errorf("%w: %s", ErrPropsTypeNotFound, c.propsType)
	}

	members, err := declarations.MembersOf(decl)
	if err != nil {
		return schema.ComponentShape{}, err
	}

	res, err := p.extractor.ExtractProps(members, types)
	if err != nil {
		return schema.ComponentShape{}, err
	}

	shape := schema.ComponentShape{
		ExtendsProps: res.ExtendsProps,
		Events:       []schema.EventShape{},
		Props:        res.Props,
		Commands:     commands,
	}
	c.options.apply(&shape)

	return shape, nil
}

// readCalls splits component query matches into component registrations
// and the supported commands of the file.
func readCalls(matches []queries.QueryMatch, source []byte) ([]call, []schema.CommandShape, error) {
	var calls []call
	commands := []schema.CommandShape{}

	for _, match := range matches {
		if capture, ok := match.Capture("component.call"); ok {
			c, err := readComponentCall(capture.Node, source)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", capture.Location.StartLine, err)
			}
			c.pos = capture.Location
			calls = append(calls, c)
			continue
		}

		if capture, ok := match.Capture("commands.call"); ok {
			args := argumentNodes(capture.Node)
			var obj *ts.Node
			if len(args) > 0 {
				obj = args[0]
			}
			names, err := parseSupportedCommands(obj, source)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", capture.Location.StartLine, err)
			}
			for _, n := range names {
				commands = append(commands, schema.CommandShape{Name: n})
			}
		}
	}

	return calls, commands, nil
}

func readComponentCall(node *ts.Node, source []byte) (call, error) {
	var c call

	args := argumentNodes(node)
	if len(args) == 0 || args[0].Kind() != "string" {
		return c, ErrMissingName
	}
	c.name = unquote(args[0].Utf8Text(source))

	typeArgs := node.ChildByFieldName("type_arguments")
	if typeArgs == nil {
		return c, ErrMissingPropsType
	}
	var propsNode *ts.Node
	for i := uint(0); i < uint(typeArgs.ChildCount()); i++ {
		if child := typeArgs.Child(i); child.IsNamed() && child.Kind() != "comment" {
			propsNode = child
			break
		}
	}
	if propsNode == nil || propsNode.Kind() != "type_identifier" {
		return c, ErrMissingPropsType
	}
	c.propsType = propsNode.Utf8Text(source)

	if len(args) > 1 {
		opts, err := parseOptions(args[1], source)
		if err != nil {
			return c, err
		}
		c.options = opts
	}

	return c, nil
}

// argumentNodes returns the value arguments of a call expression.
func argumentNodes(callNode *ts.Node) []*ts.Node {
	argsNode := callNode.ChildByFieldName("arguments")
	if argsNode == nil {
		return nil
	}

	var out []*ts.Node
	for i := uint(0); i < uint(argsNode.ChildCount()); i++ {
		child := argsNode.Child(i)
		if child.IsNamed() && child.Kind() != "comment" {
			out = append(out, child)
		}
	}
	return out
}
