package component

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propschema/pkg/schema"
)

// Options are the settings passed as the second argument of
// codegenNativeComponent.
type Options struct {
	InterfaceOnly                bool
	PaperComponentName           string
	PaperComponentNameDeprecated string
	ExcludedPlatforms            []string
}

// apply copies the options onto shape.
func (o Options) apply(shape *schema.ComponentShape) {
	shape.InterfaceOnly = o.InterfaceOnly
	shape.PaperComponentName = o.PaperComponentName
	shape.PaperComponentNameDeprecated = o.PaperComponentNameDeprecated
	shape.ExcludedPlatforms = o.ExcludedPlatforms
}

// parseOptions reads an object literal of component options. Unknown keys
// are ignored; known keys with values of the wrong shape are errors.
func parseOptions(obj *ts.Node, source []byte) (Options, error) {
	var opts Options
	if obj == nil {
		return opts, nil
	}
	if obj.Kind() != "object" {
		return opts, fmt.Errorf("%w: options must be an object literal, got %s", ErrInvalidOptions, obj.Kind())
	}

	for i := uint(0); i < uint(obj.ChildCount()); i++ {
		pair := obj.Child(i)
		if pair.Kind() != "pair" {
			continue
		}
		keyNode := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if keyNode == nil || value == nil {
			continue
		}

		key := unquote(keyNode.Utf8Text(source))
		switch key {
		case "interfaceOnly":
			b, err := boolValue(key, value, source)
			if err != nil {
				return opts, err
			}
			opts.InterfaceOnly = b

		case "paperComponentName":
			s, err := stringValue(key, value, source)
			if err != nil {
				return opts, err
			}
			opts.PaperComponentName = s

		case "paperComponentNameDeprecated":
			s, err := stringValue(key, value, source)
			if err != nil {
				return opts, err
			}
			opts.PaperComponentNameDeprecated = s

		case "excludedPlatforms":
			platforms, err := stringList(key, value, source)
			if err != nil {
				return opts, err
			}
			for _, p := range platforms {
				if p != schema.PlatformIOS && p != schema.PlatformAndroid {
					return opts, fmt.Errorf("%w: unknown platform %q in excludedPlatforms", ErrInvalidOptions, p)
				}
			}
			opts.ExcludedPlatforms = platforms
		}
	}

	return opts, nil
}

// parseSupportedCommands reads supportedCommands from the options object
// of codegenNativeCommands.
func parseSupportedCommands(obj *ts.Node, source []byte) ([]string, error) {
	if obj == nil || obj.Kind() != "object" {
		return nil, fmt.Errorf("%w: codegenNativeCommands expects an options object", ErrInvalidOptions)
	}

	for i := uint(0); i < uint(obj.ChildCount()); i++ {
		pair := obj.Child(i)
		if pair.Kind() != "pair" {
			continue
		}
		keyNode := pair.ChildByFieldName("key")
		if keyNode == nil || unquote(keyNode.Utf8Text(source)) != "supportedCommands" {
			continue
		}
		return stringList("supportedCommands", pair.ChildByFieldName("value"), source)
	}

	return nil, nil
}

func boolValue(key string, node *ts.Node, source []byte) (bool, error) {
	switch node.Kind() {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s must be a boolean literal, got %s",
		ErrInvalidOptions, key, node.Utf8Text(source))
}

func stringValue(key string, node *ts.Node, source []byte) (string, error) {
	if node.Kind() != "string" {
		return "", fmt.Errorf("%w: %s must be a string literal, got %s",
			ErrInvalidOptions, key, node.Utf8Text(source))
	}
	return unquote(node.Utf8Text(source)), nil
}

func stringList(key string, node *ts.Node, source []byte) ([]string, error) {
	if node == nil || node.Kind() != "array" {
		return nil, fmt.Errorf("%w: %s must be an array of string literals", ErrInvalidOptions, key)
	}

	var out []string
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.IsNamed() || child.Kind() == "comment" {
			continue
		}
		s, err := stringValue(key, child, source)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
