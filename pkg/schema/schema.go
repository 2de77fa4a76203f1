// Package schema defines the component codegen schema produced by propschema.
//
// The JSON encoding follows the native codegen schema layout: every type
// annotation carries a "type" discriminator and components are grouped into
// modules keyed by source file name.
package schema

import (
	"fmt"
	"sort"
)

// SchemaType is the root of a generated schema.
type SchemaType struct {
	Modules map[string]ComponentModule `json:"modules"`
}

// NewSchema returns an empty schema.
func NewSchema() *SchemaType {
	return &SchemaType{Modules: make(map[string]ComponentModule)}
}

// ModuleTypeComponent is the only module type propschema emits.
const ModuleTypeComponent = "Component"

// ComponentModule groups the components declared in one source file.
type ComponentModule struct {
	Type       string                    `json:"type"`
	Components map[string]ComponentShape `json:"components"`
}

// NewComponentModule returns an empty component module.
func NewComponentModule() ComponentModule {
	return ComponentModule{
		Type:       ModuleTypeComponent,
		Components: make(map[string]ComponentShape),
	}
}

// ComponentNames returns the module's component names in sorted order.
func (m ComponentModule) ComponentNames() []string {
	names := make([]string, 0, len(m.Components))
	for n := range m.Components {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Platform names accepted in excludedPlatforms.
const (
	PlatformIOS     = "iOS"
	PlatformAndroid = "android"
)

// ComponentShape describes one native component.
type ComponentShape struct {
	InterfaceOnly                bool                `json:"interfaceOnly,omitempty"`
	PaperComponentName           string              `json:"paperComponentName,omitempty"`
	PaperComponentNameDeprecated string              `json:"paperComponentNameDeprecated,omitempty"`
	ExcludedPlatforms            []string            `json:"excludedPlatforms,omitempty"`
	ExtendsProps                 []ExtendsPropsShape `json:"extendsProps"`
	Events                       []EventShape        `json:"events"`
	Props                        []NamedShape        `json:"props"`
	Commands                     []CommandShape      `json:"commands"`
}

// EventShape is a placeholder for component events. Events are extracted by a
// separate pass and are always emitted empty here.
type EventShape struct {
	Name string `json:"name"`
}

// CommandShape names a command listed in codegenNativeCommands'
// supportedCommands.
type CommandShape struct {
	Name string `json:"name"`
}

// ExtendsType tags an inherited prop group.
type ExtendsType string

const ExtendsReactNativeBuiltIn ExtendsType = "ReactNativeBuiltInType"

// KnownTypeName names a built-in shared prop group.
type KnownTypeName string

const KnownReactNativeCoreViewProps KnownTypeName = "ReactNativeCoreViewProps"

// ExtendsPropsShape links a component to a shared prop group without
// inlining that group's props.
type ExtendsPropsShape struct {
	Type          ExtendsType   `json:"type"`
	KnownTypeName KnownTypeName `json:"knownTypeName"`
}

// NamedShape is one prop of a component or one property of a nested object.
type NamedShape struct {
	Name           string             `json:"name"`
	Optional       bool               `json:"optional"`
	Description    string             `json:"description,omitempty"`
	TypeAnnotation PropTypeAnnotation `json:"typeAnnotation"`
}

// Merge copies every module of other into s. Module names must be unique.
func (s *SchemaType) Merge(other *SchemaType) error {
	if other == nil {
		return nil
	}
	if s.Modules == nil {
		s.Modules = make(map[string]ComponentModule)
	}
	for name, mod := range other.Modules {
		if _, exists := s.Modules[name]; exists {
			return fmt.Errorf("duplicate module %q", name)
		}
		s.Modules[name] = mod
	}
	return nil
}

// ModuleNames returns the schema's module names in sorted order.
func (s *SchemaType) ModuleNames() []string {
	names := make([]string, 0, len(s.Modules))
	for n := range s.Modules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ComponentCount returns the number of components across all modules.
func (s *SchemaType) ComponentCount() int {
	n := 0
	for _, m := range s.Modules {
		n += len(m.Components)
	}
	return n
}
