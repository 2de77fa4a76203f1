package declarations

// TSQueries finds module-level type declarations, exported or not.
//
// Declarations nested in namespaces or functions are not part of a file's
// type map and are not matched.
//
// Each query captures:
//   - @decl.name - the declared name
//   - @decl.interface / @decl.alias / @decl.enum - the declaration node
const TSQueries = `
; ============================================================================
; Interfaces
; ============================================================================

(program
  (interface_declaration
    name: (type_identifier) @decl.name) @decl.interface)

(program
  (export_statement
    declaration: (interface_declaration
      name: (type_identifier) @decl.name) @decl.interface))

; ============================================================================
; Type aliases
; ============================================================================

(program
  (type_alias_declaration
    name: (type_identifier) @decl.name) @decl.alias)

(program
  (export_statement
    declaration: (type_alias_declaration
      name: (type_identifier) @decl.name) @decl.alias))

; ============================================================================
; Enums
; ============================================================================

(program
  (enum_declaration
    name: (identifier) @decl.name) @decl.enum)

(program
  (export_statement
    declaration: (enum_declaration
      name: (identifier) @decl.name) @decl.enum))
`
