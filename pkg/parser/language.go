package parser

import (
	"path/filepath"
	"strings"
)

// Dialect identifies which TypeScript grammar a source file is parsed with.
type Dialect int

const (
	// DialectTypeScript is plain TypeScript (.ts, .mts, .cts).
	DialectTypeScript Dialect = iota
	// DialectTSX is TypeScript with JSX (.tsx).
	DialectTSX
	// DialectUnknown marks files that cannot carry component declarations.
	DialectUnknown
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case DialectTypeScript:
		return "typescript"
	case DialectTSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// DetectDialect picks the grammar for a file path from its extension.
// Returns DialectUnknown if the extension is not a TypeScript one.
func DetectDialect(filePath string) Dialect {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx":
		return DialectTSX
	default:
		return DialectUnknown
	}
}

// IsSupportedFile reports whether filePath can be parsed.
func IsSupportedFile(filePath string) bool {
	return DetectDialect(filePath) != DialectUnknown
}

// ParseDialectString converts "ts", "typescript" or "tsx" to a Dialect.
func ParseDialectString(s string) Dialect {
	switch strings.ToLower(s) {
	case "typescript", "ts":
		return DialectTypeScript
	case "tsx":
		return DialectTSX
	default:
		return DialectUnknown
	}
}

// SupportedDialects returns every parseable dialect.
func SupportedDialects() []Dialect {
	return []Dialect{DialectTypeScript, DialectTSX}
}
