// Package resolve implements the type-resolution collaborators used by the
// props extractor: extends recognition, member flattening, top-level type
// normalization, per-member schema info and type annotation building.
package resolve

import "errors"

var (
	// ErrUnknownType is returned when a referenced type is not declared.
	ErrUnknownType = errors.New("unknown type")

	// ErrCyclicType is returned when alias or member flattening loops.
	ErrCyclicType = errors.New("cyclic type reference")

	// ErrDuplicateProp is returned when flattening yields two props with the
	// same name.
	ErrDuplicateProp = errors.New("duplicate prop")

	// ErrUnsupportedType is returned for type shapes with no prop annotation.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedSpread is returned for inheritance clauses that are
	// neither locally declared nor a known shared prop group.
	ErrUnsupportedSpread = errors.New("unsupported prop spread")

	// ErrMissingDefault is returned for enum props without a default.
	ErrMissingDefault = errors.New("missing default value")

	// ErrInvalidDefault is returned when a default does not fit the prop type.
	ErrInvalidDefault = errors.New("invalid default value")

	// ErrDefaultRequiresOptional is returned when WithDefault is used on a
	// required member.
	ErrDefaultRequiresOptional = errors.New("default value requires an optional prop")
)
