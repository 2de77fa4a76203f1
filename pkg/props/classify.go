package props

import (
	"github.com/gnana997/propschema/pkg/resolve"
)

// Marker type names. These are fixed for the lifetime of the process.
const (
	BubblingEventHandler = "BubblingEventHandler"
	DirectEventHandler   = "DirectEventHandler"

	// StylePropName is the reserved prop name of the platform style bag.
	StylePropName = "style"
	// ViewStyleProp is the platform's view style marker type.
	ViewStyleProp = "ViewStyleProp"
)

// Classification is the outcome of classifying one flattened member.
type Classification int

const (
	// ClassProp marks a genuine prop that is kept in the schema.
	ClassProp Classification = iota
	// ClassEvent marks an event handler, owned by the event schema.
	ClassEvent
	// ClassStyle marks the platform style prop, synthesized by the binding layer.
	ClassStyle
)

// String returns the string representation of the classification.
func (c Classification) String() string {
	switch c {
	case ClassProp:
		return "prop"
	case ClassEvent:
		return "event"
	case ClassStyle:
		return "style"
	default:
		return "unknown"
	}
}

// IsEventHandler reports whether name is one of the event handler markers.
func IsEventHandler(name string) bool {
	return name == BubblingEventHandler || name == DirectEventHandler
}

// Classify decides what a member named name with normalized type top is.
// Event handlers are checked first, then the style prop; everything else is
// a prop.
func Classify(name string, top resolve.TopLevelType) Classification {
	ref := top.Name()
	if IsEventHandler(ref) {
		return ClassEvent
	}
	if name == StylePropName && ref == ViewStyleProp {
		return ClassStyle
	}
	return ClassProp
}
