package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnnotationType is the "type" discriminator of a prop type annotation.
type AnnotationType string

const (
	TypeBoolean    AnnotationType = "BooleanTypeAnnotation"
	TypeString     AnnotationType = "StringTypeAnnotation"
	TypeInt32      AnnotationType = "Int32TypeAnnotation"
	TypeDouble     AnnotationType = "DoubleTypeAnnotation"
	TypeFloat      AnnotationType = "FloatTypeAnnotation"
	TypeStringEnum AnnotationType = "StringEnumTypeAnnotation"
	TypeInt32Enum  AnnotationType = "Int32EnumTypeAnnotation"
	TypeReserved   AnnotationType = "ReservedPropTypeAnnotation"
	TypeObject     AnnotationType = "ObjectTypeAnnotation"
	TypeArray      AnnotationType = "ArrayTypeAnnotation"
	TypeMixed      AnnotationType = "MixedTypeAnnotation"
)

// ReservedPropName names a platform primitive with a dedicated native type.
type ReservedPropName string

const (
	ReservedColor        ReservedPropName = "ColorPrimitive"
	ReservedImageSource  ReservedPropName = "ImageSourcePrimitive"
	ReservedImageRequest ReservedPropName = "ImageRequestPrimitive"
	ReservedPoint        ReservedPropName = "PointPrimitive"
	ReservedEdgeInsets   ReservedPropName = "EdgeInsetsPrimitive"
	ReservedDimension    ReservedPropName = "DimensionPrimitive"
)

// PropTypeAnnotation is the sealed set of prop type annotations.
type PropTypeAnnotation interface {
	AnnotationType() AnnotationType
	sealed()
}

// BooleanTypeAnnotation is a boolean prop. A nil Default is encoded as
// "default": null, except as an array element where no default is written.
type BooleanTypeAnnotation struct {
	Default *bool
}

// StringTypeAnnotation is a string prop.
type StringTypeAnnotation struct {
	Default *string
}

// Int32TypeAnnotation is a 32-bit integer prop.
type Int32TypeAnnotation struct {
	Default *int32
}

// DoubleTypeAnnotation is a double precision prop.
type DoubleTypeAnnotation struct {
	Default *float64
}

// FloatTypeAnnotation is a single precision prop.
type FloatTypeAnnotation struct {
	Default *float64
}

// StringEnumTypeAnnotation is a prop restricted to a set of strings.
type StringEnumTypeAnnotation struct {
	Default string
	Options []string
}

// Int32EnumTypeAnnotation is a prop restricted to a set of integers.
type Int32EnumTypeAnnotation struct {
	Default int32
	Options []int32
}

// ReservedPropTypeAnnotation is a platform primitive such as a color.
type ReservedPropTypeAnnotation struct {
	Name ReservedPropName
}

// ObjectTypeAnnotation is a nested object shape.
type ObjectTypeAnnotation struct {
	Properties []NamedShape
}

// ArrayTypeAnnotation is an array of ElementType.
type ArrayTypeAnnotation struct {
	ElementType PropTypeAnnotation
}

// MixedTypeAnnotation is an untyped value.
type MixedTypeAnnotation struct{}

func (BooleanTypeAnnotation) AnnotationType() AnnotationType      { return TypeBoolean }
func (StringTypeAnnotation) AnnotationType() AnnotationType       { return TypeString }
func (Int32TypeAnnotation) AnnotationType() AnnotationType        { return TypeInt32 }
func (DoubleTypeAnnotation) AnnotationType() AnnotationType       { return TypeDouble }
func (FloatTypeAnnotation) AnnotationType() AnnotationType        { return TypeFloat }
func (StringEnumTypeAnnotation) AnnotationType() AnnotationType   { return TypeStringEnum }
func (Int32EnumTypeAnnotation) AnnotationType() AnnotationType    { return TypeInt32Enum }
func (ReservedPropTypeAnnotation) AnnotationType() AnnotationType { return TypeReserved }
func (ObjectTypeAnnotation) AnnotationType() AnnotationType       { return TypeObject }
func (ArrayTypeAnnotation) AnnotationType() AnnotationType        { return TypeArray }
func (MixedTypeAnnotation) AnnotationType() AnnotationType        { return TypeMixed }

func (BooleanTypeAnnotation) sealed()      {}
func (StringTypeAnnotation) sealed()       {}
func (Int32TypeAnnotation) sealed()        {}
func (DoubleTypeAnnotation) sealed()       {}
func (FloatTypeAnnotation) sealed()        {}
func (StringEnumTypeAnnotation) sealed()   {}
func (Int32EnumTypeAnnotation) sealed()    {}
func (ReservedPropTypeAnnotation) sealed() {}
func (ObjectTypeAnnotation) sealed()       {}
func (ArrayTypeAnnotation) sealed()        {}
func (MixedTypeAnnotation) sealed()        {}

func (a BooleanTypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    AnnotationType `json:"type"`
		Default *bool          `json:"default"`
	}{TypeBoolean, a.Default})
}

func (a StringTypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    AnnotationType `json:"type"`
		Default *string        `json:"default"`
	}{TypeString, a.Default})
}

func (a Int32TypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    AnnotationType `json:"type"`
		Default *int32         `json:"default"`
	}{TypeInt32, a.Default})
}

func (a DoubleTypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    AnnotationType `json:"type"`
		Default *float64       `json:"default"`
	}{TypeDouble, a.Default})
}

func (a FloatTypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    AnnotationType `json:"type"`
		Default *float64       `json:"default"`
	}{TypeFloat, a.Default})
}

func (a StringEnumTypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    AnnotationType `json:"type"`
		Default string         `json:"default"`
		Options []string       `json:"options"`
	}{TypeStringEnum, a.Default, a.Options})
}

func (a Int32EnumTypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    AnnotationType `json:"type"`
		Default int32          `json:"default"`
		Options []int32        `json:"options"`
	}{TypeInt32Enum, a.Default, a.Options})
}

func (a ReservedPropTypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type AnnotationType   `json:"type"`
		Name ReservedPropName `json:"name"`
	}{TypeReserved, a.Name})
}

func (a ObjectTypeAnnotation) MarshalJSON() ([]byte, error) {
	props := a.Properties
	if props == nil {
		props = []NamedShape{}
	}
	return json.Marshal(struct {
		Type       AnnotationType `json:"type"`
		Properties []NamedShape   `json:"properties"`
	}{TypeObject, props})
}

func (a ArrayTypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        AnnotationType `json:"type"`
		ElementType any            `json:"elementType"`
	}{TypeArray, elementJSON(a.ElementType)})
}

// elementJSON drops the default of scalar array elements, which carry none.
func elementJSON(a PropTypeAnnotation) any {
	switch a.(type) {
	case BooleanTypeAnnotation, StringTypeAnnotation, Int32TypeAnnotation,
		DoubleTypeAnnotation, FloatTypeAnnotation:
		return struct {
			Type AnnotationType `json:"type"`
		}{a.AnnotationType()}
	}
	return a
}

func (a MixedTypeAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type AnnotationType `json:"type"`
	}{TypeMixed})
}

// Describe renders an annotation as a short, human-readable type string,
// e.g. "Int32 = 0" or "'small' | 'large' = 'small'".
func Describe(a PropTypeAnnotation) string {
	switch v := a.(type) {
	case BooleanTypeAnnotation:
		if v.Default != nil {
			return "boolean = " + strconv.FormatBool(*v.Default)
		}
		return "boolean"
	case StringTypeAnnotation:
		if v.Default != nil {
			return "string = " + strconv.Quote(*v.Default)
		}
		return "string"
	case Int32TypeAnnotation:
		if v.Default != nil {
			return "Int32 = " + strconv.FormatInt(int64(*v.Default), 10)
		}
		return "Int32"
	case DoubleTypeAnnotation:
		if v.Default != nil {
			return "Double = " + strconv.FormatFloat(*v.Default, 'g', -1, 64)
		}
		return "Double"
	case FloatTypeAnnotation:
		if v.Default != nil {
			return "Float = " + strconv.FormatFloat(*v.Default, 'g', -1, 64)
		}
		return "Float"
	case StringEnumTypeAnnotation:
		opts := make([]string, len(v.Options))
		for i, o := range v.Options {
			opts[i] = "'" + o + "'"
		}
		return strings.Join(opts, " | ") + " = '" + v.Default + "'"
	case Int32EnumTypeAnnotation:
		opts := make([]string, len(v.Options))
		for i, o := range v.Options {
			opts[i] = strconv.FormatInt(int64(o), 10)
		}
		return strings.Join(opts, " | ") + " = " + strconv.FormatInt(int64(v.Default), 10)
	case ReservedPropTypeAnnotation:
		return string(v.Name)
	case ObjectTypeAnnotation:
		fields := make([]string, len(v.Properties))
		for i, p := range v.Properties {
			opt := ""
			if p.Optional {
				opt = "?"
			}
			fields[i] = p.Name + opt + ": " + Describe(p.TypeAnnotation)
		}
		return "{" + strings.Join(fields, ", ") + "}"
	case ArrayTypeAnnotation:
		return "Array<" + Describe(v.ElementType) + ">"
	case MixedTypeAnnotation:
		return "mixed"
	case nil:
		return "<none>"
	}
	return fmt.Sprintf("%T", a)
}
