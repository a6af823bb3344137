// Package schema validates loosely typed JSON payloads against declarative
// entity descriptions and normalizes them before typed decoding.
//
// Required fields must be present, non-null and of the declared kind.
// Optional fields may be absent or null; absence is normalized to an explicit
// null so every decoded entity has the same shape regardless of which
// optional fields the server omitted.
package schema

import (
	"fmt"
	"strings"
)

// Kind is the expected JSON shape of a field.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindInt
	KindNumber
	KindBool
	KindObject
	KindArray
	KindEmail
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindEmail:
		return "email"
	case KindEnum:
		return "enum"
	default:
		return "any"
	}
}

// Field describes one entry of an object.
type Field struct {
	Name     string
	Kind     Kind
	Optional bool
	// Schema describes a nested object for KindObject fields.
	Schema *Schema
	// Elem describes the elements of a KindArray field.
	Elem *Field
	// Values lists the accepted strings of a KindEnum field.
	Values []string
}

// Schema describes an entity.
type Schema struct {
	Name   string
	Fields []Field
}

// Required returns a required field of the given kind.
func Required(name string, kind Kind) Field {
	return Field{Name: name, Kind: kind}
}

// Optional returns an optional field of the given kind.
func Optional(name string, kind Kind) Field {
	return Field{Name: name, Kind: kind, Optional: true}
}

// Object returns a nested object field.
func Object(name string, s *Schema, optional bool) Field {
	return Field{Name: name, Kind: KindObject, Schema: s, Optional: optional}
}

// ArrayOf returns an array field whose elements match elem.
func ArrayOf(name string, elem Field, optional bool) Field {
	return Field{Name: name, Kind: KindArray, Elem: &elem, Optional: optional}
}

// Enum returns a string field restricted to values.
func Enum(name string, optional bool, values ...string) Field {
	return Field{Name: name, Kind: KindEnum, Optional: optional, Values: values}
}

// ValidationError reports the first field that does not match its schema.
type ValidationError struct {
	Entity string
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("invalid %s: field %q %s", e.Entity, e.Path, e.Reason)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	if strings.HasPrefix(name, "[") {
		return parent + name
	}
	return parent + "." + name
}
