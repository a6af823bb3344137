package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/badoux/checkmail"
	"github.com/tidwall/gjson"
)

// validator carries the name of the top-level entity for error reporting.
type validator struct {
	entity string
}

func (v validator) fail(path, reason string) error {
	return &ValidationError{Entity: v.entity, Path: path, Reason: reason}
}

func parse(raw []byte, entity string) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, &ValidationError{Entity: entity, Reason: "payload is not valid JSON"}
	}
	return gjson.ParseBytes(raw), nil
}

// Normalize validates raw against s and returns the normalized object.
// Optional fields missing from raw are present in the result with a nil value.
// Fields not described by s are dropped.
func Normalize(raw []byte, s *Schema) (map[string]any, error) {
	res, err := parse(raw, s.Name)
	if err != nil {
		return nil, err
	}
	return validator{entity: s.Name}.object(res, s, "")
}

// NormalizeArray applies Normalize to every element of a JSON array.
func NormalizeArray(raw []byte, s *Schema) ([]map[string]any, error) {
	res, err := parse(raw, s.Name)
	if err != nil {
		return nil, err
	}
	v := validator{entity: s.Name}
	if !res.IsArray() {
		return nil, v.fail("", "payload must be an array")
	}
	items := res.Array()
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, err := v.object(item, s, "["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// Decode validates raw against s and decodes the normalized result into T.
func Decode[T any](raw []byte, s *Schema) (*T, error) {
	obj, err := Normalize(raw, s)
	if err != nil {
		return nil, err
	}
	var out T
	if err := remarshal(obj, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.Name, err)
	}
	return &out, nil
}

// DecodeArray validates every element of a JSON array against s and decodes
// the normalized result into a slice of T. An empty array yields an empty,
// non-nil slice.
func DecodeArray[T any](raw []byte, s *Schema) ([]T, error) {
	objs, err := NormalizeArray(raw, s)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(objs))
	if err := remarshal(objs, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s list: %w", s.Name, err)
	}
	return out, nil
}

// DecodeValues validates a JSON array of scalar values against elem.
func DecodeValues[T any](raw []byte, entity string, elem Field) ([]T, error) {
	res, err := parse(raw, entity)
	if err != nil {
		return nil, err
	}
	v := validator{entity: entity}
	if !res.IsArray() {
		return nil, v.fail("", "payload must be an array")
	}
	items := res.Array()
	values := make([]any, 0, len(items))
	for i, item := range items {
		path := "[" + strconv.Itoa(i) + "]"
		if item.Type == gjson.Null {
			return nil, v.fail(path, "must not be null")
		}
		value, err := v.value(item, elem, path)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	out := make([]T, 0, len(values))
	if err := remarshal(values, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s list: %w", entity, err)
	}
	return out, nil
}

func (v validator) object(res gjson.Result, s *Schema, path string) (map[string]any, error) {
	if !res.IsObject() {
		return nil, v.fail(path, "must be an object")
	}
	present := res.Map()
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		fieldPath := joinPath(path, f.Name)
		value, ok := present[f.Name]
		if !ok || value.Type == gjson.Null {
			if f.Optional {
				out[f.Name] = nil
				continue
			}
			if !ok {
				return nil, v.fail(fieldPath, "is required")
			}
			return nil, v.fail(fieldPath, "must not be null")
		}
		normalized, err := v.value(value, f, fieldPath)
		if err != nil {
			return nil, err
		}
		out[f.Name] = normalized
	}
	return out, nil
}

func (v validator) value(res gjson.Result, f Field, path string) (any, error) {
	switch f.Kind {
	case KindString:
		if res.Type != gjson.String {
			return nil, v.fail(path, "must be a string")
		}
		return res.Str, nil
	case KindEmail:
		if res.Type != gjson.String {
			return nil, v.fail(path, "must be a string")
		}
		if err := checkmail.ValidateFormat(res.Str); err != nil {
			return nil, v.fail(path, "must be an email address")
		}
		return res.Str, nil
	case KindEnum:
		if res.Type != gjson.String {
			return nil, v.fail(path, "must be a string")
		}
		if !slices.Contains(f.Values, res.Str) {
			return nil, v.fail(path, fmt.Sprintf("must be one of %v", f.Values))
		}
		return res.Str, nil
	case KindInt:
		if res.Type != gjson.Number || res.Num != math.Trunc(res.Num) {
			return nil, v.fail(path, "must be an integer")
		}
		return res.Int(), nil
	case KindNumber:
		if res.Type != gjson.Number {
			return nil, v.fail(path, "must be a number")
		}
		return res.Num, nil
	case KindBool:
		if res.Type != gjson.True && res.Type != gjson.False {
			return nil, v.fail(path, "must be a boolean")
		}
		return res.Bool(), nil
	case KindObject:
		if f.Schema == nil {
			if !res.IsObject() {
				return nil, v.fail(path, "must be an object")
			}
			return json.RawMessage(res.Raw), nil
		}
		return v.object(res, f.Schema, path)
	case KindArray:
		if !res.IsArray() {
			return nil, v.fail(path, "must be an array")
		}
		items := res.Array()
		out := make([]any, 0, len(items))
		for i, item := range items {
			itemPath := joinPath(path, "["+strconv.Itoa(i)+"]")
			if f.Elem == nil {
				out = append(out, json.RawMessage(item.Raw))
				continue
			}
			if item.Type == gjson.Null {
				if f.Elem.Optional {
					out = append(out, nil)
					continue
				}
				return nil, v.fail(itemPath, "must not be null")
			}
			normalized, err := v.value(item, *f.Elem, itemPath)
			if err != nil {
				return nil, err
			}
			out = append(out, normalized)
		}
		return out, nil
	default:
		return json.RawMessage(res.Raw), nil
	}
}

func remarshal(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
