// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package gflags

import "reflect"

// TypeExpr is a minimal structural description of a field or flag
// type. Name is Go syntax ("string", "time.Duration", "[]int"); Kind
// and Elem describe just enough structure for type resolution. A
// TypeExpr built from an explicit override carries only Name.
type TypeExpr struct {
	Name  string
	Kind  reflect.Kind
	Named bool
	Elem  *TypeExpr
}

// TypeExprOf describes a reflected type.
func TypeExprOf(t reflect.Type) TypeExpr {
	te := TypeExpr{Name: typeName(t), Kind: t.Kind(), Named: t.Name() != ""}
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice:
		elem := TypeExprOf(t.Elem())
		te.Elem = &elem
	}
	return te
}

func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		return "[]byte"
	}
	return t.String()
}

var stringTypeExpr = TypeExpr{Name: "string", Kind: reflect.String, Named: true}

// resolveType computes the storage type for a field's flag. The rules
// apply in a fixed order:
//
//  1. an explicit override is used verbatim, with no inspection;
//  2. one level of optional wrapping (a pointer type) is unwrapped;
//  3. the owned, growable string type ([]byte) becomes string, so the
//     flag is cheap to read;
//  4. any other named type passes through unchanged.
//
// []string and []int pass through as well; every other unnamed
// composite is an error unless an override was supplied.
func resolveType(field string, decl TypeExpr, override *string) (TypeExpr, error) {
	if override != nil {
		return TypeExpr{Name: *override}, nil
	}

	t := decl
	if t.Kind == reflect.Pointer && t.Elem != nil {
		t = *t.Elem
	}

	if t.Kind == reflect.Slice && t.Elem != nil && t.Elem.Kind == reflect.Uint8 {
		return stringTypeExpr, nil
	}

	if t.Named {
		return t, nil
	}

	switch t.Name {
	case "[]string", "[]int":
		return t, nil
	}

	return TypeExpr{}, &UnsupportedTypeError{Field: field, Type: decl.Name}
}
