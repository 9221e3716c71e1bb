// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package gflags

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/nikclayton/gflags-derive/lib/stringx"
)

// StructSchema is the unit of generation: an ordered sequence of
// fields plus any struct-level annotation blocks.
type StructSchema struct {
	Name   string
	Blocks []Annotation
	Fields []FieldSchema
}

// FieldSchema is one field of the record: its declared (snake_case)
// name, declared type, documentation lines and annotation blocks, all
// in source order.
type FieldSchema struct {
	Name   string
	Type   TypeExpr
	Doc    []string
	Blocks []Annotation
}

// Annotation is one raw annotation block attached to a struct or
// field. Only blocks in the gflags namespace are interpreted; blocks
// carrying any other namespace are left alone.
type Annotation struct {
	Namespace string
	Body      string
}

// Annotated is implemented by config structs that carry struct-level
// annotation blocks, since Go has no struct-level tags:
//
//	func (Config) FlagAnnotations() []string {
//		return []string{`prefix = "log-"`}
//	}
type Annotated interface {
	FlagAnnotations() []string
}

// schemaFromValue builds a StructSchema from a struct value or a
// pointer to one. Field blocks come from the configured struct tag;
// a field may carry several independent tags of the same name, each
// one its own block. Unexported fields are invisible to the schema.
func schemaFromValue(v any, cfg *FlagConfig) (*StructSchema, error) {
	if v == nil {
		return nil, &NotARecordError{Type: "nil"}
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &NotARecordError{Type: t.String()}
	}

	s := &StructSchema{Name: t.Name()}
	if a, ok := v.(Annotated); ok {
		for _, body := range a.FlagAnnotations() {
			s.Blocks = append(s.Blocks, Annotation{Namespace: Namespace, Body: body})
		}
	}
	for _, body := range cfg.annotations {
		s.Blocks = append(s.Blocks, Annotation{Namespace: Namespace, Body: body})
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		s.Fields = append(s.Fields, FieldSchema{
			Name:   stringx.SnakeCase(field.Name),
			Type:   TypeExprOf(field.Type),
			Doc:    docLines(field.Tag.Get(cfg.docTagName)),
			Blocks: tagBlocks(field.Tag, cfg.tagName),
		})
	}

	return s, nil
}

// docLines splits a desc tag into documentation lines. Tag values are
// unquoted on lookup, so a \n written in the tag arrives here as a
// real newline.
func docLines(desc string) []string {
	if desc == "" {
		return nil
	}
	return strings.Split(desc, "\n")
}

// tagBlocks walks the raw struct tag and turns every key:"value" pair
// into an annotation block. Pairs under the configured tag name are in
// the gflags namespace; everything else keeps its own key as the
// namespace so unrelated tags pass through the merge untouched. A
// literal "gflags" tag is dropped when another tag name is configured,
// so a stale tag cannot leak into the merge by name collision.
//
// reflect.StructTag.Lookup stops at the first occurrence of a key, so
// the raw tag is scanned by hand here, following the conventional
// format it documents. Repeated gflags tags are how a field carries
// multiple annotation blocks.
func tagBlocks(tag reflect.StructTag, tagName string) []Annotation {
	var blocks []Annotation
	raw := string(tag)
	for raw != "" {
		i := 0
		for i < len(raw) && raw[i] == ' ' {
			i++
		}
		raw = raw[i:]
		if raw == "" {
			break
		}

		i = 0
		for i < len(raw) && raw[i] > ' ' && raw[i] != ':' && raw[i] != '"' && raw[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(raw) || raw[i] != ':' || raw[i+1] != '"' {
			break
		}
		name := raw[:i]
		raw = raw[i+1:]

		i = 1
		for i < len(raw) && raw[i] != '"' {
			if raw[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(raw) {
			break
		}
		quoted := raw[:i+1]
		raw = raw[i+1:]

		value, err := strconv.Unquote(quoted)
		if err != nil {
			continue
		}
		ns := name
		switch {
		case name == tagName:
			ns = Namespace
		case name == Namespace:
			continue
		}
		blocks = append(blocks, Annotation{Namespace: ns, Body: value})
	}
	return blocks
}
