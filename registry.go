// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package gflags

import (
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/nikclayton/gflags-derive/lib/stringx"
)

// PlaceholderAnnotation is the pflag annotation key under which a
// flag's placeholder is stored by FlagSetRegistry.
const PlaceholderAnnotation = "gflags.placeholder"

// Registry accepts flag registrations. Generation hands every emitted
// FlagDefinition to one of these; substituting an in-memory registry
// lets tests assert exact registration sequences.
//
// A registry must refuse a name it already holds with
// *DuplicateNameError. Whether names collide across structs is the
// registry's business, not the generator's.
type Registry interface {
	Register(FlagDefinition) error
}

// MemoryRegistry is an ordered, in-memory Registry.
type MemoryRegistry struct {
	defs  []FlagDefinition
	names map[string]int
}

// NewMemoryRegistry .
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{names: make(map[string]int)}
}

// Register implements Registry.
func (r *MemoryRegistry) Register(def FlagDefinition) error {
	if r.names == nil {
		r.names = make(map[string]int)
	}
	if _, ok := r.names[def.Name]; ok {
		return &DuplicateNameError{Name: def.Name}
	}
	r.names[def.Name] = len(r.defs)
	r.defs = append(r.defs, def)
	return nil
}

// Flags returns every registered definition in registration order.
func (r *MemoryRegistry) Flags() []FlagDefinition {
	return r.defs
}

// Lookup returns the definition registered under name.
func (r *MemoryRegistry) Lookup(name string) (FlagDefinition, bool) {
	i, ok := r.names[name]
	if !ok {
		return FlagDefinition{}, false
	}
	return r.defs[i], true
}

// FlagSetRegistry registers flag definitions on a pflag FlagSet. The
// flag set owns the flag storage; values are read back through the
// set (or through viper once the set is bound).
type FlagSetRegistry struct {
	fs *flag.FlagSet
}

// NewFlagSetRegistry .
func NewFlagSetRegistry(fs *flag.FlagSet) *FlagSetRegistry {
	return &FlagSetRegistry{fs: fs}
}

// Register implements Registry. The default expression is converted
// with the forgiving stringx conversions; a type the flag set cannot
// store is reported as an UnsupportedTypeError at this point, the
// registration-consumption side of type checking.
func (r *FlagSetRegistry) Register(def FlagDefinition) error {
	if r.fs.Lookup(def.Name) != nil {
		return &DuplicateNameError{Name: def.Name}
	}

	var value string
	if def.Default != nil {
		value = def.Default.Value()
	}
	usage := strings.Join(def.Doc, "\n")

	switch def.Type.Name {
	case "string":
		r.fs.String(def.Name, value, usage)
	case "bool":
		r.fs.Bool(def.Name, stringx.ToBool(value), usage)
	case "int":
		r.fs.Int(def.Name, stringx.Atoi[int](value), usage)
	case "int32":
		r.fs.Int32(def.Name, stringx.Atoi[int32](value), usage)
	case "int64":
		r.fs.Int64(def.Name, stringx.Atoi[int64](value), usage)
	case "uint":
		r.fs.Uint(def.Name, stringx.Atou[uint](value), usage)
	case "uint32":
		r.fs.Uint32(def.Name, stringx.Atou[uint32](value), usage)
	case "uint64":
		r.fs.Uint64(def.Name, stringx.Atou[uint64](value), usage)
	case "float32":
		r.fs.Float32(def.Name, stringx.Atof[float32](value), usage)
	case "float64":
		r.fs.Float64(def.Name, stringx.Atof[float64](value), usage)
	case "time.Duration":
		d, _ := time.ParseDuration(value)
		r.fs.Duration(def.Name, d, usage)
	case "[]string":
		var defaults []string
		if def.Default != nil {
			defaults = stringx.Split(value, ",")
		}
		r.fs.StringSlice(def.Name, defaults, usage)
	case "[]int":
		var defaults []int
		if def.Default != nil {
			defaults = stringx.AtoSlice[int](value, ",")
		}
		r.fs.IntSlice(def.Name, defaults, usage)
	default:
		return &UnsupportedTypeError{Field: def.Name, Type: def.Type.Name}
	}

	if def.Placeholder != "" {
		if err := r.fs.SetAnnotation(def.Name, PlaceholderAnnotation, []string{def.Placeholder}); err != nil {
			return err
		}
	}
	if def.Visibility == Hidden {
		if err := r.fs.MarkHidden(def.Name); err != nil {
			return err
		}
	}
	return nil
}
