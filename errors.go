// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package gflags

import "fmt"

// NotARecordError indicates the generation input is not a struct with
// named fields.
type NotARecordError struct{ Type string }

func (e *NotARecordError) Error() string {
	return fmt.Sprintf("gflags: expected a struct with named fields, got %s", e.Type)
}

// EmptyAttributeError indicates an annotation block with no entries.
type EmptyAttributeError struct{ Target string }

func (e *EmptyAttributeError) Error() string {
	return fmt.Sprintf("gflags: %s: annotation expects a non-empty parameter list", e.Target)
}

// UnknownKeyError indicates an annotation key outside the fixed vocabulary.
type UnknownKeyError struct{ Target, Key string }

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("gflags: %s: invalid keyword %q", e.Target, e.Key)
}

// KeywordRequiresValueError indicates a non-skip key used without a value.
type KeywordRequiresValueError struct{ Target, Key string }

func (e *KeywordRequiresValueError) Error() string {
	return fmt.Sprintf("gflags: %s: keyword %q requires a value", e.Target, e.Key)
}

// SkipTakesValueError indicates skip was given a value.
type SkipTakesValueError struct{ Target string }

func (e *SkipTakesValueError) Error() string {
	return fmt.Sprintf("gflags: %s: skip does not take a value", e.Target)
}

// ExpectedStringLiteralError indicates a key that requires a quoted
// string was given some other literal.
type ExpectedStringLiteralError struct{ Target, Key string }

func (e *ExpectedStringLiteralError) Error() string {
	return fmt.Sprintf("gflags: %s: %s expects a quoted string", e.Target, e.Key)
}

// EmptyValueError indicates a string-valued key was given an empty string.
type EmptyValueError struct{ Target, Key string }

func (e *EmptyValueError) Error() string {
	return fmt.Sprintf("gflags: %s: %s expects a non-empty quoted string", e.Target, e.Key)
}

// UnsupportedTypeError indicates a declared field type that cannot be
// used as a flag storage type and has no explicit override.
type UnsupportedTypeError struct{ Field, Type string }

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("gflags: field %s: unsupported type %s", e.Field, e.Type)
}

// UnknownVisibilityError indicates a visibility string outside the
// recognized set.
type UnknownVisibilityError struct{ Target, Value string }

func (e *UnknownVisibilityError) Error() string {
	return fmt.Sprintf("gflags: %s: unknown visibility %q", e.Target, e.Value)
}

// MalformedAttributeError indicates an annotation entry that is neither
// a bare keyword nor a key = value pair.
type MalformedAttributeError struct{ Target, Detail string }

func (e *MalformedAttributeError) Error() string {
	return fmt.Sprintf("gflags: %s: annotation expects key=value pairs: %s", e.Target, e.Detail)
}

// DuplicateNameError indicates a flag name that is already registered.
type DuplicateNameError struct{ Name string }

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("gflags: flag --%s is already registered", e.Name)
}
