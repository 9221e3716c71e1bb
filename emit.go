// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package gflags

// Visibility controls whether a registered flag is advertised in help
// output. Go has no visibility specifiers to splice into generated
// code, so the recognized set is closed.
type Visibility int

const (
	// Public flags appear in help output. The default.
	Public Visibility = iota
	// Hidden flags register and parse but are suppressed from help.
	Hidden
)

func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "public"
}

// ParseVisibility parses a visibility annotation value.
func ParseVisibility(target, s string) (Visibility, error) {
	switch s {
	case "public":
		return Public, nil
	case "hidden":
		return Hidden, nil
	}
	return Public, &UnknownVisibilityError{Target: target, Value: s}
}

// FlagDefinition is one flag-registration unit: everything a registry
// needs to declare the flag. Doc holds the field's documentation
// lines verbatim, one entry per line, in source order.
type FlagDefinition struct {
	Name        string
	Type        TypeExpr
	Default     *Literal
	Placeholder string
	Visibility  Visibility
	Doc         []string
}

// buildFlagDefinition assembles the registration unit for one field.
// The placeholder gains its angle-bracket delimiters here, on the way
// to display.
func buildFlagDefinition(name string, typ TypeExpr, cfg *FieldConfig, doc []string) FlagDefinition {
	def := FlagDefinition{
		Name:    name,
		Type:    typ,
		Default: cfg.Default,
		Doc:     doc,
	}
	if cfg.Placeholder != nil {
		def.Placeholder = "<" + *cfg.Placeholder + ">"
	}
	if cfg.Visibility != nil {
		def.Visibility = *cfg.Visibility
	}
	return def
}
