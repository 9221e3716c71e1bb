// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package gflags_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	gflags "github.com/nikclayton/gflags-derive"
)

func reflectTypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func define(t *testing.T, v any, opts ...gflags.FlagOption) *gflags.MemoryRegistry {
	t.Helper()
	reg := gflags.NewMemoryRegistry()
	if err := gflags.Define(reg, v, opts...); err != nil {
		t.Fatalf("Define: %v", err)
	}
	return reg
}

func names(reg *gflags.MemoryRegistry) []string {
	var out []string
	for _, def := range reg.Flags() {
		out = append(out, def.Name)
	}
	return out
}

func TestDefine_Basic(t *testing.T) {
	type Config struct {
		ToStderr bool   `desc:"True if log messages should also be sent to STDERR"`
		Dir      string `desc:"The directory to write log files to"`
	}

	reg := define(t, &Config{})
	if diff := cmp.Diff([]string{"to-stderr", "dir"}, names(reg)); diff != "" {
		t.Fatalf("flag names (-want +got):\n%s", diff)
	}

	def, ok := reg.Lookup("to-stderr")
	if !ok {
		t.Fatalf("missing --to-stderr")
	}
	if def.Type.Name != "bool" {
		t.Errorf("to-stderr type = %s, want bool", def.Type.Name)
	}
	wantDoc := []string{"True if log messages should also be sent to STDERR"}
	if diff := cmp.Diff(wantDoc, def.Doc); diff != "" {
		t.Errorf("doc (-want +got):\n%s", diff)
	}

	def, _ = reg.Lookup("dir")
	if def.Type.Name != "string" {
		t.Errorf("dir type = %s, want string", def.Type.Name)
	}
}

func TestDefine_KebabPrefix(t *testing.T) {
	type Config struct {
		ToStderr bool
		Dir      string
	}

	reg := define(t, &Config{}, gflags.WithAnnotationsOption(`prefix = "log-"`))
	if diff := cmp.Diff([]string{"log-to-stderr", "log-dir"}, names(reg)); diff != "" {
		t.Fatalf("flag names (-want +got):\n%s", diff)
	}
}

func TestDefine_SnakePrefix(t *testing.T) {
	type Config struct {
		ToStderr bool
		Dir      string
	}

	reg := define(t, &Config{}, gflags.WithAnnotationsOption(`prefix = "log_"`))
	if diff := cmp.Diff([]string{"log_to_stderr", "log_dir"}, names(reg)); diff != "" {
		t.Fatalf("flag names (-want +got):\n%s", diff)
	}
}

type annotatedConfig struct {
	Charset string
	Length  uint32
}

func (annotatedConfig) FlagAnnotations() []string {
	return []string{`prefix = "pw-"`}
}

func TestDefine_AnnotatedInterface(t *testing.T) {
	reg := define(t, &annotatedConfig{})
	if diff := cmp.Diff([]string{"pw-charset", "pw-length"}, names(reg)); diff != "" {
		t.Fatalf("flag names (-want +got):\n%s", diff)
	}
}

func TestDefine_FieldPrefixOverride(t *testing.T) {
	type Config struct {
		ToStderr bool
		Dir      string `gflags:"prefix = 'audit_'"`
	}

	reg := define(t, &Config{}, gflags.WithAnnotationsOption(`prefix = "log-"`))
	if diff := cmp.Diff([]string{"log-to-stderr", "audit_dir"}, names(reg)); diff != "" {
		t.Fatalf("flag names (-want +got):\n%s", diff)
	}
}

func TestDefine_Skip(t *testing.T) {
	type Config struct {
		ToStderr bool
		Dir      string `gflags:"skip"`
	}

	reg := define(t, &Config{})
	if diff := cmp.Diff([]string{"to-stderr"}, names(reg)); diff != "" {
		t.Fatalf("flag names (-want +got):\n%s", diff)
	}
}

func TestDefine_SkipWinsOverOtherBlocks(t *testing.T) {
	// Two independent blocks on one field; the skip in the first one
	// is not cleared by the second.
	type Config struct {
		Dir string `gflags:"skip" gflags:"placeholder = 'DIR'"`
	}

	reg := define(t, &Config{})
	if len(reg.Flags()) != 0 {
		t.Fatalf("expected no flags, got %v", names(reg))
	}
}

func TestDefine_MultipleBlocksMerge(t *testing.T) {
	type Config struct {
		Dir string `gflags:"type = '&str'" gflags:"placeholder = 'DIR'"`
	}

	reg := define(t, &Config{})
	def, ok := reg.Lookup("dir")
	if !ok {
		t.Fatalf("missing --dir")
	}
	if def.Type.Name != "&str" {
		t.Errorf("type = %s, want &str", def.Type.Name)
	}
	if def.Placeholder != "<DIR>" {
		t.Errorf("placeholder = %q, want <DIR>", def.Placeholder)
	}
}

func TestDefine_OptionalUnwrap(t *testing.T) {
	type Config struct {
		ToStderr *bool
		Dir      *string
	}

	reg := define(t, &Config{})
	def, _ := reg.Lookup("to-stderr")
	if def.Type.Name != "bool" {
		t.Errorf("to-stderr type = %s, want bool", def.Type.Name)
	}
	def, _ = reg.Lookup("dir")
	if def.Type.Name != "string" {
		t.Errorf("dir type = %s, want string", def.Type.Name)
	}
}

func TestDefine_DocLines(t *testing.T) {
	type Config struct {
		Dir string `desc:"The directory to write log files to.\nCreated at startup if missing."`
	}

	reg := define(t, &Config{})
	def, _ := reg.Lookup("dir")
	want := []string{
		"The directory to write log files to.",
		"Created at startup if missing.",
	}
	if diff := cmp.Diff(want, def.Doc); diff != "" {
		t.Fatalf("doc (-want +got):\n%s", diff)
	}
}

func TestDefine_DefaultAndVisibility(t *testing.T) {
	type Config struct {
		ToStderr bool   `gflags:"default = true"`
		Token    string `gflags:"visibility = 'hidden', default = 'hunter2'"`
	}

	reg := define(t, &Config{})
	def, _ := reg.Lookup("to-stderr")
	if def.Default == nil || def.Default.Raw != "true" {
		t.Errorf("to-stderr default = %+v, want true", def.Default)
	}
	if def.Visibility != gflags.Public {
		t.Errorf("to-stderr visibility = %v, want public", def.Visibility)
	}

	def, _ = reg.Lookup("token")
	if def.Visibility != gflags.Hidden {
		t.Errorf("token visibility = %v, want hidden", def.Visibility)
	}
	if def.Default == nil || def.Default.Value() != "hunter2" {
		t.Errorf("token default = %+v, want hunter2", def.Default)
	}
}

func TestDefine_UnexportedFieldsInvisible(t *testing.T) {
	type Config struct {
		Dir    string
		secret string
	}

	_ = Config{secret: ""}

	reg := define(t, &Config{})
	if diff := cmp.Diff([]string{"dir"}, names(reg)); diff != "" {
		t.Fatalf("flag names (-want +got):\n%s", diff)
	}
}

func TestDefine_AbortLeavesRegistryEmpty(t *testing.T) {
	// The second field's empty annotation block is a schema error;
	// the whole pass aborts and the valid first field must not have
	// been registered either.
	type Config struct {
		ToStderr bool
		Dir      string `gflags:""`
	}

	reg := gflags.NewMemoryRegistry()
	err := gflags.Define(reg, &Config{})
	var emptyErr *gflags.EmptyAttributeError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("err = %v, want EmptyAttributeError", err)
	}
	if len(reg.Flags()) != 0 {
		t.Fatalf("expected zero flags after abort, got %v", names(reg))
	}
}

func TestDefine_SkipWithValue(t *testing.T) {
	type Config struct {
		Dir string `gflags:"skip = 1"`
	}

	err := gflags.Define(gflags.NewMemoryRegistry(), &Config{})
	var skipErr *gflags.SkipTakesValueError
	if !errors.As(err, &skipErr) {
		t.Fatalf("err = %v, want SkipTakesValueError", err)
	}
}

func TestDefine_UnsupportedTypeAborts(t *testing.T) {
	type Config struct {
		ToStderr bool
		Hooks    map[string]string
	}

	reg := gflags.NewMemoryRegistry()
	err := gflags.Define(reg, &Config{})
	var typeErr *gflags.UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("err = %v, want UnsupportedTypeError", err)
	}
	if len(reg.Flags()) != 0 {
		t.Fatalf("expected zero flags after abort, got %v", names(reg))
	}
}

func TestDefine_TypeOverrideSuppressesTypeError(t *testing.T) {
	type Config struct {
		Hooks map[string]string `gflags:"type = '[]string'"`
	}

	reg := define(t, &Config{})
	def, _ := reg.Lookup("hooks")
	if def.Type.Name != "[]string" {
		t.Fatalf("type = %s, want []string", def.Type.Name)
	}
}

func TestDefine_CustomTagName(t *testing.T) {
	// With another tag name configured, only that tag is read. A
	// leftover gflags tag must not skip the field or otherwise
	// change its flag.
	type Config struct {
		Dir   string `gflags:"skip" flags:"placeholder = 'DIR'"`
		Cache string `gflags:"prefix = 'old-'"`
	}

	reg := define(t, &Config{}, gflags.WithTagNameOption("flags"))
	if diff := cmp.Diff([]string{"dir", "cache"}, names(reg)); diff != "" {
		t.Fatalf("flag names (-want +got):\n%s", diff)
	}
	def, _ := reg.Lookup("dir")
	if def.Placeholder != "<DIR>" {
		t.Errorf("placeholder = %q, want <DIR>", def.Placeholder)
	}
}

func TestDefine_NotAStruct(t *testing.T) {
	var err error

	err = gflags.Define(gflags.NewMemoryRegistry(), 42)
	var recErr *gflags.NotARecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("err = %v, want NotARecordError", err)
	}

	err = gflags.Define(gflags.NewMemoryRegistry(), nil)
	if !errors.As(err, &recErr) {
		t.Fatalf("err = %v, want NotARecordError", err)
	}
}

func TestDefine_DuplicateNamesInOnePass(t *testing.T) {
	// Two fields that resolve to the same flag name cannot both
	// register; nothing from the pass may reach the registry.
	type Collide struct {
		DbUrl string
		DbURL string
	}

	reg := gflags.NewMemoryRegistry()
	err := gflags.Define(reg, &Collide{})
	var dupErr *gflags.DuplicateNameError
	if !errors.As(err, &dupErr) {
		t.Fatalf("err = %v, want DuplicateNameError", err)
	}
	if len(reg.Flags()) != 0 {
		t.Fatalf("expected zero flags after abort, got %v", names(reg))
	}
}

func TestGenerate_ExplicitSchema(t *testing.T) {
	// The explicit schema path carries real multi-line docs and
	// multiple blocks without any struct tags involved.
	s := &gflags.StructSchema{
		Name: "Config",
		Blocks: []gflags.Annotation{
			{Namespace: gflags.Namespace, Body: `prefix = "log-"`},
		},
		Fields: []gflags.FieldSchema{
			{
				Name: "to_stderr",
				Type: gflags.TypeExprOf(reflectTypeOf[bool]()),
				Doc:  []string{"line1", "line2"},
			},
			{
				Name: "dir",
				Type: gflags.TypeExprOf(reflectTypeOf[string]()),
				Blocks: []gflags.Annotation{
					{Namespace: gflags.Namespace, Body: `placeholder = "DIR"`},
				},
			},
		},
	}

	reg := gflags.NewMemoryRegistry()
	if err := gflags.Generate(s, reg); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if diff := cmp.Diff([]string{"log-to-stderr", "log-dir"}, names(reg)); diff != "" {
		t.Fatalf("flag names (-want +got):\n%s", diff)
	}
	def, _ := reg.Lookup("log-to-stderr")
	if diff := cmp.Diff([]string{"line1", "line2"}, def.Doc); diff != "" {
		t.Fatalf("doc (-want +got):\n%s", diff)
	}
}
