// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//
// Derive command-line flags from struct fields.
//
// Define a struct and annotate its fields with `gflags` tags:
//
//	type Config struct {
//		// --to-stderr
//		ToStderr bool `desc:"True if log messages should also be sent to STDERR"`
//
//		// --dir <DIR>
//		Dir string `gflags:"placeholder = 'DIR'" desc:"The directory to write log files to"`
//	}
//
// Annotation keys: skip, prefix, type, visibility, placeholder,
// default. String values use single quotes inside struct tags. A field
// may carry several gflags tags; later tags overwrite earlier ones key
// by key, except skip which sticks once set.
//
// Struct-level annotations come from the Annotated interface or the
// WithAnnotationsOption. A prefix ending in "_" selects snake_case
// flag names, one ending in "-" selects kebab-case (the default):
//
//	func (Config) FlagAnnotations() []string {
//		return []string{`prefix = "log-"`}
//	}
//
// gives --log-to-stderr and --log-dir.
//
// Register the flags on a cobra command with BindFlags or
// BindAndExecute, on a bare pflag set with DefineFlags, or on any
// Registry with Define. ReadFlags and UnmarshalFlags pull values back
// out of viper; MergeFlags overrides a loaded configuration with just
// the flags present on the command line.
//

package gflags

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nikclayton/gflags-derive/lib/builtin"
)

type (
	FlagOption func(*FlagConfig)
	FlagConfig struct {
		// The struct tag holding field-level annotation blocks, default is "gflags"
		tagName string
		// The struct tag holding documentation lines, default is "desc"
		docTagName string
		// The tag name mapstructure decodes with in UnmarshalFlags, default is "mapstructure"
		unmarshalTagName string
		// Struct-level annotation blocks supplied at the call site
		annotations []string
		// read the flag value from viper
		autoUnMarshalFlag bool
		// run pre auto marshal flags
		preAutoUnMarshal func(cmd *cobra.Command, args []string)
		// run pre auto marshal flags with error
		preAutoUnMarshalE func(cmd *cobra.Command, args []string) error
	}
)

// Generate runs one generation pass: it validates the schema, resolves
// the struct configuration once, then walks the fields in declaration
// order, producing one flag per non-skipped field. The first schema
// error aborts the whole pass; fields after the fault are never
// processed and nothing reaches the registry. Registration happens
// only once every field has resolved cleanly, so a failed struct
// contributes zero flags.
func Generate(s *StructSchema, reg Registry) error {
	if s == nil {
		return &NotARecordError{Type: "nil"}
	}
	structName := s.Name
	if structName == "" {
		structName = "struct"
	}
	for _, f := range s.Fields {
		if f.Name == "" {
			return &NotARecordError{Type: structName + " (unnamed field)"}
		}
	}

	structCfg, err := mergeStructConfig(structName, s.Blocks)
	if err != nil {
		return err
	}

	var defs []FlagDefinition
	seen := make(map[string]bool)
	for _, f := range s.Fields {
		target := structName + "." + f.Name
		cfg, err := mergeBlocks(target, f.Blocks)
		if err != nil {
			return err
		}
		if cfg.Skip {
			continue
		}

		prefix, flagCase := structCfg.Prefix, structCfg.Case
		if cfg.Prefix != nil {
			prefix = *cfg.Prefix
		}
		if cfg.Case != nil {
			flagCase = *cfg.Case
		}
		name := flagName(prefix, flagCase, f.Name)
		if seen[name] {
			return &DuplicateNameError{Name: name}
		}
		seen[name] = true

		typ, err := resolveType(target, f.Type, cfg.Type)
		if err != nil {
			return err
		}

		defs = append(defs, buildFlagDefinition(name, typ, cfg, f.Doc))
	}

	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Define derives a schema from v (a struct or pointer to struct) and
// registers its flags with reg.
func Define(reg Registry, v builtin.Any, opts ...FlagOption) error {
	cfg := defaultFlagConfig(opts...)
	s, err := schemaFromValue(v, cfg)
	if err != nil {
		return err
	}
	return Generate(s, reg)
}

// DefineFlags derives flags from v onto a pflag FlagSet.
func DefineFlags(fs *flag.FlagSet, v builtin.Any, opts ...FlagOption) error {
	return Define(NewFlagSetRegistry(fs), v, opts...)
}

// BindFlags derives flags from v onto cmd's flag set and binds the set
// into viper, so flag values are visible alongside viper's other
// sources.
func BindFlags(cmd *cobra.Command, v builtin.Any, opts ...FlagOption) error {
	autoMarshalOption(cmd, v, opts...)
	if err := DefineFlags(cmd.Flags(), v, opts...); err != nil {
		return err
	}
	return viper.BindPFlags(cmd.Flags())
}

// BindAndExecute automatically bind flag and execute
func BindAndExecute(cmd *cobra.Command, v builtin.Any, opts ...FlagOption) error {
	if err := BindFlags(cmd, v, opts...); err != nil {
		return err
	}
	return cmd.Execute()
}

// ReadFlags reads flag values back from viper into v's fields, keyed
// by each field's generated flag name. Skipped fields are left alone.
// Optional (pointer) fields are allocated on demand.
func ReadFlags(v builtin.Any, opts ...FlagOption) error {
	cfg := defaultFlagConfig(opts...)
	return eachFlagField(v, cfg, func(fv reflect.Value, name string) error {
		return readField(fv, name)
	})
}

// MergeFlags overrides fields of v with values from fs, but only for
// flags the user actually set on the command line. Use it to let the
// command line win over a configuration loaded from elsewhere.
func MergeFlags(fs *flag.FlagSet, v builtin.Any, opts ...FlagOption) error {
	cfg := defaultFlagConfig(opts...)
	return eachFlagField(v, cfg, func(fv reflect.Value, name string) error {
		if !fs.Changed(name) {
			return nil
		}
		return mergeField(fs, fv, name)
	})
}

// UnmarshalFlags unmarshal flag value from viper
// use `mapstructure` to unmarshal
func UnmarshalFlags(v builtin.Any, opts ...FlagOption) error {
	defaultOpts := castConfigOptions(defaultFlagConfig(opts...))
	return viper.Unmarshal(v, defaultOpts...)
}

/////////////////////////////////////////////////////// option ///////////////////////////////////////////////////////

// WithTagNameOption custom annotation tag name
func WithTagNameOption(tag string) FlagOption {
	return func(cfg *FlagConfig) {
		cfg.tagName = tag
	}
}

// WithDocTagNameOption custom documentation tag name
func WithDocTagNameOption(tag string) FlagOption {
	return func(cfg *FlagConfig) {
		cfg.docTagName = tag
	}
}

// WithAnnotationsOption supplies struct-level annotation blocks at the
// call site, as an alternative to implementing Annotated.
func WithAnnotationsOption(blocks ...string) FlagOption {
	return func(cfg *FlagConfig) {
		cfg.annotations = append(cfg.annotations, blocks...)
	}
}

// WithUnmarshalTagNameOption custom mapstructure tag name for UnmarshalFlags
func WithUnmarshalTagNameOption(tag string) FlagOption {
	return func(cfg *FlagConfig) {
		cfg.unmarshalTagName = tag
	}
}

// WithAutoUnMarshalOption auto unmarshal flag value from viper
// In particular, the flag value comes from different sources (e.g. viper)
func WithAutoUnMarshalOption() FlagOption {
	return func(cfg *FlagConfig) {
		cfg.autoUnMarshalFlag = true
	}
}

// WithPreAutoUnMarshalOption executed before `UnmarshalFlags`, can be used to add the data source of `viper`
func WithPreAutoUnMarshalOption(pre func(cmd *cobra.Command, args []string)) FlagOption {
	return func(cfg *FlagConfig) {
		cfg.preAutoUnMarshal = pre
	}
}

// WithPreAutoUnMarshalEOption executed before `UnmarshalFlags`, can be used to add the data source of `viper`
func WithPreAutoUnMarshalEOption(preE func(cmd *cobra.Command, args []string) error) FlagOption {
	return func(cfg *FlagConfig) {
		cfg.preAutoUnMarshalE = preE
	}
}

/////////////////////////////////////////////////////// cast ///////////////////////////////////////////////////////

// alias
type decoderConfigOption = viper.DecoderConfigOption

func castConfigOptions(cfg *FlagConfig) []decoderConfigOption {
	return []decoderConfigOption{
		withSquashOption(true),
		withDecodeTagNameOption(cfg.unmarshalTagName),
	}
}

func withSquashOption(squash bool) decoderConfigOption {
	return func(config *mapstructure.DecoderConfig) {
		config.Squash = squash
	}
}

func withDecodeTagNameOption(tag string) decoderConfigOption {
	return func(config *mapstructure.DecoderConfig) {
		config.TagName = tag
	}
}

/////////////////////////////////////////////////////// helper ///////////////////////////////////////////////////////

// set auto marshal function
func autoMarshalOption(cmd *cobra.Command, v0 builtin.Any, opts ...FlagOption) {
	cfg := defaultFlagConfig(opts...)
	if !cfg.autoUnMarshalFlag {
		return
	}

	if cmd.PreRun != nil {
		handler := cmd.PreRun
		cmd.PreRun = func(cmd *cobra.Command, args []string) {
			if cfg.preAutoUnMarshal != nil {
				cfg.preAutoUnMarshal(cmd, args)
			}
			_ = UnmarshalFlags(v0, opts...)

			handler(cmd, args)
		}
	} else if cmd.PreRunE != nil {
		handler := cmd.PreRunE
		cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
			if cfg.preAutoUnMarshalE != nil {
				if err := cfg.preAutoUnMarshalE(cmd, args); err != nil {
					return err
				}
			}
			if err := UnmarshalFlags(v0, opts...); err != nil {
				return err
			}

			return handler(cmd, args)
		}
	}
}

func defaultFlagConfig(opts ...FlagOption) *FlagConfig {
	cfg := &FlagConfig{
		tagName:          Namespace,
		docTagName:       "desc",
		unmarshalTagName: "mapstructure",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// eachFlagField walks v's exported fields in declaration order,
// resolving each field's flag name the same way generation does, and
// calls fn with the addressable field value. Skipped fields and fields
// with a type override are left to the caller to manage by hand.
func eachFlagField(v builtin.Any, cfg *FlagConfig, fn func(fv reflect.Value, name string) error) error {
	if v == nil || reflect.TypeOf(v).Kind() != reflect.Pointer || reflect.ValueOf(v).IsNil() {
		return fmt.Errorf("gflags: v must be a non-nil struct pointer")
	}
	s, err := schemaFromValue(v, cfg)
	if err != nil {
		return err
	}

	structName := s.Name
	if structName == "" {
		structName = "struct"
	}
	structCfg, err := mergeStructConfig(structName, s.Blocks)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v).Elem()
	rt := rv.Type()
	schemaIdx := 0
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		f := s.Fields[schemaIdx]
		schemaIdx++

		fieldCfg, err := mergeBlocks(structName+"."+f.Name, f.Blocks)
		if err != nil {
			return err
		}
		if fieldCfg.Skip || fieldCfg.Type != nil {
			continue
		}

		prefix, flagCase := structCfg.Prefix, structCfg.Case
		if fieldCfg.Prefix != nil {
			prefix = *fieldCfg.Prefix
		}
		if fieldCfg.Case != nil {
			flagCase = *fieldCfg.Case
		}

		if err := fn(rv.Field(i), flagName(prefix, flagCase, f.Name)); err != nil {
			return err
		}
	}
	return nil
}

func readField(fv reflect.Value, name string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(viper.GetString(name))
	case reflect.Bool:
		fv.SetBool(viper.GetBool(name))
	case reflect.Float32, reflect.Float64:
		fv.SetFloat(viper.GetFloat64(name))
	case reflect.Int, reflect.Int32:
		fv.SetInt(int64(viper.GetInt(name)))
	case reflect.Int64:
		if _, ok := fv.Interface().(time.Duration); ok {
			fv.SetInt(int64(viper.GetDuration(name)))
		} else {
			fv.SetInt(viper.GetInt64(name))
		}
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		fv.SetUint(viper.GetUint64(name))
	case reflect.Slice:
		switch fv.Type().Elem().Kind() {
		case reflect.String:
			fv.Set(reflect.ValueOf(viper.GetStringSlice(name)))
		case reflect.Int:
			fv.Set(reflect.ValueOf(viper.GetIntSlice(name)))
		case reflect.Uint8:
			fv.SetBytes([]byte(viper.GetString(name)))
		default:
			return fmt.Errorf("gflags: unsupported slice type: %s|%s", name, fv.Type().Elem().Kind())
		}
	case reflect.Pointer:
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return readField(fv.Elem(), name)
	default:
		return fmt.Errorf("gflags: unsupported type: %s|%s", name, fv.Kind())
	}
	return nil
}

func mergeField(fs *flag.FlagSet, fv reflect.Value, name string) error {
	switch fv.Kind() {
	case reflect.String:
		s, err := fs.GetString(name)
		if err != nil {
			return err
		}
		fv.SetString(s)
	case reflect.Bool:
		b, err := fs.GetBool(name)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Float32:
		f, err := fs.GetFloat32(name)
		if err != nil {
			return err
		}
		fv.SetFloat(float64(f))
	case reflect.Float64:
		f, err := fs.GetFloat64(name)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	case reflect.Int:
		n, err := fs.GetInt(name)
		if err != nil {
			return err
		}
		fv.SetInt(int64(n))
	case reflect.Int32:
		n, err := fs.GetInt32(name)
		if err != nil {
			return err
		}
		fv.SetInt(int64(n))
	case reflect.Int64:
		if _, ok := fv.Interface().(time.Duration); ok {
			d, err := fs.GetDuration(name)
			if err != nil {
				return err
			}
			fv.SetInt(int64(d))
		} else {
			n, err := fs.GetInt64(name)
			if err != nil {
				return err
			}
			fv.SetInt(n)
		}
	case reflect.Uint:
		n, err := fs.GetUint(name)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(n))
	case reflect.Uint32:
		n, err := fs.GetUint32(name)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(n))
	case reflect.Uint64:
		n, err := fs.GetUint64(name)
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Slice:
		switch fv.Type().Elem().Kind() {
		case reflect.String:
			l, err := fs.GetStringSlice(name)
			if err != nil {
				return err
			}
			fv.Set(reflect.ValueOf(l))
		case reflect.Int:
			l, err := fs.GetIntSlice(name)
			if err != nil {
				return err
			}
			fv.Set(reflect.ValueOf(l))
		case reflect.Uint8:
			s, err := fs.GetString(name)
			if err != nil {
				return err
			}
			fv.SetBytes([]byte(s))
		default:
			return fmt.Errorf("gflags: unsupported slice type: %s|%s", name, fv.Type().Elem().Kind())
		}
	case reflect.Pointer:
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return mergeField(fs, fv.Elem(), name)
	default:
		return fmt.Errorf("gflags: unsupported type: %s|%s", name, fv.Kind())
	}
	return nil
}
