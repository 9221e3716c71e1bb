// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package gflags

// FlagCase selects how a prefix and the parts of a field name are
// joined into a flag name.
type FlagCase int

const (
	// KebabCase joins name segments with "-". The default.
	KebabCase FlagCase = iota
	// SnakeCase joins the prefix and field name with "_".
	SnakeCase
)

func (c FlagCase) String() string {
	if c == SnakeCase {
		return "snake_case"
	}
	return "kebab-case"
}

// Namespace is the annotation namespace this package recognizes.
// Blocks tagged with any other namespace pass through untouched.
const Namespace = "gflags"

// StructConfig is the effective struct-level configuration, folded
// from every struct-level annotation block in order.
type StructConfig struct {
	Prefix string
	Case   FlagCase
}

// FieldConfig is the effective configuration for one field. Nil
// pointers mean "unset". Skip is OR-accumulated across blocks; every
// other key is last-write-wins.
type FieldConfig struct {
	Skip        bool
	Prefix      *string
	Case        *FlagCase
	Type        *string
	Visibility  *Visibility
	Placeholder *string
	Default     *Literal
}

// mergeBlocks folds the gflags-namespaced blocks of one target,
// left to right, into a single effective configuration.
func mergeBlocks(target string, blocks []Annotation) (*FieldConfig, error) {
	merged := &FieldConfig{}
	for _, block := range blocks {
		if block.Namespace != Namespace {
			continue
		}
		cfg, err := parseBlock(target, block.Body, annotationKeywords)
		if err != nil {
			return nil, err
		}

		// Later blocks overwrite earlier ones key by key. Skip is
		// the one exception: once set it stays set.
		if cfg.skip {
			merged.Skip = true
		}
		if cfg.prefix != nil {
			merged.Prefix = cfg.prefix
		}
		if cfg.flagCase != nil {
			merged.Case = cfg.flagCase
		}
		if cfg.typ != nil {
			merged.Type = cfg.typ
		}
		if cfg.visibility != nil {
			merged.Visibility = cfg.visibility
		}
		if cfg.placeholder != nil {
			merged.Placeholder = cfg.placeholder
		}
		if cfg.def != nil {
			merged.Default = cfg.def
		}
	}
	return merged, nil
}

// mergeStructConfig resolves the struct-level configuration. The full
// keyword vocabulary parses at struct level, but only prefix and
// casing take effect there.
func mergeStructConfig(target string, blocks []Annotation) (*StructConfig, error) {
	merged, err := mergeBlocks(target, blocks)
	if err != nil {
		return nil, err
	}
	cfg := &StructConfig{Case: KebabCase}
	if merged.Prefix != nil {
		cfg.Prefix = *merged.Prefix
	}
	if merged.Case != nil {
		cfg.Case = *merged.Case
	}
	return cfg, nil
}
