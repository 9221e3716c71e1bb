// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package gflags

import (
	"strings"
)

// Annotation keyword vocabulary. The same parser serves struct- and
// field-level blocks; the struct merge only lifts prefix and casing.
const (
	KeywordSkip        = "skip"
	KeywordPrefix      = "prefix"
	KeywordType        = "type"
	KeywordVisibility  = "visibility"
	KeywordPlaceholder = "placeholder"
	KeywordDefault     = "default"
)

var annotationKeywords = map[string]bool{
	KeywordSkip:        true,
	KeywordPrefix:      true,
	KeywordType:        true,
	KeywordVisibility:  true,
	KeywordPlaceholder: true,
	KeywordDefault:     true,
}

// Literal is one annotation value, kept verbatim. For quoted strings
// Str holds the unquoted text; everything else is Raw only.
type Literal struct {
	Raw      string
	Str      string
	IsString bool
}

// Value returns the usable text of the literal: the unquoted string
// for string literals, the raw token otherwise.
func (l Literal) Value() string {
	if l.IsString {
		return l.Str
	}
	return l.Raw
}

// blockConfig is the parsed form of a single annotation block.
type blockConfig struct {
	skip        bool
	prefix      *string
	flagCase    *FlagCase
	typ         *string
	visibility  *Visibility
	placeholder *string
	def         *Literal
}

type attrEntry struct {
	key      string
	hasValue bool
	val      Literal
}

// parseBlock parses the body of one annotation block, e.g.
//
//	skip
//	prefix = "log-"
//	type = "string", placeholder = "DIR"
//
// String literals may be delimited with double or single quotes; the
// latter exist because struct tags are backtick-quoted and cannot
// contain a double quote.
func parseBlock(target, body string, keywords map[string]bool) (*blockConfig, error) {
	entries, err := scanEntries(target, body)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &EmptyAttributeError{Target: target}
	}

	cfg := &blockConfig{}
	for _, e := range entries {
		if !e.hasValue {
			if !keywords[e.key] {
				return nil, &UnknownKeyError{Target: target, Key: e.key}
			}
			if e.key == KeywordSkip {
				// A bare skip ends the block; anything after it
				// is never inspected, matching long-standing
				// behavior callers rely on.
				cfg.skip = true
				break
			}
			return nil, &KeywordRequiresValueError{Target: target, Key: e.key}
		}

		switch e.key {
		case KeywordDefault:
			lit := e.val
			cfg.def = &lit

		case KeywordPlaceholder:
			s, err := stringValue(target, e)
			if err != nil {
				return nil, err
			}
			cfg.placeholder = &s

		case KeywordPrefix:
			s, err := stringValue(target, e)
			if err != nil {
				return nil, err
			}
			prefix, flagCase := splitPrefix(s)
			cfg.prefix = &prefix
			if flagCase != nil {
				cfg.flagCase = flagCase
			}

		case KeywordSkip:
			return nil, &SkipTakesValueError{Target: target}

		case KeywordType:
			s, err := stringValue(target, e)
			if err != nil {
				return nil, err
			}
			cfg.typ = &s

		case KeywordVisibility:
			s, err := stringValue(target, e)
			if err != nil {
				return nil, err
			}
			vis, err := ParseVisibility(target, s)
			if err != nil {
				return nil, err
			}
			cfg.visibility = &vis

		default:
			return nil, &UnknownKeyError{Target: target, Key: e.key}
		}
	}

	return cfg, nil
}

// splitPrefix applies the prefix suffix rule: a trailing "_" forces
// snake_case, a trailing "-" forces kebab-case, and either is stripped
// from the stored prefix. Both checks run, in that order.
func splitPrefix(prefix string) (string, *FlagCase) {
	var flagCase *FlagCase
	if strings.HasSuffix(prefix, "_") {
		c := SnakeCase
		flagCase = &c
		prefix = prefix[:len(prefix)-1]
	}
	if strings.HasSuffix(prefix, "-") {
		c := KebabCase
		flagCase = &c
		prefix = prefix[:len(prefix)-1]
	}
	return prefix, flagCase
}

func stringValue(target string, e attrEntry) (string, error) {
	if !e.val.IsString {
		return "", &ExpectedStringLiteralError{Target: target, Key: e.key}
	}
	if e.val.Str == "" {
		return "", &EmptyValueError{Target: target, Key: e.key}
	}
	return e.val.Str, nil
}

// scanEntries splits a block body into key / key=value entries.
// Commas separate entries; commas inside quoted strings do not.
func scanEntries(target, body string) ([]attrEntry, error) {
	var entries []attrEntry
	i := 0
	n := len(body)

	skipSpace := func() {
		for i < n && (body[i] == ' ' || body[i] == '\t') {
			i++
		}
	}

	for {
		skipSpace()
		if i >= n {
			break
		}

		start := i
		for i < n && isIdentByte(body[i], i > start) {
			i++
		}
		key := body[start:i]
		if key == "" {
			return nil, &MalformedAttributeError{Target: target, Detail: strings.TrimSpace(body[i:])}
		}

		skipSpace()
		if i >= n || body[i] == ',' {
			entries = append(entries, attrEntry{key: key})
			if i < n {
				i++ // consume ','
			}
			continue
		}

		if body[i] != '=' {
			return nil, &MalformedAttributeError{Target: target, Detail: body[start:]}
		}
		i++ // consume '='
		skipSpace()
		if i >= n {
			return nil, &MalformedAttributeError{Target: target, Detail: body[start:]}
		}

		var lit Literal
		if body[i] == '"' || body[i] == '\'' {
			quote := body[i]
			j := i + 1
			var sb strings.Builder
			for j < n && body[j] != quote {
				if body[j] == '\\' && j+1 < n {
					j++
				}
				sb.WriteByte(body[j])
				j++
			}
			if j >= n {
				return nil, &MalformedAttributeError{Target: target, Detail: body[i:]}
			}
			lit = Literal{Raw: body[i : j+1], Str: sb.String(), IsString: true}
			i = j + 1
		} else {
			j := i
			for j < n && body[j] != ',' {
				j++
			}
			raw := strings.TrimSpace(body[i:j])
			if raw == "" {
				return nil, &MalformedAttributeError{Target: target, Detail: body[start:]}
			}
			lit = Literal{Raw: raw}
			i = j
		}

		entries = append(entries, attrEntry{key: key, hasValue: true, val: lit})

		skipSpace()
		if i < n {
			if body[i] != ',' {
				return nil, &MalformedAttributeError{Target: target, Detail: body[i:]}
			}
			i++
		}
	}

	return entries, nil
}

func isIdentByte(c byte, notFirst bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return notFirst
	}
	return false
}
