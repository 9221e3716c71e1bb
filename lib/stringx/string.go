// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package stringx

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nikclayton/gflags-derive/lib/builtin"
)

func ToBool(s string) bool {
	if len(s) == 0 {
		return false
	}

	s = strings.ToLower(s)
	return s == "true" || s == "t"
}

// Atof string to float
func Atof[T builtin.Float](v string) T {
	vF64, _ := strconv.ParseFloat(v, 64)
	return T(vF64)
}

// Atoi string to signed integer
func Atoi[T builtin.SignedInteger](v string) T {
	vInt, _ := strconv.ParseInt(v, 10, 64)
	return T(vInt)
}

// Atou string to unsigned integer
func Atou[T builtin.UnsignedInteger](v string) T {
	vUint, _ := strconv.ParseUint(v, 10, 64)
	return T(vUint)
}

// AtoSlice string to signed integer slice
func AtoSlice[T builtin.SignedInteger](s string, sep string) []T {
	ss := strings.Split(s, sep)
	l := make([]T, 0, len(ss))
	for _, v := range ss {
		l = append(l, Atoi[T](v))
	}
	return l
}

// Split Like strings.Split, but remove the spaces from each string.
func Split(s0, sep string) []string {
	s := strings.TrimSpace(s0)
	l := strings.Split(s, sep)

	r := l[:0]
	for _, str := range l {
		r = append(r, strings.TrimSpace(str))
	}

	return r
}

// SnakeCase converts a CamelCase identifier to snake_case. Runs of
// upper-case letters stay together, so "DBUrl" becomes "db_url" and
// "ToStderr" becomes "to_stderr".
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Start a new word at a lower-to-upper boundary, or at
			// the last letter of an acronym run followed by a
			// lower-case letter.
			if i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
