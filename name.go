// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package gflags

import "strings"

// flagName computes the external flag name for a field. The prefix is
// always inserted as a single atomic segment; only the field name is
// re-split on "_" when building kebab-case names.
func flagName(prefix string, c FlagCase, field string) string {
	if c == SnakeCase {
		if prefix == "" {
			return field
		}
		return prefix + "_" + field
	}

	var segments []string
	if prefix != "" {
		segments = append(segments, prefix)
	}
	segments = append(segments, strings.Split(field, "_")...)
	return strings.Join(segments, "-")
}
