// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package util

import (
	"strings"
)

// Or returns the first non-blank value, or an empty string.
func Or(values ...string) string {
	for i := range values {
		if v := strings.TrimSpace(values[i]); v != "" {
			return v
		}
	}
	return ""
}

// Yes returns true if the provided case-insensitive string matches 'yes' and is used to parse config values.
func Yes(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "yes")
}
