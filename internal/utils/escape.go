// SPDX-License-Identifier: Apache-2.0

package utils

import "strings"

// htmlEscaper replaces the four characters that would let a submitted value
// break out of an attribute or element when the submission is later rendered
// in a dashboard or spreadsheet formula bar. Ampersands are deliberately left
// alone so already-escaped input is not double-escaped.
var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes <, >, " and ' in s.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
