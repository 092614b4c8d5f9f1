package content

import "github.com/microcosm-cc/bluemonday"

var ugc = bluemonday.UGCPolicy()

// Sanitize strips active HTML from user-authored markdown/embed text.
// Markdown syntax itself passes through untouched.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}
