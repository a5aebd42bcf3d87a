// Package filename makes client-supplied file names safe to store and to
// write to disk.
package filename

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Secure reduces a client-supplied filename to a safe ASCII name: unicode
// is decomposed and non-ASCII dropped, path separators and whitespace become
// underscores, anything outside [A-Za-z0-9_.-] is removed, and leading or
// trailing dots and underscores are trimmed. The result may be empty.
func Secure(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}
