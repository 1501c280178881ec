// Package tmpl renders the manifest templates embedded in opkit.
//
// Placeholders are {{key}}; there are no conditionals or loops. A
// placeholder without a matching key is left in the output unchanged, since
// each platform template may reference keys another settings set lacks.
package tmpl

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Render substitutes every {{key}} in template with vars[key]. It does no
// I/O. Substituted values are not scanned again.
func Render(template string, vars map[string]string) string {
	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		i := strings.Index(rest, openDelim)
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		j := strings.Index(rest[i+len(openDelim):], closeDelim)
		if j < 0 {
			b.WriteString(rest)
			return b.String()
		}
		key := rest[i+len(openDelim) : i+len(openDelim)+j]
		end := i + len(openDelim) + j + len(closeDelim)

		b.WriteString(rest[:i])
		if v, ok := vars[key]; ok && !strings.Contains(key, openDelim) {
			b.WriteString(v)
			rest = rest[end:]
			continue
		}
		// Emit only the opening brace pair so a nested "{{" in key is
		// still considered as a placeholder start.
		b.WriteString(openDelim)
		rest = rest[i+len(openDelim):]
	}
}

// Merge flattens maps into one; later maps win on conflicting keys.
func Merge(maps ...map[string]string) map[string]string {
	n := 0
	for _, m := range maps {
		n += len(m)
	}
	out := make(map[string]string, n)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
