package settings

import "strings"

// Payload serializes the settings as read from disk, comments and blank
// lines stripped, into one percent-encoded string so the compiled binary
// can embed its own configuration. Synthetic and derived keys and the debug
// suffix are not part of it.
func (s *Settings) Payload() string {
	return EncodeURIComponent(strings.Join(s.source, "\n"))
}

// EncodeURIComponent escapes every byte except A-Z a-z 0-9 and -_.!~*'().
func EncodeURIComponent(v string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
