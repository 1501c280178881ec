package build

import (
	"path/filepath"
	"strings"

	"opkit/internal/config"
	"opkit/internal/domain"
)

// platformFlags are the compiler flags the native runtime needs on p.
func platformFlags(p domain.Platform, prefix string) string {
	switch p {
	case domain.Darwin:
		return "-std=c++2a -framework WebKit -framework Cocoa -ObjC++"
	case domain.Windows:
		win64 := filepath.Join(prefix, "src", "win64")
		return "-std=c++20 -I" + quote(prefix) + " -I" + quote(win64) + " -L" + quote(win64)
	default:
		return "-std=c++2a `pkg-config --cflags --libs gtk+-3.0 webkit2gtk-4.0`"
	}
}

// sources are the runtime translation units compiled into every binary.
func sources(p domain.Platform, prefix string) []string {
	proc := "process_unix.cc"
	if p == domain.Windows {
		proc = "process_win.cc"
	}
	return []string{
		filepath.Join(prefix, "src", "main.cc"),
		filepath.Join(prefix, "src", proc),
	}
}

// compileLine assembles the compiler command line. It runs through the
// shell because the linux flags expand pkg-config.
func compileLine(p domain.Platform, env config.Env, userFlags, binary string, debug bool, payload string) string {
	parts := []string{env.CXX}
	for _, src := range sources(p, env.Prefix) {
		parts = append(parts, quote(src))
	}
	parts = append(parts, platformFlags(p, env.Prefix))
	if env.CXXFlags != "" {
		parts = append(parts, env.CXXFlags)
	}
	if userFlags != "" {
		parts = append(parts, userFlags)
	}
	parts = append(parts,
		"-o", quote(binary),
		"-DDEBUG="+debugValue(debug),
		`-DSETTINGS="`+payload+`"`,
	)
	return strings.Join(parts, " ")
}

// quote wraps a path in double quotes when it contains blanks. Both sh and
// cmd accept that form.
func quote(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}

func debugValue(debug bool) string {
	if debug {
		return "1"
	}
	return "0"
}
