package commands

import "strings"

// legacyTokens maps single-dash tokens to long flags. Longer tokens come
// first so -me and -mn are not shadowed.
var legacyTokens = []struct {
	token string
	flag  string
}{
	{"-me", "--entitlements"},
	{"-mn", "--notarize"},
	{"-xd", "--no-debug"},
	{"-b", "--app-store"},
	{"-s", "--app-store"},
	{"-c", "--codesign"},
	{"-h", "--help"},
	{"-o", "--only-build"},
	{"-p", "--package"},
	{"-r", "--run"},
}

// TranslateArgs rewrites legacy tokens to long flags. Other arguments,
// including everything after "--", are passed through.
func TranslateArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		out = append(out, translate(arg))
	}
	return out
}

func translate(arg string) string {
	if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
		return arg
	}
	for _, t := range legacyTokens {
		if rest, ok := strings.CutPrefix(arg, t.token); ok && letters(rest) {
			return t.flag
		}
	}
	return arg
}

// letters reports whether s holds only ASCII letters, so -package matches
// -p but -p=1 and -p2 do not.
func letters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
