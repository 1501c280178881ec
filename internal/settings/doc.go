// Package settings loads and validates a project's settings.config.
//
// The file is line oriented: each non-blank line that does not start with
// '#' is split on its first colon into a trimmed key and value. The build
// command declared for the running platform (mac_cmd, linux_cmd or
// win_cmd) is additionally exposed under the synthetic key "_cmd".
//
// Settings are loaded once, validated before any side effect and mutated
// at most once by ApplyDebug.
package settings
