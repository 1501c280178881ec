// Package commands defines the opkit CLI and wires dependencies for subcommands.
//
// Commands
//
//   - opkit <project-dir>         Build, and optionally package, sign, notarize and run
//   - opkit layout <project-dir>  Print the resolved bundle layout as YAML
//
// # Legacy flags
//
// The single-dash tokens of earlier releases (-c, -p, -mn, -xd, ...) are
// rewritten to their long forms before cobra parses the arguments. Any
// argument starting with a token selects it, so -package still means -p.
package commands
