// Package app wires application dependencies for the CLI.
//
// It loads the tool environment, builds the logger, the process runner and
// the build pipeline from Config, exposing them via the Wire struct for
// commands to use.
package app
