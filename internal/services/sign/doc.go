// Package sign code-signs produced bundles with the platform tools:
// codesign for macOS bundles and signtool for Windows packages.
package sign
