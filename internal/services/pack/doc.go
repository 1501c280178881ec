// Package pack turns a materialized bundle into the platform's
// distributable: a Debian package on Linux, a zip archive on macOS and an
// appx container on Windows. Each packager only drives the native tool;
// the bundle contents come from the build.
package pack
