// Package store provides file persistence for generated bundle content.
//
// Manifests are written through a temp file and renamed into place so a
// failed run never leaves a half-written manifest inside a bundle. Copies
// (icons, entitlements) preserve nothing but the bytes and the requested
// mode.
package store
