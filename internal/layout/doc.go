// Package layout computes the platform-specific bundle layout of a build.
//
// Resolve is pure: it derives every path the pipeline reads or writes from
// the validated settings and returns an immutable Plan. Materialize applies
// a Plan to disk, creating directories, rendering manifests and copying
// the icon. All paths of a Plan lie under its output root.
//
//	darwin   <output>/<name>.app/Contents/{MacOS,Resources,Info.plist}
//	linux    <output>/<executable>_<version>-<revision>_<arch>/
//	           opt/<name>, DEBIAN/control, usr/share/applications,
//	           usr/share/icons/hicolor/256x256/apps
//	windows  <output>/<executable>-<version>/AppxManifest.xml
package layout
