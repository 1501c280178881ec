// Package build runs the release pipeline for one project directory.
//
// Stages run strictly in order and each either completes or aborts the run:
//
//	validate -> clean -> layout -> user build -> compile -> package/sign -> notarize -> run
//
// Validation covers settings, layout resolution and signing pre-flight and
// touches nothing on disk. Every external tool goes through a
// domain.Runner with an explicit working directory.
package build
