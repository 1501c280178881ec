// Package crypto holds the few cryptographic helpers opkit needs.
//
// Contents
//
//   - SHA-256 digests of produced artifacts (FileDigest)
//   - Pre-flight checks of PKCS#12 signing certificates (CheckCertificate)
//   - Best-effort memory wiping for key material read from disk (Wipe)
//
// # Notes
//
// Nothing here signs anything. Signing is done by the platform tools; this
// package only catches a wrong certificate password before they run.
package crypto
