package crypto

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// ErrCertificatePassword is returned when the password does not open the
// certificate.
var ErrCertificatePassword = errors.New("certificate password is incorrect")

// CertCheck is the outcome of a certificate pre-flight.
type CertCheck struct {
	// Verified is true when the certificate decoded with the password.
	Verified bool
	// Reason explains why the check could not be completed, when
	// Verified is false and no error was returned.
	Reason string
}

// CheckCertificate opens the PKCS#12 file at path with password. A wrong
// password yields ErrCertificatePassword. Containers the decoder does not
// understand (newer cipher suites, unusual bag types) are not an error;
// the signing tool has the final say on them.
func CheckCertificate(path, password string) (CertCheck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CertCheck{}, err
	}
	defer Wipe(data)

	blocks, err := pkcs12.ToPEM(data, password)
	switch {
	case err == nil:
	case errors.Is(err, pkcs12.ErrIncorrectPassword):
		return CertCheck{}, fmt.Errorf("%s: %w", path, ErrCertificatePassword)
	default:
		return CertCheck{Reason: err.Error()}, nil
	}

	for _, b := range blocks {
		Wipe(b.Bytes)
	}
	if len(blocks) == 0 {
		return CertCheck{Reason: "no certificate or key found"}, nil
	}
	return CertCheck{Verified: true}, nil
}
