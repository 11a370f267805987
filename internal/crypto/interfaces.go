package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into storable hashes and checks
// candidates against them. Plaintext passwords never leave this boundary.
type PasswordHasher interface {
	// Hash derives a storable hash from password.
	Hash(password string) (string, error)

	// Compare reports whether password matches hash. A malformed hash
	// never matches.
	Compare(hash, password string) bool
}

// SecretGenerator produces unguessable values from the system CSPRNG.
type SecretGenerator interface {
	// NewAPITokenKey returns a fresh 40-character hex API token key.
	NewAPITokenKey() (string, error)

	// NewRecoveryCode returns a decimal code of the configured length drawn
	// uniformly from the whole code space, leading zeros kept.
	NewRecoveryCode() (string, error)
}
