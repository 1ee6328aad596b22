package commerce

// CredentialStrategy names how an account's credentials were provisioned.
// The capability split is deliberate: only strategies that actually hold a
// password expose hashing operations, so "verify a password against a
// provider account" is impossible to express rather than a runtime error.
type CredentialStrategy interface {
	Name() string
}

// PasswordStrategy is the capability interface for strategies that can hash
// and verify local passwords.
type PasswordStrategy interface {
	CredentialStrategy
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) error
}

// LocalStrategy verifies email+password credentials with bcrypt.
type LocalStrategy struct{}

var _ PasswordStrategy = LocalStrategy{}

func (LocalStrategy) Name() string { return "local" }

func (LocalStrategy) Hash(plaintext string) (string, error) {
	return HashPassword(plaintext)
}

func (LocalStrategy) Verify(plaintext, hash string) error {
	if hash == "" {
		// no local password on record, route to provider login
		return ErrExternalProvider
	}
	return ComparePasswordAndHash(plaintext, hash)
}

// GoogleStrategy marks accounts provisioned through Google sign-in. It
// intentionally has no password operations; completing the OAuth exchange is
// out of scope and lives with the provider.
type GoogleStrategy struct{}

var _ CredentialStrategy = GoogleStrategy{}

func (GoogleStrategy) Name() string { return "google" }
