package auth

import "github.com/alexedwards/argon2id"

const MinPasswordLength = 8

// DefaultPasswordParams follow the OWASP argon2id baseline.
var DefaultPasswordParams = &argon2id.Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, DefaultPasswordParams)
}

// ComparePassword returns false without error for accounts that never had a password set.
func ComparePassword(password, hash string) (bool, error) {
	if hash == "" {
		return false, nil
	}
	return argon2id.ComparePasswordAndHash(password, hash)
}

// NeedsRehash reports whether hash was created with parameters other than
// DefaultPasswordParams. Unparseable hashes also need a rehash.
func NeedsRehash(hash string) bool {
	if hash == "" {
		return false
	}
	params, _, _, err := argon2id.DecodeHash(hash)
	if err != nil {
		return true
	}
	want := DefaultPasswordParams
	return params.Memory != want.Memory ||
		params.Iterations != want.Iterations ||
		params.Parallelism != want.Parallelism ||
		params.KeyLength != want.KeyLength
}
