package model

// PasswordHasher is the one-way credential hashing contract. The core never
// stores or compares plaintext passwords directly.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
