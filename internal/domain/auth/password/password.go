// Package password declares the one-way password hashing port.
package password

type Hasher interface {
	// Hash returns a salted hash; it never returns the plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
	// an error means the hash itself could not be processed.
	Verify(plaintext, hash string) (bool, error)
}
