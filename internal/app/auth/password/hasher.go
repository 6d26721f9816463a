package password

import (
	"errors"
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

var DefaultParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher hashes with argon2id and still accepts bcrypt hashes carried over
// from the previous store. The pepper only applies to argon2id.
type Hasher struct {
	params *argon2id.Params
	pepper string
}

func NewHasher(pepper string, params *argon2id.Params) *Hasher {
	if params == nil {
		params = DefaultParams
	}
	return &Hasher{params: params, pepper: pepper}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := argon2id.CreateHash(plaintext+h.pepper, h.params)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return hash, nil
}

func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	if isBcrypt(hash) {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, customErrors.WrapInternal(err, "verify bcrypt hash")
		}
	}

	ok, err := argon2id.ComparePasswordAndHash(plaintext+h.pepper, hash)
	if err != nil {
		return false, customErrors.WrapInternal(err, "verify argon2id hash")
	}
	return ok, nil
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
