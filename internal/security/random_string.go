package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// RecoveryCodeAlphabet omits nothing; codes are long enough that ambiguous
// glyphs are tolerable and the format regex stays simple.
const RecoveryCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the
// requested length drawn from alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// RecoveryCode mints a FOLIO-XXXX-XXXX-XXXX one-time recovery code.
func RecoveryCode() (string, error) {
	groups := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		group, err := RandomString(4, RecoveryCodeAlphabet)
		if err != nil {
			return "", err
		}
		groups = append(groups, group)
	}
	return "FOLIO-" + strings.Join(groups, "-"), nil
}
