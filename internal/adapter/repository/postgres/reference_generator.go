package postgres

import (
	"crypto/rand"
	"math/big"

	"github.com/payrail/payrail/internal/domain"
)

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ReferenceGenerator produces fixed-length alphanumeric transfer
// references. 12 characters over a 62-symbol alphabet give ~71 bits of
// entropy, so collisions stay negligible at any realistic volume; the
// unique index on transfers.reference backstops the remainder.
type ReferenceGenerator struct {
	length int
}

// NewReferenceGenerator creates a generator with the standard length.
func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{length: domain.ReferenceLength}
}

// Generate returns a new random reference token.
func (g *ReferenceGenerator) Generate() (string, error) {
	max := big.NewInt(int64(len(referenceCharset)))

	buf := make([]byte, g.length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = referenceCharset[n.Int64()]
	}

	return string(buf), nil
}
