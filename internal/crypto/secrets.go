package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const apiTokenKeyBytes = 20

type secretGenerator struct {
	codeDigits int
	codeSpace  *big.Int
}

// NewSecretGenerator returns a SecretGenerator issuing recovery codes of
// codeDigits decimal digits.
func NewSecretGenerator(codeDigits int) SecretGenerator {
	space := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(codeDigits)), nil)
	return &secretGenerator{codeDigits: codeDigits, codeSpace: space}
}

func (g *secretGenerator) NewAPITokenKey() (string, error) {
	buf := make([]byte, apiTokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

func (g *secretGenerator) NewRecoveryCode() (string, error) {
	n, err := rand.Int(rand.Reader, g.codeSpace)
	if err != nil {
		return "", fmt.Errorf("error drawing recovery code: %w", err)
	}

	return fmt.Sprintf("%0*d", g.codeDigits, n), nil
}
