package testutil

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
)

// RandomStakerAddress returns a staker identity usable as an account key.
func RandomStakerAddress() string {
	return fmt.Sprintf("staker-%s", gofakeit.LetterN(12))
}

// RandomCollection returns a collection identity.
func RandomCollection() string {
	return fmt.Sprintf("collection-%s", gofakeit.LetterN(8))
}

// RandomItemID returns an item identifier.
func RandomItemID() uint64 {
	return gofakeit.Uint64()
}

// RandomAlphaNum generates a random alphanumeric string of the given length.
func RandomAlphaNum(length int) string {
	return gofakeit.LetterN(uint(length))
}
