// Package random mints short opaque tokens.
package random

import (
	crand "crypto/rand"
	"encoding/base32"
	mrand "math/rand/v2"
)

const alphabet = "0123456789abcdefghijklmnopqrstuv"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Token returns n characters drawn from a lowercase base32 alphabet. It reads
// the system CSPRNG and falls back to math/rand if that fails.
func Token(n int) string {
	if n <= 0 {
		return ""
	}

	b := make([]byte, encoding.DecodedLen(n)+1)
	if _, err := crand.Read(b); err != nil {
		for i := range b {
			b[i] = byte(mrand.UintN(256))
		}
	}
	return encoding.EncodeToString(b)[:n]
}
