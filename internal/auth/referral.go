package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferralCode builds a code like "ARJU-7XK2M9" from the user's name
// plus random characters from an unambiguous alphabet.
func GenerateReferralCode(name string) string {
	prefix := strings.ToUpper(strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, name))
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	if prefix == "" {
		prefix = "USER"
	}

	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referralAlphabet))))
		if err != nil {
			panic(err)
		}
		suffix[i] = referralAlphabet[n.Int64()]
	}

	return fmt.Sprintf("%s-%s", prefix, suffix)
}

// GenerateUsername builds a placeholder username from the name and a random
// numeric tail; registration does not ask the user to pick one.
func GenerateUsername(name string) string {
	base := strings.ToLower(strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, name))
	if len(base) > 12 {
		base = base[:12]
	}
	if base == "" {
		base = "member"
	}

	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s%05d", base, n.Int64())
}
