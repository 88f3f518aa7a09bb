package git

import (
	"fmt"
	"strings"
)

// Hash is the content identifier of a git object: 40 hex characters in
// SHA-1 repositories, 64 in SHA-256 ones. It is opaque and only compared.
type Hash string

// ParseHash validates s as a full object hash and returns it lower-cased.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimSpace(s)
	if !isHash(s) {
		return "", fmt.Errorf("invalid object hash %q", s)
	}
	return Hash(strings.ToLower(s)), nil
}

// String returns the hash as a plain string.
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 7 characters, as git prints abbreviated hashes.
func (h Hash) Short() string {
	if len(h) > 7 {
		return string(h[:7])
	}
	return string(h)
}

// isHash reports whether s has the shape of a full SHA-1 or SHA-256 hash.
func isHash(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for i := range len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
