package retrieval

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/shahtirth07/pagepal/internal/domain"
)

// fingerprint derives a stable cache key from the query and filter. The query
// is trimmed but case is preserved, and a NUL byte separates the two inputs
// so "ab"+"c" and "a"+"bc" cannot collide.
func fingerprint(query string, filter domain.Filter) string {
	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(query)))
	h.Write([]byte{0})
	h.Write([]byte(filter.Canonical()))
	return hex.EncodeToString(h.Sum(nil))
}
