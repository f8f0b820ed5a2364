package intake

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Digest computes a short content hash of extracted text using xxhash.
// Identical text always yields the same digest.
func Digest(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
