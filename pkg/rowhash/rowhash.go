// pkg/rowhash/rowhash.go
package rowhash

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Hash computes a stable content hash over a row's fields. The hash is
// order-independent: the same field/value pairs always produce the same
// digest regardless of map iteration order, so it can be compared across
// imports for change detection.
func Hash(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		h.Write([]byte(fields[k]))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
