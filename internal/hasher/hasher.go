// Package hasher wraps the content-hash primitive used for pictDB's
// dedup engine. SHA-256 is treated as a black box by the catalog package
// (spec §6's framing of the hash as an external collaborator); this
// package is the one place that imports crypto/sha256.
package hasher

import "crypto/sha256"

// SHA256 computes content digests with the standard library's SHA-256.
// The zero value is ready to use.
type SHA256 struct{}

// Sum returns the SHA-256 digest of buf.
func (SHA256) Sum(buf []byte) [32]byte {
	return sha256.Sum256(buf)
}
