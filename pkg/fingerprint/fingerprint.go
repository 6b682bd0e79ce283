// Package fingerprint provides stable content fingerprints for dataset
// snapshots. The search index uses them to detect when it was built from a
// different dataset than the one being queried, and exported JSON carries
// them so downstream builds can tell whether the data changed.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 of raw content.
func Sum(data []byte) string {
	hash := sha256.Sum256(data)

	return hex.EncodeToString(hash[:])
}

// Dataset returns a fingerprint for an ordered list of store keys. The same
// keys in the same order always produce the same fingerprint.
func Dataset(placeIDs []string) string {
	return Sum([]byte(strings.Join(placeIDs, "\n")))
}
