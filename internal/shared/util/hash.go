package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the hex SHA-256 digest of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// PairKey identifies an ordered pair of documents by their contents.
func PairKey(first, second []byte) string {
	return ContentHash(first) + ":" + ContentHash(second)
}
