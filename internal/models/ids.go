package models

import (
	"crypto/rand"
	"encoding/hex"
)

// idLen is the length of entity identifiers: 12 random bytes hex-encoded.
const idLen = 24

// NewID returns a new 24-character lowercase hex identifier.
func NewID() string {
	var b [idLen / 2]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing means the process has bigger problems.
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// LookupKind discriminates the two ways a post can be addressed.
type LookupKind int

const (
	// LookupByID addresses a post by its hex identifier.
	LookupByID LookupKind = iota
	// LookupBySlug addresses a post by its URL slug.
	LookupBySlug
)

// LookupKey is a tagged post lookup key, resolved once at the API boundary.
type LookupKey struct {
	Kind  LookupKind
	Value string
}

// ParseLookupKey classifies a path parameter as an ID or a slug.
// Anything shaped like a 24-character hex string is treated as an ID;
// everything else is a slug.
func ParseLookupKey(param string) LookupKey {
	if IsHexID(param) {
		return LookupKey{Kind: LookupByID, Value: param}
	}
	return LookupKey{Kind: LookupBySlug, Value: param}
}

// IsHexID reports whether s matches the 24-character hex identifier shape.
func IsHexID(s string) bool {
	if len(s) != idLen {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}
