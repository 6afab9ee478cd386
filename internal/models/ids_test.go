package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.True(t, IsHexID(id), "generated ID %q is not a valid hex ID", id)
		assert.False(t, seen[id], "duplicate ID %q", id)
		seen[id] = true
	}
}

func TestIsHexID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Lowercase Hex", "64f1b2c3d4e5f60718293a4b", true},
		{"Uppercase Hex", "64F1B2C3D4E5F60718293A4B", true},
		{"Too Short", "64f1b2c3d4e5f60718293a4", false},
		{"Too Long", "64f1b2c3d4e5f60718293a4b5", false},
		{"Non-Hex Characters", "64f1b2c3d4e5f60718293a4z", false},
		{"Slug", "my-first-post", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsHexID(tt.input))
		})
	}
}

func TestParseLookupKey(t *testing.T) {
	key := ParseLookupKey("64f1b2c3d4e5f60718293a4b")
	assert.Equal(t, LookupByID, key.Kind)
	assert.Equal(t, "64f1b2c3d4e5f60718293a4b", key.Value)

	key = ParseLookupKey("my-first-post")
	assert.Equal(t, LookupBySlug, key.Kind)
	assert.Equal(t, "my-first-post", key.Value)

	// A 24-character slug that is not pure hex stays a slug
	key = ParseLookupKey("twenty-four-character-go")
	assert.Equal(t, LookupBySlug, key.Kind)
}
