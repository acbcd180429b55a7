// Package id generates prefixed unique identifiers for domain entities.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Well-known entity prefixes.
const (
	PrefixChild    = "chd"
	PrefixItem     = "itm"
	PrefixInterest = "int"
	PrefixSquad    = "sqd"
	PrefixFavorite = "fav"
	PrefixAccount  = "acc"
	PrefixToken    = "tok"
	PrefixStream   = "sse"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "chd-V1StGXR8_Z5jdHi6B-myT").
//
// NanoIDs are URL-friendly, compact, and use a larger alphabet than UUIDs
// for better entropy per character.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
// Use only where failure should crash the program (e.g., seeding).
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// InviteCode generates a short human-shareable squad invite code.
// Uses an unambiguous uppercase alphabet (no 0/O or 1/I).
func InviteCode() (string, error) {
	code, err := gonanoid.Generate("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", 8)
	if err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return code, nil
}
