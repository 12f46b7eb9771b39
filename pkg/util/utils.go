package util

import (
	"context"
	"fmt"
	"strings"

	"github.com/currantlabs/ble"
	"github.com/google/uuid"
)

// AddrEqualAddr compares two hardware addresses ignoring case
func AddrEqualAddr(a string, b string) bool {
	return strings.ToUpper(a) == strings.ToUpper(b)
}

// NormalizeUUID returns the canonical lower-case 128-bit form of s.
// 16 and 32 bit short forms ("180d", "0000180d") are expanded with the Bluetooth base UUID.
func NormalizeUUID(s string) (string, error) {
	compact := strings.ToLower(strings.Replace(strings.TrimSpace(s), "-", "", -1))
	switch len(compact) {
	case 4:
		compact = baseUUIDPrefix + compact
		fallthrough
	case 8:
		s = compact + baseUUIDSuffix
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid uuid %q: %s", s, err)
	}
	return u.String(), nil
}

// UuidEqualStr reports whether a stack UUID and a string UUID name the same attribute
func UuidEqualStr(u ble.UUID, s string) bool {
	return UuidStrEqualStr(UuidToStr(u), s)
}

// UuidStrEqualStr compares two string UUIDs in any supported form
func UuidStrEqualStr(a string, b string) bool {
	na, err := NormalizeUUID(a)
	if err != nil {
		return false
	}
	nb, err := NormalizeUUID(b)
	if err != nil {
		return false
	}
	return na == nb
}

// UuidToStr converts a stack UUID to its canonical string, falling back to raw hex
func UuidToStr(u ble.UUID) string {
	raw := u.String()
	if s, err := NormalizeUUID(raw); err == nil {
		return s
	}
	return raw
}

// MakeSigContext derives a cancellable context that is also cancelled on SIGINT/SIGTERM
func MakeSigContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return ble.WithSigHandler(ctx, cancel), cancel
}
