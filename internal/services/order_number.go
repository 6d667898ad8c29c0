package service

import (
	"crypto/rand"
	"fmt"
)

const (
	orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderNumberLength   = 10
)

// OrderNumberGenerator produces public order numbers. Uniqueness is enforced
// by the orders table, callers retry on conflict.
type OrderNumberGenerator func() (string, error)

// NewOrderNumber returns ten characters drawn uniformly from [A-Z0-9].
func NewOrderNumber() (string, error) {
	const n = len(orderNumberAlphabet)
	// largest multiple of n that fits in a byte, anything above is rejected
	const limit = 256 - 256%n

	out := make([]byte, 0, orderNumberLength)
	buf := make([]byte, orderNumberLength*2)

	for len(out) < orderNumberLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, orderNumberAlphabet[int(b)%n])
			if len(out) == orderNumberLength {
				break
			}
		}
	}

	return string(out), nil
}
