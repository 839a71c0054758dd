// Package requestid generates compact request identifiers for log
// correlation. IDs carry a time-sortable base62 prefix so they cluster by
// arrival time.
package requestid

import (
	"crypto/rand"
	"strings"
	"time"
)

// Base62 alphabet: 0-9, A-Z, a-z (62 characters)
const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const randomLength = 12

// New returns an ID like "req_0CL2KwaB3cD5eF7gH9" with a 6-char timestamp
// prefix followed by a random portion.
func New() string {
	return "req_" + encodeTimestamp(time.Now().Unix()) + randomBase62(randomLength)
}

// encodeTimestamp encodes a Unix timestamp (seconds) as a 6-character base62
// string. Output is lexicographically sortable for timestamps.
func encodeTimestamp(timestampSeconds int64) string {
	n := timestampSeconds
	result := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		result[i] = base62Alphabet[n%62]
		n /= 62
	}
	return string(result)
}

// randomBase62 generates a random base62 string using rejection sampling:
// 6 bits are extracted at a time and values >= 62 are rejected, keeping the
// distribution uniform at ~5.95 bits of entropy per character.
func randomBase62(length int) string {
	// Request extra bytes to account for the ~3% rejection rate
	bytesNeeded := (length*6)/8 + 4
	bytes := make([]byte, bytesNeeded)
	if _, err := rand.Read(bytes); err != nil {
		panic("failed to read random bytes: " + err.Error())
	}

	var result strings.Builder
	bitBuffer := uint64(0)
	bitsInBuffer := uint(0)
	byteIndex := 0

	for result.Len() < length {
		for bitsInBuffer < 6 && byteIndex < len(bytes) {
			bitBuffer = (bitBuffer << 8) | uint64(bytes[byteIndex])
			bitsInBuffer += 8
			byteIndex++
		}

		value := (bitBuffer >> (bitsInBuffer - 6)) & 0x3f
		bitsInBuffer -= 6

		if value < 62 {
			result.WriteByte(base62Alphabet[value])
		}

		// If we run out of bytes (unlikely), get more
		if byteIndex >= len(bytes) && result.Len() < length {
			if _, err := rand.Read(bytes); err != nil {
				panic("failed to read random bytes: " + err.Error())
			}
			byteIndex = 0
			bitBuffer = 0
			bitsInBuffer = 0
		}
	}

	return result.String()
}
