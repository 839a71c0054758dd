package requestid

import (
	"regexp"
	"strings"
	"testing"
)

func TestEncodeTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		expected string
	}{
		{"Zero timestamp", 0, "000000"},
		{"One second", 1, "000001"},
		{"62 seconds", 62, "000010"},
		{"One minute", 60, "00000y"},
		{"One hour", 3600, "0000w4"},
		{"One day", 86400, "000MTY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := encodeTimestamp(tt.seconds)
			if result != tt.expected {
				t.Errorf("encodeTimestamp(%d) = %s, want %s", tt.seconds, result, tt.expected)
			}
		})
	}
}

func TestEncodeTimestampSortable(t *testing.T) {
	a := encodeTimestamp(1704067200)
	b := encodeTimestamp(1704067201)
	if !(a < b) {
		t.Errorf("Encoded timestamps not sortable: %s >= %s", a, b)
	}
}

func TestNewFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^req_[0-9A-Za-z]{18}$`)

	id := New()
	if !pattern.MatchString(id) {
		t.Errorf("New() = %s, does not match expected format", id)
	}
}

func TestNewUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestRandomBase62Alphabet(t *testing.T) {
	s := randomBase62(200)
	if len(s) != 200 {
		t.Fatalf("randomBase62(200) returned %d characters", len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune(base62Alphabet, c) {
			t.Errorf("Result contains non-base62 character: %c", c)
		}
	}
}
