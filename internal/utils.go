package internal

import (
	"math"
	"strings"

	"github.com/goccy/go-json"
)

// serializedSize is the byte length of v encoded as JSON, or 0 when v cannot be encoded.
func serializedSize(v any) int {
	raw, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(raw)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

// normalizeText trims, lowercases and collapses internal whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
