package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatAmount formats cents as a decimal amount string (e.g. "12.34"). The
// ledger is currency-agnostic, so no symbol is attached.
func formatAmount(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	units := cents / 100
	rem := cents % 100
	s := strconv.FormatInt(units, 10) + "." + fmt.Sprintf("%02d", rem)
	if neg {
		return "-" + s
	}
	return s
}

// formatShare formats a percentage share with one decimal (e.g. "33.3%").
func formatShare(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// parseRecordID parses a sanitized record id; ids are positive integers.
func parseRecordID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
