package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders a price without trailing zeros: 500 -> "500", 12.5 -> "12.5".
func FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0"
	}
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// FormatRupee renders an amount with the rupee sign, e.g. "₹1000".
func FormatRupee(amount float64) string {
	return "₹" + FormatAmount(amount)
}

// ParseAmount parses "₹1,000", "1000" or "12.50" into a number.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	return strconv.ParseFloat(s, 64)
}

// SafeFilenamePart strips characters that are not allowed in download names.
func SafeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
