package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateSecureRandomString generates a cryptographically secure random
// string of the specified byte length, hex encoded.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewFolioNumber builds a human-readable folio number, e.g. F-20260828-3FA2.
func NewFolioNumber(now time.Time) string {
	return numbered("F", now)
}

// NewTransactionNumber builds a human-readable transaction number, e.g. T-20260828-9C01.
func NewTransactionNumber(now time.Time) string {
	return numbered("T", now)
}

// NewInvoiceNumber builds the synthetic invoice number assigned at settlement,
// e.g. INV-20260828-B4D7.
func NewInvoiceNumber(now time.Time) string {
	return numbered("INV", now)
}

func numbered(prefix string, now time.Time) string {
	suffix, err := GenerateSecureRandomString(2)
	if err != nil {
		// posting paths must not fail on entropy; timestamp suffix instead
		suffix = fmt.Sprintf("%04d", now.Nanosecond()%10000)
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.UTC().Format("20060102"), strings.ToUpper(suffix))
}
