package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode generates a short shareable code for a guide.
// Uniqueness is enforced by the database index; callers retry on conflict.
func GenerateReferralCode() string {
	result := make([]byte, 8)
	for i := range result {
		result[i] = referenceCharset[rand.Intn(len(referenceCharset))]
	}
	return fmt.Sprintf("GP%s", string(result))
}

// GenerateReference generates a unique reference for settlements and orders
func GenerateReference(prefix string) string {
	result := make([]byte, 8)
	for i := range result {
		result[i] = referenceCharset[rand.Intn(len(referenceCharset))]
	}

	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s_%s_%s", prefix, timestamp, string(result))
}
