package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode()
	assert.Len(t, code, 10)
	assert.True(t, strings.HasPrefix(code, "GP"))
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestGenerateReference(t *testing.T) {
	ref := GenerateReference("STL")
	parts := strings.Split(ref, "_")
	assert.Len(t, parts, 3)
	assert.Equal(t, "STL", parts[0])
	assert.Equal(t, time.Now().Format("20060102"), parts[1])
	assert.Len(t, parts[2], 8)
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
}
