package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONValueScan(t *testing.T) {
	branding := JSON{"accent": "#1a73e8", "hero_text": "Guided medical travel"}

	value, err := branding.Value()
	require.NoError(t, err)

	var got JSON
	require.NoError(t, got.Scan(value))
	assert.Equal(t, branding, got)
}

func TestJSONNil(t *testing.T) {
	var branding JSON

	value, err := branding.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var got JSON
	require.NoError(t, got.Scan(nil))
	assert.Nil(t, got)
}
