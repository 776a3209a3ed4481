package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	assert.Equal(t, "a1b2c3d4", ShortID("a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
	assert.Equal(t, "short", ShortID("short"))
	assert.Equal(t, "", ShortID(""))
}

func TestFormatXAF(t *testing.T) {
	assert.Equal(t, "0 XAF", FormatXAF(0))
	assert.Equal(t, "500 XAF", FormatXAF(500))
	assert.Equal(t, "25,000 XAF", FormatXAF(25000))
	assert.Equal(t, "1,250,000 XAF", FormatXAF(1250000))
	assert.Equal(t, "-75,000 XAF", FormatXAF(-75000))
}
