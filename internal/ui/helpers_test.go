package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Carrier Name", fieldLabel("carrier_name"))
	assert.Equal(t, "Cross Border Location", fieldLabel("cross_border_location"))
	assert.Equal(t, "Poe", fieldLabel("poe"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdef", 5))
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "…", truncate("abc", 1))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
	assert.Equal(t, 1, pageCount(5, 0))
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", orDash("  "))
	assert.Equal(t, "x", orDash("x"))
}
