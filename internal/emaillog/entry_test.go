package emaillog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, clampLimit(-3))
	assert.Equal(t, 1, clampLimit(0))
	assert.Equal(t, 42, clampLimit(42))
	assert.Equal(t, MaxListLimit, clampLimit(500))
}
