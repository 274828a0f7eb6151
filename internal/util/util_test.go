package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	assert.EqualValues(t, 5, Abs(-5))
	assert.EqualValues(t, 5, Abs(5))
	assert.EqualValues(t, int16(5), Abs16(-5))
	assert.EqualValues(t, int64(5), Abs64(-5))
}

func TestMinMaxClamp(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 2, Max(1, 2))
	assert.Equal(t, 5, Clamp(10, 0, 5))
	assert.Equal(t, 0, Clamp(-10, 0, 5))
	assert.Equal(t, 3, Clamp(3, 0, 5))
}

func TestIsAlphaIsDigit(t *testing.T) {
	assert.True(t, IsAlpha('a'))
	assert.True(t, IsAlpha('Z'))
	assert.False(t, IsAlpha('5'))
	assert.True(t, IsDigit('5'))
	assert.False(t, IsDigit('z'))
}
