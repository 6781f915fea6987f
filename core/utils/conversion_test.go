package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		in   any
		want int64
	}{
		{nil, 0},
		{int64(725000000000000000), 725000000000000000},
		{42, 42},
		{int32(-3), -3},
		{uint64(9), 9},
		{3.9, 3},
		{true, 1},
		{"17", 17},
		{" 18 ", 18},
		{"1.5e3", 1500},
		{[]byte("99"), 99},
		{"abc", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToInt64(tt.in), "input %#v", tt.in)
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "hi", ToString("hi"))
	assert.Equal(t, "hi", ToString([]byte("hi")))
	assert.Equal(t, "12", ToString(int64(12)))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(int64(1)))
	assert.True(t, ToBool(int64(2)))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool([]byte("1")))
	assert.False(t, ToBool(int64(0)))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}
