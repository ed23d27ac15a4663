package vfat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescriptorTableClaimClose(t *testing.T) {
	var t_ descriptorTable
	t_.reset()

	h := t_.claim(5)
	require.GreaterOrEqual(t, h, 0)
	require.True(t, t_.valid(h))
	require.True(t, t_.anyOpenFor(5))
	require.Equal(t, 1, t_.count())

	require.True(t, t_.close(h))
	require.False(t, t_.valid(h))
	require.False(t, t_.anyOpenFor(5))
	require.Equal(t, 0, t_.count())
}

func TestDescriptorTableCloseInvalid(t *testing.T) {
	var t_ descriptorTable
	t_.reset()
	require.False(t, t_.close(0))
	require.False(t, t_.close(-1))
	require.False(t, t_.close(MaxOpenFiles))
}

func TestDescriptorTableExhaustion(t *testing.T) {
	var t_ descriptorTable
	t_.reset()

	for i := 0; i < MaxOpenFiles; i++ {
		require.NotEqual(t, -1, t_.claim(0))
	}
	require.Equal(t, -1, t_.claim(0))
	require.Equal(t, MaxOpenFiles, t_.count())
}
