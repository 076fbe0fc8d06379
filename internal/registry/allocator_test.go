package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterAllocatorSequence(t *testing.T) {
	alloc := NewCounterAllocator(0)

	first, err := alloc.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "APT-0001", first)

	second, err := alloc.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "APT-0002", second)

	require.Equal(t, 2, alloc.Last())
}

func TestCounterAllocatorResumesAfterLast(t *testing.T) {
	alloc := NewCounterAllocator(41)

	ref, err := alloc.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "APT-0042", ref)
}

func TestCounterAllocatorExhaustion(t *testing.T) {
	alloc := NewCounterAllocator(MaxReferenceSeq - 1)

	ref, err := alloc.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "APT-9999", ref)

	_, err = alloc.Next(context.Background())
	require.ErrorIs(t, err, ErrAllocatorExhausted)

	// Exhaustion is sticky: the counter never wraps.
	_, err = alloc.Next(context.Background())
	require.ErrorIs(t, err, ErrAllocatorExhausted)
}

func TestParseReference(t *testing.T) {
	seq, err := ParseReference("APT-0042")
	require.NoError(t, err)
	require.Equal(t, 42, seq)

	for _, bad := range []string{"APT-1", "apt-0042", "APT-00042", "XYZ-0042", "APT-00a2", ""} {
		_, err := ParseReference(bad)
		require.Error(t, err, "expected %q to be rejected", bad)
		ie, ok := AsInvalidInput(err)
		require.True(t, ok)
		require.Equal(t, "reference_id", ie.Field)
	}
}
