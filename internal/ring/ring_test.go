package ring

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInOpenClosed(t *testing.T) {
	t.Run("normal range", func(t *testing.T) {
		require.True(t, InOpenClosed(big.NewInt(3), big.NewInt(7), big.NewInt(5)))
		require.False(t, InOpenClosed(big.NewInt(3), big.NewInt(7), big.NewInt(3)))
		require.True(t, InOpenClosed(big.NewInt(3), big.NewInt(7), big.NewInt(7)))
	})

	t.Run("wraparound", func(t *testing.T) {
		require.True(t, InOpenClosed(big.NewInt(8), big.NewInt(3), big.NewInt(1)))
		require.True(t, InOpenClosed(big.NewInt(8), big.NewInt(3), big.NewInt(9)))
	})

	t.Run("equal endpoints is full ring except a", func(t *testing.T) {
		a := big.NewInt(42)
		require.False(t, InOpenClosed(a, a, a))
		require.True(t, InOpenClosed(a, a, big.NewInt(0)))
		require.True(t, InOpenClosed(a, a, big.NewInt(999)))
	})
}

func TestInOpenOpen(t *testing.T) {
	require.False(t, InOpenOpen(big.NewInt(3), big.NewInt(3), big.NewInt(3)))
	require.False(t, InOpenOpen(big.NewInt(3), big.NewInt(3), big.NewInt(99)))
	require.False(t, InOpenOpen(big.NewInt(3), big.NewInt(7), big.NewInt(7)))
	require.True(t, InOpenOpen(big.NewInt(3), big.NewInt(7), big.NewInt(5)))
}

func TestAddPowerOfTwo(t *testing.T) {
	got := AddPowerOfTwo(big.NewInt(0), 0)
	require.Equal(t, big.NewInt(1), got)

	max := MaxID()
	wrapped := AddPowerOfTwo(max, 0)
	require.Equal(t, 0, big.NewInt(0).Cmp(wrapped))
}

func TestHashIsStable(t *testing.T) {
	a := HashString("node-a:9000")
	b := HashString("node-a:9000")
	require.Equal(t, 0, a.Cmp(b))
	require.True(t, IsValid(a))
}

func TestDistance(t *testing.T) {
	require.Equal(t, big.NewInt(4), Distance(big.NewInt(3), big.NewInt(7)))
	dist := Distance(big.NewInt(7), big.NewInt(3))
	require.Equal(t, 0, dist.Cmp(new(big.Int).Sub(Size(), big.NewInt(4))))
}
