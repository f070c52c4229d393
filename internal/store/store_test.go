package store

import (
	"math/big"
	"testing"
	"time"

	"github.com/jorvik-labs/ringd/internal/ring"
	"github.com/stretchr/testify/require"
)

func TestGetPutDelete(t *testing.T) {
	s := New()

	_, status := s.Get("foo")
	require.Equal(t, StatusNotFound, status)

	s.Put("foo", []byte("bar"), 0)
	v, status := s.Get("foo")
	require.Equal(t, StatusOK, status)
	require.Equal(t, "bar", string(v))

	s.Delete("foo")
	_, status = s.Get("foo")
	require.Equal(t, StatusNotFound, status)
}

func TestTTLExpiry(t *testing.T) {
	s := New()
	base := time.Now()
	s.now = func() time.Time { return base }

	s.Put("k", []byte("v"), time.Second)

	v, status := s.Get("k")
	require.Equal(t, StatusOK, status)
	require.Equal(t, "v", string(v))

	s.now = func() time.Time { return base.Add(3 * time.Second) }

	_, status = s.Get("k")
	require.Equal(t, StatusExpired, status)

	// Expired entries are deleted synchronously on read.
	_, status = s.Get("k")
	require.Equal(t, StatusNotFound, status)
}

func TestDrainAndCloneRange(t *testing.T) {
	s := New()
	s.Put("alpha", []byte("1"), 0)
	s.Put("beta", []byte("2"), 0)
	s.Put("gamma", []byte("3"), 0)

	lo := big.NewInt(0)
	hi := ring.MaxID()

	cloned := s.CloneRange(lo, hi)
	require.Len(t, cloned, 3)
	require.Equal(t, 3, s.Len())

	drained := s.DrainRange(lo, hi)
	require.Len(t, drained, 3)
	require.Equal(t, 0, s.Len())
}

func TestMergeReplicatedKeepsLaterExpiration(t *testing.T) {
	s := New()
	// The expirations below are small unix timestamps; pin the clock before
	// all of them so no entry reads back as expired.
	s.now = func() time.Time { return time.Unix(100, 0) }
	s.PutAbsolute("k", []byte("old"), 1000)

	s.MergeReplicated([]Pair{{Key: "k", Value: []byte("stale"), Expiration: 500}})
	v, _ := s.Get("k")
	require.Equal(t, "old", string(v))

	s.MergeReplicated([]Pair{{Key: "k", Value: []byte("fresh"), Expiration: 2000}})
	v, _ = s.Get("k")
	require.Equal(t, "fresh", string(v))
}

func TestMergeReplicatedNeverExpiresWins(t *testing.T) {
	s := New()
	s.Put("k", []byte("forever"), 0)

	// An entry with no expiration outlives any finite one.
	s.MergeReplicated([]Pair{{Key: "k", Value: []byte("finite"), Expiration: time.Now().Add(time.Hour).Unix()}})
	v, _ := s.Get("k")
	require.Equal(t, "forever", string(v))

	s2 := New()
	s2.PutAbsolute("k", []byte("finite"), time.Now().Add(time.Hour).Unix())
	s2.MergeReplicated([]Pair{{Key: "k", Value: []byte("forever"), Expiration: 0}})
	v, _ = s2.Get("k")
	require.Equal(t, "forever", string(v))
}
