package pow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMintAndValidateRoundTrip(t *testing.T) {
	tok, err := Mint("10.0.0.1:9000", 8, 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, leadingZeroBits(digest(tok.Address, tok.Timestamp, tok.Nonce)), 8)

	v := NewValidator(8, time.Minute)
	require.NoError(t, v.Validate(tok, "10.0.0.1:9000"))
}

func TestValidateRejectsAddressMismatch(t *testing.T) {
	tok, err := Mint("10.0.0.1:9000", 4, 0)
	require.NoError(t, err)

	v := NewValidator(4, time.Minute)
	require.ErrorIs(t, v.Validate(tok, "10.0.0.2:9000"), ErrAddressMismatch)
}

func TestValidateRejectsStaleTimestamp(t *testing.T) {
	tok, err := Mint("10.0.0.1:9000", 4, 0)
	require.NoError(t, err)
	tok.Timestamp -= int64(ClockSkew/time.Second) + 30

	v := NewValidator(4, time.Minute)
	require.ErrorIs(t, v.Validate(tok, "10.0.0.1:9000"), ErrStaleTimestamp)
}

func TestValidateRejectsInsufficientDifficulty(t *testing.T) {
	tok, err := Mint("10.0.0.1:9000", 4, 0)
	require.NoError(t, err)

	v := NewValidator(12, time.Minute)
	require.ErrorIs(t, v.Validate(tok, "10.0.0.1:9000"), ErrInsufficientDifficulty)
}

func TestValidateRejectsForgedProof(t *testing.T) {
	tok, err := Mint("10.0.0.1:9000", 4, 0)
	require.NoError(t, err)
	tok.Difficulty = 30 // claim far more work than the nonce actually satisfies

	v := NewValidator(4, time.Minute)
	require.ErrorIs(t, v.Validate(tok, "10.0.0.1:9000"), ErrInvalidProof)
}

func TestValidateRejectsReplay(t *testing.T) {
	tok, err := Mint("10.0.0.1:9000", 4, 0)
	require.NoError(t, err)

	v := NewValidator(4, time.Minute)
	require.NoError(t, v.Validate(tok, "10.0.0.1:9000"))
	require.ErrorIs(t, v.Validate(tok, "10.0.0.1:9000"), ErrReplayed)
}

func TestMintTwiceInSameSecondProducesDistinctTokens(t *testing.T) {
	a, err := Mint("10.0.0.1:9000", 0, 0)
	require.NoError(t, err)
	b, err := Mint("10.0.0.1:9000", 0, 0)
	require.NoError(t, err)

	v := NewValidator(0, time.Minute)
	require.NoError(t, v.Validate(a, "10.0.0.1:9000"))
	require.NoError(t, v.Validate(b, "10.0.0.1:9000"))
}

func TestLeadingZeroBits(t *testing.T) {
	require.Equal(t, 8, leadingZeroBits([32]byte{0x00, 0x80}))
	require.Equal(t, 0, leadingZeroBits([32]byte{0x80}))
	require.Equal(t, 256, leadingZeroBits([32]byte{}))
}
