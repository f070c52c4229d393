// Package pow implements the join-time proof-of-work admission gate: a
// joining node mints a token binding itself to its own address, and the
// node it notifies validates that token before accepting it as a
// predecessor.
package pow

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// ClockSkew is the maximum tolerated difference between a token's timestamp
// and the verifier's clock.
const ClockSkew = 60 * time.Second

var (
	// ErrAddressMismatch means the token was minted for a different address
	// than the one presenting it.
	ErrAddressMismatch = errors.New("pow: token not bound to presenting address")
	// ErrStaleTimestamp means the token's timestamp falls outside the clock
	// skew tolerance.
	ErrStaleTimestamp = errors.New("pow: timestamp outside clock skew tolerance")
	// ErrInsufficientDifficulty means the token claims less work than this
	// verifier requires.
	ErrInsufficientDifficulty = errors.New("pow: difficulty below verifier minimum")
	// ErrInvalidProof means the token's hash doesn't actually have the
	// claimed number of leading zero bits.
	ErrInvalidProof = errors.New("pow: hash does not satisfy claimed difficulty")
	// ErrReplayed means this exact token was already spent within the
	// dedup window.
	ErrReplayed = errors.New("pow: token already used")
)

// Token is a join-admission credential: proof that its minter spent work
// bound to its own address and to a timestamp that is still fresh.
type Token struct {
	Address    string
	Timestamp  int64
	Nonce      uint64
	Difficulty int
}

// digest computes SHA256(address || timestamp || nonce).
func digest(address string, timestamp int64, nonce uint64) [32]byte {
	buf := make([]byte, 0, len(address)+8+8)
	buf = append(buf, address...)
	var tsBuf, nonceBuf [8]byte
	binary.BigEndian.PutUint64(tsBuf[:], uint64(timestamp))
	binary.BigEndian.PutUint64(nonceBuf[:], nonce)
	buf = append(buf, tsBuf[:]...)
	buf = append(buf, nonceBuf[:]...)
	return sha256.Sum256(buf)
}

// leadingZeroBits counts the number of leading zero bits in h.
func leadingZeroBits(h [32]byte) int {
	n := 0
	for _, b := range h {
		if b == 0 {
			n += 8
			continue
		}
		n += bitsLeadingZero(b)
		break
	}
	return n
}

func bitsLeadingZero(b byte) int {
	n := 0
	for i := 7; i >= 0; i-- {
		if b&(1<<uint(i)) != 0 {
			break
		}
		n++
	}
	return n
}

// Mint computes a token for address at the given difficulty by brute-forcing
// nonces until SHA256(address||timestamp||nonce) has at least that many
// leading zero bits. maxAttempts bounds the search so a misconfigured
// difficulty can't hang the joining node forever.
//
// The nonce search starts at a random offset: two tokens minted within the
// same clock second must still differ, or the verifier's single-use dedup
// would reject the second as a replay.
func Mint(address string, difficulty int, maxAttempts uint64) (*Token, error) {
	if maxAttempts == 0 {
		maxAttempts = math.MaxUint32
	}
	timestamp := time.Now().Unix()
	start := rand.Uint64()
	for i := uint64(0); i < maxAttempts; i++ {
		nonce := start + i
		h := digest(address, timestamp, nonce)
		if leadingZeroBits(h) >= difficulty {
			return &Token{
				Address:    address,
				Timestamp:  timestamp,
				Nonce:      nonce,
				Difficulty: difficulty,
			}, nil
		}
	}
	return nil, fmt.Errorf("pow: exhausted %d attempts at difficulty %d without finding a valid nonce", maxAttempts, difficulty)
}

// Validator checks tokens presented by joining peers against a minimum
// accepted difficulty and a replay-dedup window, so a captured token
// cannot be re-presented during a join storm.
type Validator struct {
	minDifficulty int
	seen          *cache.Cache
}

// NewValidator creates a Validator requiring at least minDifficulty leading
// zero bits, remembering spent tokens for window.
func NewValidator(minDifficulty int, window time.Duration) *Validator {
	return &Validator{
		minDifficulty: minDifficulty,
		seen:          cache.New(window, window*2),
	}
}

// Validate checks token against claimedAddress, the presenter's own
// address. It returns nil on success, or one of the sentinel errors above.
func (v *Validator) Validate(token *Token, claimedAddress string) error {
	if token == nil {
		return ErrAddressMismatch
	}
	if token.Address != claimedAddress {
		return ErrAddressMismatch
	}

	now := time.Now().Unix()
	skew := int64(ClockSkew / time.Second)
	if diff := now - token.Timestamp; diff > skew || diff < -skew {
		return ErrStaleTimestamp
	}

	if token.Difficulty < v.minDifficulty {
		return ErrInsufficientDifficulty
	}

	h := digest(token.Address, token.Timestamp, token.Nonce)
	if leadingZeroBits(h) < token.Difficulty {
		return ErrInvalidProof
	}

	key := fmt.Sprintf("%s|%d|%d", token.Address, token.Timestamp, token.Nonce)
	if _, found := v.seen.Get(key); found {
		return ErrReplayed
	}
	v.seen.Set(key, struct{}{}, cache.DefaultExpiration)

	return nil
}
