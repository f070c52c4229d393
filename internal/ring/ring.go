// Package ring implements the 160-bit circular identifier space that the
// Chord ring is built on: hashing of addresses and keys, and the modular
// interval arithmetic routing and stabilization are expressed in terms of.
package ring

import (
	"crypto/sha1"
	"fmt"
	"math/big"
)

// M is the size of the identifier space in bits.
const M = 160

var (
	size = new(big.Int).Lsh(big.NewInt(1), M)
	zero = big.NewInt(0)
)

// Hash hashes arbitrary bytes to a 160-bit identifier using SHA-1, matching
// the ring's identifier width exactly (no truncation needed).
func Hash(data []byte) *big.Int {
	sum := sha1.Sum(data)
	return new(big.Int).SetBytes(sum[:])
}

// HashString hashes a string to a ring identifier.
func HashString(s string) *big.Int {
	return Hash([]byte(s))
}

// HashAddress hashes a node's network address to its ring identifier.
func HashAddress(address string) *big.Int {
	return HashString(address)
}

// Size returns 2^M, the number of points on the ring.
func Size() *big.Int {
	return new(big.Int).Set(size)
}

// MaxID returns the largest valid identifier, 2^M - 1.
func MaxID() *big.Int {
	return new(big.Int).Sub(size, big.NewInt(1))
}

// Mod normalizes x onto the ring, returning a value in [0, 2^M).
func Mod(x *big.Int) *big.Int {
	r := new(big.Int).Mod(x, size)
	if r.Sign() < 0 {
		r.Add(r, size)
	}
	return r
}

// Add computes (id + offset) mod 2^M.
func Add(id *big.Int, offset *big.Int) *big.Int {
	return Mod(new(big.Int).Add(Mod(id), offset))
}

// PowerOfTwo returns 2^exponent.
func PowerOfTwo(exponent int) *big.Int {
	if exponent < 0 {
		return new(big.Int)
	}
	return new(big.Int).Lsh(big.NewInt(1), uint(exponent))
}

// AddPowerOfTwo computes (id + 2^exponent) mod 2^M, the formula used to
// derive finger-table start positions.
func AddPowerOfTwo(id *big.Int, exponent int) *big.Int {
	return Add(id, PowerOfTwo(exponent))
}

// InOpenClosed reports whether x lies in (a, b] walking clockwise from a.
// When a == b the interval is defined as the full ring except the point a,
// mirroring the Chord convention.
func InOpenClosed(a, b, x *big.Int) bool {
	if a == nil || b == nil || x == nil {
		return false
	}
	a, b, x = Mod(a), Mod(b), Mod(x)

	switch a.Cmp(b) {
	case -1:
		return x.Cmp(a) > 0 && x.Cmp(b) <= 0
	case 1:
		return x.Cmp(a) > 0 || x.Cmp(b) <= 0
	default:
		return x.Cmp(a) != 0
	}
}

// InOpenOpen reports whether x lies in (a, b) walking clockwise from a.
// It is false whenever a == b.
func InOpenOpen(a, b, x *big.Int) bool {
	if a == nil || b == nil || x == nil {
		return false
	}
	a, b, x = Mod(a), Mod(b), Mod(x)

	switch a.Cmp(b) {
	case -1:
		return x.Cmp(a) > 0 && x.Cmp(b) < 0
	case 1:
		return x.Cmp(a) > 0 || x.Cmp(b) < 0
	default:
		return false
	}
}

// InClosedOpen reports whether x lies in [a, b) walking clockwise from a.
func InClosedOpen(a, b, x *big.Int) bool {
	if a == nil || b == nil || x == nil {
		return false
	}
	a, b, x = Mod(a), Mod(b), Mod(x)

	switch a.Cmp(b) {
	case -1:
		return x.Cmp(a) >= 0 && x.Cmp(b) < 0
	case 1:
		return x.Cmp(a) >= 0 || x.Cmp(b) < 0
	default:
		return x.Cmp(a) != 0
	}
}

// Distance returns the clockwise distance from a to b: (b - a) mod 2^M.
func Distance(a, b *big.Int) *big.Int {
	if a == nil || b == nil {
		return new(big.Int)
	}
	return Mod(new(big.Int).Sub(Mod(b), Mod(a)))
}

// IsValid reports whether id is within [0, 2^M).
func IsValid(id *big.Int) bool {
	if id == nil {
		return false
	}
	return id.Cmp(zero) >= 0 && id.Cmp(size) < 0
}

// idByteWidth is the width of a wire-encoded identifier: M bits.
const idByteWidth = M / 8

// IDToBytes renders id as a fixed-width big-endian byte slice, the
// 20-byte form identifiers take on the wire.
func IDToBytes(id *big.Int) []byte {
	out := make([]byte, idByteWidth)
	if id == nil {
		return out
	}
	Mod(id).FillBytes(out)
	return out
}

// IDFromBytes parses a fixed-width big-endian byte slice back into an
// identifier.
func IDFromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// Short renders the first n hex characters of id, for log fields.
func Short(id *big.Int, n int) string {
	if id == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%040x", id)
	if len(s) > n {
		return s[:n]
	}
	return s
}
