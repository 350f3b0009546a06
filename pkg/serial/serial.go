package serial

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Bounds of the permutation space parameters.
const (
	// MinShims and MaxShims bound X, the shim count one slot letter can
	// encode (A=1 .. Z=26). MaxShims must stay below the smallest prime in
	// the increment table or the generator loses its full-period guarantee.
	MinShims = 1
	MaxShims = 26

	// MaxSeed bounds Seed to eight decimal digits.
	MaxSeed = 99_999_999

	// MaxSize is the largest permutation space the generator accepts,
	// 2⁵³−1. Indices travel through JSON selection files as plain numbers,
	// which stay exact only up to the double-precision integer range.
	MaxSize = 1<<53 - 1
)

// primes maps decimal seed digits to increment factors. Every entry exceeds
// MaxShims so the resulting product stays coprime with the modulus 2·xʸ.
var primes = [10]uint64{29, 31, 37, 41, 43, 47, 53, 59, 61, 67}

// Sentinel errors for space configuration and serial-number parsing.
var (
	// ErrSpaceTooLarge is returned when 2·xʸ exceeds MaxSize.
	ErrSpaceTooLarge = errors.New("permutation space too large")

	// ErrBadShims is returned when x falls outside [MinShims, MaxShims].
	ErrBadShims = errors.New("shims per unit out of range")

	// ErrBadSlots is returned when y is zero.
	ErrBadSlots = errors.New("slots per piece out of range")

	// ErrBadSeed is returned when the seed exceeds MaxSeed.
	ErrBadSeed = errors.New("seed out of range")

	// ErrBadIndex is returned for positions or residues outside [0, size).
	ErrBadIndex = errors.New("index out of range")

	// ErrBadSerial is returned for text that is not a serial number.
	ErrBadSerial = errors.New("malformed serial number")
)

// Number is one serial number: a sign and one letter per slot. The sign
// selects the orientation of the first slot and each letter encodes that
// slot's shim count, A=1 through Z=26.
type Number string

// Valid reports whether n has a leading '+' or '-' and at least one letter,
// all in A..Z.
func (n Number) Valid() bool {
	if len(n) < 2 || (n[0] != '+' && n[0] != '-') {
		return false
	}
	for i := 1; i < len(n); i++ {
		if n[i] < 'A' || n[i] > 'Z' {
			return false
		}
	}
	return true
}

// Sign returns '+' or '-', or 0 when n is malformed.
func (n Number) Sign() byte {
	if !n.Valid() {
		return 0
	}
	return n[0]
}

// Slots returns the number of slots encoded in n, 0 when malformed.
func (n Number) Slots() int {
	if !n.Valid() {
		return 0
	}
	return len(n) - 1
}

// Counts returns the per-slot shim counts in slot order, nil when n is
// malformed.
func (n Number) Counts() []int {
	if !n.Valid() {
		return nil
	}
	counts := make([]int, len(n)-1)
	for i := range counts {
		counts[i] = int(n[i+1]-'A') + 1
	}
	return counts
}

// Parse trims raw and validates the textual form [+-][A-Z]+.
func Parse(raw string) (Number, error) {
	n := Number(strings.TrimSpace(raw))
	if !n.Valid() {
		return "", fmt.Errorf("%w: %q", ErrBadSerial, raw)
	}
	return n, nil
}

// Space describes one permutation space: every combination of sign and
// per-slot shim counts for fixed x and y, visited in a pseudo-random order
// chosen by the seed. The zero value is invalid; set the fields and call
// Validate before generating.
type Space struct {
	X    uint64 `json:"x" toml:"x"`       // shims per unit, MinShims..MaxShims
	Y    uint64 `json:"y" toml:"y"`       // slots per piece, >= 1
	Seed uint64 `json:"seed" toml:"seed"` // increment selector, 0..MaxSeed
}

// Validate checks all three parameters, including the capacity bound on the
// space size. It never mutates s.
func (s Space) Validate() error {
	if _, err := s.half(); err != nil {
		return err
	}
	if s.Seed > MaxSeed {
		return fmt.Errorf("%w: seed %d exceeds %d", ErrBadSeed, s.Seed, uint64(MaxSeed))
	}
	return nil
}

// Size returns 2·xʸ, the number of serial numbers in the space.
func (s Space) Size() (uint64, error) {
	half, err := s.half()
	if err != nil {
		return 0, err
	}
	return 2 * half, nil
}

// half returns xʸ with parameter and overflow checks. Size, signs and digit
// decoding all hang off this one value.
func (s Space) half() (uint64, error) {
	if s.X < MinShims || s.X > MaxShims {
		return 0, fmt.Errorf("%w: x=%d not in [%d, %d]", ErrBadShims, s.X, MinShims, MaxShims)
	}
	if s.Y < 1 {
		return 0, fmt.Errorf("%w: y=%d", ErrBadSlots, s.Y)
	}
	half := uint64(1)
	for i := uint64(0); i < s.Y; i++ {
		if half > MaxSize/2/s.X {
			return 0, fmt.Errorf("%w: 2*%d^%d exceeds %d", ErrSpaceTooLarge, s.X, s.Y, uint64(MaxSize))
		}
		half *= s.X
	}
	return half, nil
}

// Increment derives the additive constant of the generator from the seed:
// the product of table primes selected by each decimal digit. Seed 0 maps
// to the smallest prime.
func (s Space) Increment() uint64 {
	c := uint64(1)
	n := s.Seed
	for {
		c *= primes[n%10]
		n /= 10
		if n == 0 {
			break
		}
	}
	return c
}

// Next advances the full-period generator: (a·index + c) mod m with
// a = 2x+1 and m = 2·xʸ. For a fixed space this is a bijection over [0, m):
// a−1 = 2x is divisible by 2 and by every prime factor of xʸ, and by 4
// whenever m is, so the Hull-Dobell conditions hold as long as the
// increment stays coprime with m.
//
// The products stay well inside 64 bits: a ≤ 53, index < m ≤ 2⁵³.
func (s Space) Next(index uint64) (uint64, error) {
	m, err := s.Size()
	if err != nil {
		return 0, err
	}
	if index >= m {
		return 0, fmt.Errorf("%w: %d outside [0, %d)", ErrBadIndex, index, m)
	}
	a := 2*s.X + 1
	return (a*index + s.Increment()) % m, nil
}

// At returns the serial number at the given position of the enumeration.
// Walking positions 0..Size-1 visits every serial number exactly once.
func (s Space) At(index uint64) (Number, error) {
	r, err := s.Next(index)
	if err != nil {
		return "", err
	}
	return s.Decode(r)
}

// IndexOf inverts At: it re-encodes n into its residue and unwinds the
// generator step with the modular inverse of the multiplier.
func (s Space) IndexOf(n Number) (uint64, error) {
	r, err := s.Encode(n)
	if err != nil {
		return 0, err
	}
	m, err := s.Size()
	if err != nil {
		return 0, err
	}
	inv := invMod((2*s.X+1)%m, m)
	c := s.Increment() % m
	return mulMod(inv, (r+m-c)%m, m), nil
}

// Decode renders residue r as a serial number: '-' for the lower half of
// the space, '+' for the upper, then y base-x digit letters, least
// significant first.
func (s Space) Decode(r uint64) (Number, error) {
	half, err := s.half()
	if err != nil {
		return "", err
	}
	if r >= 2*half {
		return "", fmt.Errorf("%w: residue %d outside [0, %d)", ErrBadIndex, r, 2*half)
	}
	var b strings.Builder
	b.Grow(int(s.Y) + 1)
	if r < half {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
		r -= half
	}
	for i := uint64(0); i < s.Y; i++ {
		b.WriteByte(byte('A' + r%s.X))
		r /= s.X
	}
	return Number(b.String()), nil
}

// Encode maps a serial number back to its residue in [0, 2·xʸ). The number
// must have exactly y letters, each within the space's shim range.
func (s Space) Encode(n Number) (uint64, error) {
	half, err := s.half()
	if err != nil {
		return 0, err
	}
	if !n.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrBadSerial, string(n))
	}
	if uint64(len(n)-1) != s.Y {
		return 0, fmt.Errorf("%w: %q encodes %d slots, space has %d", ErrBadSerial, string(n), len(n)-1, s.Y)
	}
	var r uint64
	pow := uint64(1)
	for i := 1; i < len(n); i++ {
		d := uint64(n[i] - 'A')
		if d >= s.X {
			return 0, fmt.Errorf("%w: %q uses letter %c beyond %c", ErrBadSerial, string(n), n[i], byte('A'+s.X-1))
		}
		r += d * pow
		pow *= s.X
	}
	if n[0] == '+' {
		r += half
	}
	return r, nil
}

// mulMod returns a·b mod m without overflowing 64 bits. Both factors must
// already be reduced modulo m.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// invMod returns the multiplicative inverse of a modulo m via the extended
// Euclidean algorithm. a and m must be coprime; both fit in 53 bits, so the
// signed coefficients cannot overflow.
func invMod(a, m uint64) uint64 {
	t, newT := int64(0), int64(1)
	r, newR := int64(m), int64(a)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if t < 0 {
		t += int64(m)
	}
	return uint64(t)
}
