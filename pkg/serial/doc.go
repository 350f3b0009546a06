// Package serial enumerates shim serial numbers in pseudo-random order.
//
// # The Space
//
// A [Space] is defined by three parameters: x (shims per unit), y (slots
// per piece) and a seed. Each piece carries a sign and y slots of 1..x
// shims, so the space holds exactly 2·xʸ distinct serial numbers. The
// textual form is the sign followed by one letter per slot:
//
//	+A   one upward slot with a single shim
//	-CB  a downward slot of three shims, then an upward slot of two
//
// # Full-period enumeration
//
// [Space.At] maps the positions 0, 1, 2, ... onto serial numbers through a
// linear congruential step r = (a·i + c) mod m with m = 2·xʸ, a = 2x+1 and
// an increment c derived from the seed. The parameters satisfy the
// Hull-Dobell criterion, so every serial number appears exactly once before
// the sequence repeats: no duplicates, no gaps, regardless of seed.
//
// The increment is a product of primes from a fixed ten-entry table, one
// per decimal digit of the seed. All table primes exceed [MaxShims], which
// keeps c coprime with m for every legal x. [Space.Validate] rejects
// configurations that would break the guarantee, including spaces larger
// than 2⁵³−1, beyond which indices stop being exact in the JSON tooling
// that selection files pass through.
//
// # Basic usage
//
//	space := serial.Space{X: 4, Y: 3, Seed: 42}
//	if err := space.Validate(); err != nil {
//		return err
//	}
//	size, _ := space.Size()
//	for i := uint64(0); i < size; i++ {
//		n, _ := space.At(i)
//		fmt.Println(n)
//	}
//
// [Space.IndexOf] inverts At, recovering the position of any serial number
// in the enumeration.
package serial
