// Package util contains internal helpers shared across the module.
package util

// NextPow2 returns the smallest power of two >= x, using the classic
// bit-fill technique. Special cases:
//   - x <= 1 -> 1
//   - if the exact next power would overflow 64 bits, the result is
//     clamped to 1<<63
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	if x == 0 { // overflow wrapped to zero
		return 1 << 63
	}
	return x
}
