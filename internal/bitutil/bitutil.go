// Package bitutil provides bit-addressed operations on byte-slice bitmaps.
//
// Bits are addressed LSB-first within each byte: bit i lives at
// bits[i/8] & (1 << (i % 8)).
package bitutil

import "math/bits"

// BytesForBits returns the number of bytes needed to hold n bits.
func BytesForBits(n int) int {
	return (n + 7) / 8
}

// IsSet reports whether bit i is set.
func IsSet(b []byte, i int) bool {
	return b[i/8]&(1<<(i%8)) != 0
}

// Set sets bit i.
func Set(b []byte, i int) {
	b[i/8] |= 1 << (i % 8)
}

// Clear clears bit i.
func Clear(b []byte, i int) {
	b[i/8] &^= 1 << (i % 8)
}

// CountSetBits returns the number of set bits in the window
// [offset, offset+length).
func CountSetBits(b []byte, offset, length int) int {
	if length <= 0 {
		return 0
	}

	count := 0
	i := offset
	end := offset + length

	// Leading partial byte.
	if r := i % 8; r != 0 {
		n := 8 - r
		if n > length {
			n = length
		}
		mask := byte(1<<n-1) << r
		count += bits.OnesCount8(b[i/8] & mask)
		i += n
	}

	// Full bytes.
	for ; i+8 <= end; i += 8 {
		count += bits.OnesCount8(b[i/8])
	}

	// Trailing partial byte.
	if i < end {
		mask := byte(1<<(end-i) - 1)
		count += bits.OnesCount8(b[i/8] & mask)
	}

	return count
}

// CopyBits copies length bits from src starting at bit srcOffset into dst
// starting at bit dstOffset. Bits in dst outside the target window are
// preserved. The source and destination must not overlap.
func CopyBits(dst []byte, dstOffset int, src []byte, srcOffset, length int) {
	if length <= 0 {
		return
	}

	// Byte-aligned fast path.
	if dstOffset%8 == 0 && srcOffset%8 == 0 {
		nfull := length / 8
		copy(dst[dstOffset/8:], src[srcOffset/8:srcOffset/8+nfull])
		if rem := length % 8; rem != 0 {
			mask := byte(1<<rem - 1)
			d := dstOffset/8 + nfull
			s := srcOffset/8 + nfull
			dst[d] = (dst[d] &^ mask) | (src[s] & mask)
		}

		return
	}

	for i := 0; i < length; i++ {
		if IsSet(src, srcOffset+i) {
			Set(dst, dstOffset+i)
		} else {
			Clear(dst, dstOffset+i)
		}
	}
}
