// Package endian detects the host byte order and swaps 4-byte and
// 8-byte scalars. Detection probes an in-memory value on every call
// rather than caching a process-wide flag, so it is safe to call
// concurrently and trivial to reason about.
package endian

import (
	"encoding/binary"
	"math/bits"
	"os"
	"unsafe"
)

// Native returns the byte order the host uses for multi-byte values
// in memory. The probe runs on every call; there is no cached state.
func Native() binary.ByteOrder {
	var buf [2]byte
	*(*uint16)(unsafe.Pointer(&buf[0])) = 0xABCD

	switch buf {
	case [2]byte{0xCD, 0xAB}:
		return binary.LittleEndian
	case [2]byte{0xAB, 0xCD}:
		return binary.BigEndian
	default:
		panic("endian: cannot determine host byte order")
	}
}

// IsLittle reports whether the host is little-endian.
func IsLittle() bool {
	var buf [2]byte
	*(*uint16)(unsafe.Pointer(&buf[0])) = 0xABCD

	return buf[0] == 0xCD
}

// IsBig reports whether the host is big-endian.
func IsBig() bool {
	return !IsLittle()
}

// Swapped returns the opposite of the host byte order.
func Swapped() binary.ByteOrder {
	if IsLittle() {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// SwapUint32 reverses the byte order of v.
func SwapUint32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}

// SwapUint64 reverses the byte order of v.
func SwapUint64(v uint64) uint64 {
	return bits.ReverseBytes64(v)
}

// Swap4 reverses the first four bytes of b in place.
func Swap4(b []byte) {
	b[0], b[3] = b[3], b[0]
	b[1], b[2] = b[2], b[1]
}

// Swap8 reverses the first eight bytes of b in place.
func Swap8(b []byte) {
	b[0], b[7] = b[7], b[0]
	b[1], b[6] = b[6], b[1]
	b[2], b[5] = b[5], b[2]
	b[3], b[4] = b[4], b[3]
}

// FromEnv resolves a byte order from the Fortran runtime environment,
// with the same precedence legacy tooling applies: F_UFMTENDIAN
// ("big" or "little") is consulted first, then GFORTRAN_CONVERT_UNIT
// ("big_endian" or "little_endian"). When neither variable selects an
// order the host order is returned and ok is false.
func FromEnv() (order binary.ByteOrder, ok bool) {
	ifort := os.Getenv("F_UFMTENDIAN")
	gfort := os.Getenv("GFORTRAN_CONVERT_UNIT")

	switch {
	case ifort == "big":
		return binary.BigEndian, true
	case ifort == "little":
		return binary.LittleEndian, true
	case gfort == "big_endian":
		return binary.BigEndian, true
	case gfort == "little_endian":
		return binary.LittleEndian, true
	}

	return Native(), false
}
