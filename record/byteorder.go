package record

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/fortgo/endian"
)

// ByteOrder selects the byte order of a record stream. The legacy
// naming scheme bundled the target order with whether the host
// happens to match it; here the two concerns stay orthogonal and the
// host order is probed when a mode resolves, never cached.
type ByteOrder int

const (
	// Native emits in the host byte order, whatever it is.
	Native ByteOrder = iota
	// Swapped emits in the opposite of the host byte order.
	Swapped
	// Big always emits big-endian, swapping only on little-endian
	// hosts.
	Big
	// Little always emits little-endian, swapping only on big-endian
	// hosts.
	Little
)

// Resolve maps the mode to a concrete byte order against a fresh
// probe of the host order.
func (bo ByteOrder) Resolve() binary.ByteOrder {
	switch bo {
	case Swapped:
		return endian.Swapped()
	case Big:
		return binary.BigEndian
	case Little:
		return binary.LittleEndian
	default:
		return endian.Native()
	}
}

// explicit reports whether the mode names a fixed target order
// rather than one relative to the host.
func (bo ByteOrder) explicit() bool {
	return bo == Big || bo == Little
}

// String returns the mode name.
func (bo ByteOrder) String() string {
	switch bo {
	case Native:
		return "native"
	case Swapped:
		return "swapped"
	case Big:
		return "big"
	case Little:
		return "little"
	default:
		return fmt.Sprintf("ByteOrder(%d)", int(bo))
	}
}

// FromEnv returns Big or Little when the Fortran environment
// variables (F_UFMTENDIAN, then GFORTRAN_CONVERT_UNIT) select an
// order, and Native otherwise.
func FromEnv() ByteOrder {
	order, ok := endian.FromEnv()
	if !ok {
		return Native
	}

	if order == binary.ByteOrder(binary.BigEndian) {
		return Big
	}

	return Little
}
