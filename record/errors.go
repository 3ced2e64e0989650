package record

import "fmt"

// WrongRankError is returned when an array's rank does not match what
// the entry point supports. It is returned before any byte is
// written; the stream stays clean.
type WrongRankError struct {
	// Rank is the rank of the offered array.
	Rank int
	// Want is the required rank, or 0 when any supported rank was
	// acceptable.
	Want int
}

func (e *WrongRankError) Error() string {
	if e.Want != 0 {
		return fmt.Sprintf("wrong array rank: %d (want %d)", e.Rank, e.Want)
	}
	return fmt.Sprintf("wrong array rank: %d (want 1, 2 or 3)", e.Rank)
}

// SizeOverflowError is returned when a payload's byte count does not
// fit the record's length marker. It is returned before any byte is
// written; the stream stays clean.
type SizeOverflowError struct {
	// Size is the payload byte count that overflowed.
	Size int64
	// MarkerWidth is the marker width in bytes the payload had to fit.
	MarkerWidth int
}

func (e *SizeOverflowError) Error() string {
	return fmt.Sprintf("record size %d overflows %d-byte length marker", e.Size, e.MarkerWidth)
}
