// Package filesection maps offsets in a concatenation of files to a file and an offset inside it.
package filesection

import "errors"

// ErrOutOfRange is returned when an offset is not inside the concatenation.
var ErrOutOfRange = errors.New("offset out of range")

// Locate returns the index of the file containing the logical offset off and the offset inside that file.
// sizes holds the length of each file in concatenation order.
//
// An offset on the boundary of two files is mapped to the end of the earlier file.
// Reading from there yields no data and the reader moves on to the next file.
func Locate(sizes []int64, off int64) (index int, pos int64, err error) {
	if off < 0 || len(sizes) == 0 {
		return 0, 0, ErrOutOfRange
	}
	for off > sizes[index] {
		off -= sizes[index]
		index++
		if index == len(sizes) {
			return 0, 0, ErrOutOfRange
		}
	}
	return index, off, nil
}

// Total returns the length of the concatenation.
func Total(sizes []int64) int64 {
	var n int64
	for _, size := range sizes {
		n += size
	}
	return n
}
