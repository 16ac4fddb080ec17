package stream

import (
	"errors"
	"io"
	"math"

	"github.com/cenkalti/filecat/internal/filesection"
)

var errWhence = errors.New("invalid whence")

// Seek sets the logical position of the next Read.
//
// Offsets past the end of the stream are clamped to the size and offsets before the start are clamped to 0.
// Both are logged but not returned as errors. Seek returns the new position.
// On a stream that is not seekable the position changes but reads continue where the files are.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = addSaturated(s.pos, offset)
	case io.SeekEnd:
		pos = addSaturated(s.size, offset)
	default:
		return s.pos, errWhence
	}
	if pos > s.size {
		s.log.Errorln("seeking too far")
		pos = s.size
	} else if pos < 0 {
		s.log.Errorln("seeking too early")
		pos = 0
	}
	s.eof = false

	// Determine which file we need to access.
	i, off, err := filesection.Locate(s.files.Sizes(), pos)
	if err != nil {
		return s.pos, err
	}
	s.current = i
	_, err = s.files.File(i).Seek(off, io.SeekStart)
	if err != nil {
		// Repositioning is advisory, the logical position is updated anyway.
		s.log.Warningf("cannot seek file #%d to %d: %s", i, off, err)
	}
	s.pos = pos
	return pos, nil
}

// addSaturated returns base+off, stopping at math.MaxInt64 instead of wrapping around.
// base is never negative, so the sum cannot go below math.MinInt64.
func addSaturated(base, off int64) int64 {
	if off > 0 && base > math.MaxInt64-off {
		return math.MaxInt64
	}
	return base + off
}
