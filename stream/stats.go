package stream

import "github.com/rcrowley/go-metrics"

type streamMetrics struct {
	bytesRead    metrics.Counter
	failedReads  metrics.Counter
	fileSwitches metrics.Counter
	sizeChanges  metrics.Counter
}

func newStreamMetrics() streamMetrics {
	return streamMetrics{
		bytesRead:    metrics.NewCounter(),
		failedReads:  metrics.NewCounter(),
		fileSwitches: metrics.NewCounter(),
		sizeChanges:  metrics.NewCounter(),
	}
}

// Stats about a Stream.
type Stats struct {
	// Number of files in the stream.
	Files int
	// Index of the file being read.
	File int
	// Logical size and position.
	Size     int64
	Position int64
	Seekable bool
	EOF      bool

	// Read calls made on underlying files, including failed and empty ones.
	Reads int64
	// Bytes returned to the caller.
	BytesRead int64
	// Reads that returned an error, transient or not.
	FailedReads int64
	// Times reading moved on to the next file.
	FileSwitches int64
	// Times a change in file size is noticed.
	SizeChanges int64
}

// Stats returns statistics about the stream.
func (s *Stream) Stats() Stats {
	return Stats{
		Files:        s.files.Len(),
		File:         s.current,
		Size:         s.size,
		Position:     s.pos,
		Seekable:     s.seekable,
		EOF:          s.eof,
		Reads:        int64(s.tracker.Reads()),
		BytesRead:    s.metrics.bytesRead.Count(),
		FailedReads:  s.metrics.failedReads.Count(),
		FileSwitches: s.metrics.fileSwitches.Count(),
		SizeChanges:  s.metrics.sizeChanges.Count(),
	}
}
