package stream

import (
	"fmt"
	"io"

	"github.com/cenkalti/filecat/internal/readstrategy"
	"github.com/cenkalti/filecat/internal/sizetracker"
)

// Read reads up to len(p) bytes from the stream.
//
// When a file other than the last one ends, reading continues with the next file.
// io.EOF is returned only after the last file ends.
// If no data could be read because the call was interrupted or would block, Read returns 0 and nil error.
// ErrCanceled is returned if Cancel is called while waiting for data.
// Any other failure is returned as *ReadError.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	for {
		n, err := s.strategy.Read(s.files.File(s.current), p)
		if err == readstrategy.ErrCanceled {
			return 0, ErrCanceled
		}
		if err != nil {
			s.metrics.failedReads.Inc(1)
			if !readstrategy.IsTransient(err) {
				s.readFailed(err)
			}
			// Delay a bit to avoid consuming all the CPU.
			// This is particularly useful when reading from an unconnected FIFO.
			readstrategy.Sleep(s.retry.NextBackOff(), s.stopC)
		}
		s.trackSize()
		if err != nil {
			if readstrategy.IsTransient(err) {
				return 0, nil
			}
			return 0, &ReadError{Index: s.current, Name: s.files.Name(s.current), Err: err}
		}
		if n == 0 {
			if s.current+1 < s.files.Len() {
				s.nextFile()
				continue
			}
			s.eof = true
			return 0, io.EOF
		}
		s.pos += int64(n)
		s.metrics.bytesRead.Inc(int64(n))
		return n, nil
	}
}

// nextFile switches to the file following the current one.
func (s *Stream) nextFile() {
	s.current++
	s.metrics.fileSwitches.Inc(1)
	s.log.Debugf("switching to file #%d", s.current)
	if !s.seekable {
		return
	}
	// The file may have been read before a backwards seek.
	_, err := s.files.File(s.current).Seek(0, io.SeekStart)
	if err != nil {
		s.log.Warningf("cannot rewind file #%d: %s", s.current, err)
	}
}

func (s *Stream) readFailed(err error) {
	s.log.Errorf("read failed (%s)", err)
	if s.notified {
		return
	}
	s.notified = true
	notify(s.config.Notifier, "File reading failed", fmt.Sprintf("Could not read file %q (%s).", s.files.Name(s.current), err))
}

// trackSize counts a read and, once in StatInterval reads, checks whether the current file has changed size.
func (s *Stream) trackSize() {
	if !s.tracker.Tick() || s.size == 0 {
		return
	}
	delta, err := sizetracker.Reconcile(s.files, s.current)
	if err != nil {
		s.log.Debugf("cannot stat file #%d: %s", s.current, err)
		return
	}
	if delta == 0 {
		return
	}
	s.size += delta
	s.sizeChanged = true
	s.metrics.sizeChanges.Inc(1)
	s.log.Debugf("size of file #%d changed by %d bytes, stream size: %d", s.current, delta, s.size)
}
