// Package readstrategy implements the ways a single read is performed on an underlying file.
//
// Paced reads block until the file returns data or end of file.
// Polled and BusyRetry never block longer than one wait interval without checking for cancellation.
package readstrategy

import (
	"errors"
	"io"
	"math"
	"os"
	"time"

	"github.com/cenkalti/backoff/v3"
	"golang.org/x/sys/unix"
)

// ErrCanceled is returned when the stop channel is closed while waiting for data.
var ErrCanceled = errors.New("read canceled")

// Strategy reads up to len(p) bytes from f.
// A return of 0 bytes with nil error means end of file.
type Strategy interface {
	Read(f *os.File, p []byte) (int, error)
}

// IsTransient reports whether err means the read should simply be attempted again.
func IsTransient(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}

// Paced does a plain blocking read. The caller controls the timing of reads.
type Paced struct{}

var _ Strategy = Paced{}

// Read implements Strategy.
func (Paced) Read(f *os.File, p []byte) (int, error) {
	n, err := f.Read(p)
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// Polled waits until f becomes readable before reading from it.
// Each wait lasts at most Interval; StopC is checked between waits.
type Polled struct {
	Interval time.Duration
	StopC    <-chan struct{}
}

var _ Strategy = (*Polled)(nil)

// Read implements Strategy.
func (s *Polled) Read(f *os.File, p []byte) (int, error) {
	for {
		select {
		case <-s.StopC:
			return 0, ErrCanceled
		default:
		}
		ready, err := waitReadable(f, s.Interval)
		if err != nil && !IsTransient(err) {
			return 0, err
		}
		if ready {
			break
		}
	}
	return rawRead(f, p)
}

// BusyRetry reads from f repeatedly, sleeping Delay after each read that returns no data.
// It is meant for devices that report readiness incorrectly and never return end of file.
// Unlike Polled it keeps the CPU busy while waiting.
type BusyRetry struct {
	Delay time.Duration
	StopC <-chan struct{}
}

var _ Strategy = (*BusyRetry)(nil)

// Read implements Strategy.
func (s *BusyRetry) Read(f *os.File, p []byte) (int, error) {
	b := backoff.NewConstantBackOff(s.Delay)
	for {
		n, err := rawRead(f, p)
		if n != 0 || err != nil {
			return n, err
		}
		if !Sleep(b.NextBackOff(), s.StopC) {
			return 0, ErrCanceled
		}
	}
}

// Sleep waits for d. It returns false if stopC is closed before that.
func Sleep(d time.Duration, stopC <-chan struct{}) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-stopC:
		return false
	}
}

// rawRead issues a single read system call without waiting on the runtime poller,
// so that EAGAIN from a non-blocking descriptor is returned to the caller.
func rawRead(f *os.File, p []byte) (int, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return 0, err
	}
	var n int
	var readErr error
	err = rc.Read(func(fd uintptr) bool {
		n, readErr = unix.Read(int(fd), p)
		return true
	})
	if err != nil {
		return 0, err
	}
	if readErr != nil {
		return 0, os.NewSyscallError("read", readErr)
	}
	return n, nil
}

// waitReadable waits at most d for f to have data to read.
// Hang up and error conditions count as readable, the following read reports them.
func waitReadable(f *os.File, d time.Duration) (bool, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return false, err
	}
	var n int
	var pollErr error
	err = rc.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, pollErr = unix.Poll(fds, pollTimeout(d))
	})
	if err != nil {
		return false, err
	}
	if pollErr != nil {
		return false, os.NewSyscallError("poll", pollErr)
	}
	return n > 0, nil
}

// pollTimeout converts d to a poll timeout in milliseconds.
// Negative means forever to poll and zero returns at once, so the result is kept between 1ms and math.MaxInt32.
func pollTimeout(d time.Duration) int {
	ms := d / time.Millisecond
	if ms < 1 {
		return 1
	}
	if ms > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(ms)
}
