// Package stream presents an ordered list of files as a single readable and seekable byte stream.
//
// Files are opened once, in order, and read one after another.
// A Read that reaches the end of a file continues from the next file transparently.
// Seek maps a logical offset to the file that contains it.
// Files that grow while being read are noticed and the size of the stream is updated.
package stream

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cenkalti/backoff/v3"
	"github.com/cenkalti/filecat/internal/fileset"
	"github.com/cenkalti/filecat/internal/logger"
	"github.com/cenkalti/filecat/internal/readstrategy"
	"github.com/cenkalti/filecat/internal/sizetracker"
	"github.com/gofrs/uuid"
)

// Stream is a concatenation of files.
// Methods other than Cancel must not be called concurrently.
type Stream struct {
	id       string
	config   Config
	files    *fileset.FileSet
	strategy readstrategy.Strategy
	tracker  *sizetracker.Tracker
	retry    backoff.BackOff
	log      logger.Logger
	metrics  streamMetrics

	seekable    bool
	paceControl bool

	current     int
	pos         int64
	size        int64
	eof         bool
	sizeChanged bool
	notified    bool
	closed      bool

	stopC      chan struct{}
	cancelOnce sync.Once
}

// Open opens path followed by cfg.AdditionalFiles as a single stream.
// If path is "-", the standard input is read.
//
// Open fails if any of the files cannot be opened, if any of them is a directory,
// or if the stream is seekable and has no data.
func Open(path string, cfg Config) (*Stream, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	l := logger.New("stream " + id.String()[:8])
	files, err := fileset.Open(path, cfg.AdditionalFiles, l)
	if err != nil {
		var oerr *fileset.OpenError
		if errors.As(err, &oerr) && !errors.Is(err, fileset.ErrIsDirectory) {
			notify(cfg.Notifier, "File reading failed", fmt.Sprintf("Could not open file %q (%s).", oerr.Path, oerr.Err))
		}
		return nil, err
	}
	s := &Stream{
		id:          id.String(),
		config:      cfg,
		files:       files,
		tracker:     sizetracker.New(cfg.StatInterval),
		retry:       backoff.NewConstantBackOff(cfg.RetryDelay),
		log:         l,
		metrics:     newStreamMetrics(),
		seekable:    cfg.Mode == ModeStandard && files.Seekable(),
		paceControl: cfg.Mode == ModeStandard,
		size:        files.TotalSize(),
		stopC:       make(chan struct{}),
	}
	if s.seekable && s.size == 0 {
		l.Errorln("file is empty, aborting")
		_ = files.Close()
		return nil, ErrEmpty
	}
	switch {
	case s.paceControl:
		s.strategy = readstrategy.Paced{}
	case cfg.Mode == ModeDevice:
		s.strategy = &readstrategy.BusyRetry{Delay: cfg.RetryDelay, StopC: s.stopC}
	default:
		s.strategy = &readstrategy.Polled{Interval: cfg.PollInterval, StopC: s.stopC}
	}
	l.Debugf("opened %d file(s), size: %d, seekable: %t, mode: %s", files.Len(), s.size, s.seekable, cfg.Mode)
	return s, nil
}

func notify(n Notifier, title, text string) {
	if n != nil {
		n(title, text)
	}
}

// ID returns the unique identifier of the stream.
func (s *Stream) ID() string { return s.id }

// Size returns the logical size of the stream: the sum of the sizes of all files.
func (s *Stream) Size() int64 { return s.size }

// Position returns the logical position of the next Read.
func (s *Stream) Position() int64 { return s.pos }

// EOF reports whether the last Read has reached the end of the last file.
func (s *Stream) EOF() bool { return s.eof }

// FileIndex returns the index of the file that is being read.
func (s *Stream) FileIndex() int { return s.current }

// NumFiles returns the number of files in the stream.
func (s *Stream) NumFiles() int { return s.files.Len() }

// Seekable reports whether Seek positions the stream meaningfully.
func (s *Stream) Seekable() bool { return s.seekable }

// PaceControlled reports whether the caller controls the timing of reads.
func (s *Stream) PaceControlled() bool { return s.paceControl }

// SizeChanged reports whether the size of the stream has changed since the last call.
func (s *Stream) SizeChanged() bool {
	changed := s.sizeChanged
	s.sizeChanged = false
	return changed
}

// Cancel stops waiting reads. A Read waiting for data returns ErrCanceled within one poll interval.
// It is safe to call Cancel from another goroutine and more than once.
func (s *Stream) Cancel() {
	s.cancelOnce.Do(func() { close(s.stopC) })
}

// Close closes all files. It is safe to call Close more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.Cancel()
	return s.files.Close()
}

var _ io.ReadSeekCloser = (*Stream)(nil)
