package stream

import (
	"errors"
	"strconv"

	"github.com/cenkalti/filecat/internal/fileset"
	"github.com/cenkalti/filecat/internal/readstrategy"
)

// OpenError is returned from Open when one of the files cannot be opened.
type OpenError = fileset.OpenError

var (
	// ErrIsDirectory is returned from Open when one of the paths is a directory.
	ErrIsDirectory = fileset.ErrIsDirectory
	// ErrEmpty is returned from Open when a seekable stream has no data.
	ErrEmpty = errors.New("file is empty")
	// ErrClosed is returned from methods of a closed Stream.
	ErrClosed = errors.New("stream is closed")
	// ErrUnsupported is returned from Control for queries that do not apply to file access.
	ErrUnsupported = errors.New("unsupported query")
	// ErrReadFailed matches every *ReadError with errors.Is.
	ErrReadFailed = errors.New("read failed")
	// ErrCanceled is returned from Read when Cancel is called while waiting for data.
	// It does not mark the end of the stream.
	ErrCanceled = readstrategy.ErrCanceled
)

// ReadError is returned from Stream.Read when reading an underlying file fails.
type ReadError struct {
	// Index of the file in the stream.
	Index int
	// Name of the file as given to Open.
	Name string
	Err  error
}

// Error implements error interface.
func (e *ReadError) Error() string {
	return "read failed on file #" + strconv.Itoa(e.Index) + " " + strconv.Quote(e.Name) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrReadFailed) true.
func (e *ReadError) Is(target error) bool {
	return target == ErrReadFailed
}
