// Package fileset opens the underlying files of a concatenated stream and owns their descriptors.
package fileset

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/cenkalti/filecat/internal/filesection"
	"github.com/cenkalti/filecat/internal/logger"
	"github.com/cenkalti/filecat/internal/stringutil"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/sys/unix"
)

// Stdin is the path that refers to the standard input when given as the primary file.
const Stdin = "-"

// ErrIsDirectory is returned when one of the paths is a directory.
var ErrIsDirectory = errors.New("file is a directory")

// OpenError is returned from Open when a file in the set cannot be opened.
// Files before Index were opened successfully and have been closed again.
type OpenError struct {
	Index int
	Path  string
	Err   error
}

// Error implements error interface.
func (e *OpenError) Error() string {
	return "cannot open file #" + strconv.Itoa(e.Index) + " " + strconv.Quote(e.Path) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// FileSet is the ordered list of open files that make up a concatenation, with their known sizes.
type FileSet struct {
	files    []*os.File
	names    []string
	sizes    []int64
	seekable bool
}

// Open opens primary and then each of additional in order.
// If primary is "-", the standard input is duplicated instead of opening a path.
//
// If any file cannot be opened or is a directory, all files opened so far are closed and an *OpenError is returned.
func Open(primary string, additional []string, l logger.Logger) (*FileSet, error) {
	paths := make([]string, 0, 1+len(additional))
	paths = append(paths, primary)
	paths = append(paths, additional...)

	fs := &FileSet{
		files:    make([]*os.File, 0, len(paths)),
		names:    make([]string, 0, len(paths)),
		sizes:    make([]int64, 0, len(paths)),
		seekable: true,
	}
	for i, path := range paths {
		if i == 0 {
			l.Debugf("opening file `%s'", stringutil.Printable(path))
		} else {
			l.Debugf("opening additional file `%s'", stringutil.Printable(path))
		}
		f, fi, err := openFile(path, i == 0)
		if err == ErrIsDirectory {
			// Directory listing is handled elsewhere.
			l.Debugln("file is a directory, aborting")
		} else if err != nil {
			l.Errorf("cannot open file %s (%s)", stringutil.Printable(path), err)
		}
		if err != nil {
			_ = fs.Close()
			return nil, &OpenError{Index: i, Path: path, Err: err}
		}
		fs.files = append(fs.files, f)
		fs.names = append(fs.names, path)
		fs.sizes = append(fs.sizes, fi.Size())
		if !isSeekable(fi) {
			// If one file is not seekable, the concatenation is not either.
			fs.seekable = false
		}
	}
	return fs, nil
}

func openFile(path string, primary bool) (f *os.File, fi os.FileInfo, err error) {
	if primary && path == Stdin {
		fd, dupErr := unix.Dup(unix.Stdin)
		if dupErr != nil {
			return nil, nil, os.NewSyscallError("dup", dupErr)
		}
		f = os.NewFile(uintptr(fd), Stdin)
	} else {
		if strings.HasPrefix(path, "~/") {
			path, err = homedir.Expand(path)
			if err != nil {
				return nil, nil, err
			}
		}
		// O_NONBLOCK keeps opening a FIFO without a writer from blocking.
		f, err = os.OpenFile(path, os.O_RDONLY|unix.O_NONBLOCK, 0) // nolint: gosec
		if err != nil {
			return nil, nil, err
		}
	}
	defer func() {
		if err != nil {
			_ = f.Close()
		}
	}()
	fi, err = f.Stat()
	if err != nil {
		return
	}
	if fi.IsDir() {
		err = ErrIsDirectory
		return
	}
	if fi.Mode().IsRegular() {
		// We would rather use memory for reading ahead than for caching what was already read.
		_ = adviseSequential(f)
	}
	return
}

// isSeekable reports whether offsets in the file can be mapped from its size:
// regular files, block devices and character devices reporting a non-zero size.
func isSeekable(fi os.FileInfo) bool {
	mode := fi.Mode()
	switch {
	case mode.IsRegular():
		return true
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice == 0:
		return true
	case mode&os.ModeCharDevice != 0:
		return fi.Size() != 0
	default:
		return false
	}
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int { return len(fs.files) }

// File returns the i'th file.
func (fs *FileSet) File(i int) *os.File { return fs.files[i] }

// Name returns the path the i'th file was opened with.
func (fs *FileSet) Name(i int) string { return fs.names[i] }

// Size returns the last known size of the i'th file.
func (fs *FileSet) Size(i int) int64 { return fs.sizes[i] }

// SetSize records a new size for the i'th file.
func (fs *FileSet) SetSize(i int, size int64) {
	fs.sizes[i] = size
}

// Sizes returns the size table. The returned slice must not be modified.
func (fs *FileSet) Sizes() []int64 { return fs.sizes }

// TotalSize returns the sum of the sizes of all files.
func (fs *FileSet) TotalSize() int64 { return filesection.Total(fs.sizes) }

// Seekable reports whether every file in the set is seekable.
func (fs *FileSet) Seekable() bool { return fs.seekable }

// Close closes all files in the set. It is safe to call Close more than once.
func (fs *FileSet) Close() error {
	var result error
	for _, f := range fs.files {
		err := f.Close()
		if err != nil && result == nil {
			result = err
		}
	}
	fs.files = nil
	fs.names = nil
	fs.sizes = nil
	return result
}
