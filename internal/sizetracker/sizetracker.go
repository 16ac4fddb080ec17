// Package sizetracker notices changes in the size of files while they are being read.
package sizetracker

import "os"

// Table is the list of files and their last known sizes.
type Table interface {
	File(i int) *os.File
	Size(i int) int64
	SetSize(i int, size int64)
}

// Tracker decides when a file needs to be checked again.
// Stat calls are amortized over Interval reads.
type Tracker struct {
	Interval int
	reads    int
}

// New returns a Tracker that checks file size once in every interval reads.
func New(interval int) *Tracker {
	return &Tracker{Interval: interval}
}

// Tick counts a read and reports whether the file should be checked now.
func (t *Tracker) Tick() bool {
	t.reads++
	return t.Interval > 0 && t.reads%t.Interval == 0
}

// Reads returns the number of reads counted so far.
func (t *Tracker) Reads() int { return t.reads }

// Reconcile stats the i'th file in table and records its size if it has changed.
// It returns the difference between the new and the old size.
func Reconcile(table Table, i int) (delta int64, err error) {
	fi, err := table.File(i).Stat()
	if err != nil {
		return 0, err
	}
	old := table.Size(i)
	if fi.Size() == old {
		return 0, nil
	}
	table.SetSize(i, fi.Size())
	return fi.Size() - old, nil
}
