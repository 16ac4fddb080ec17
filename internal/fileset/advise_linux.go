package fileset

import (
	"os"

	"golang.org/x/sys/unix"
)

func adviseSequential(f *os.File) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}
	var advErr error
	err = rc.Control(func(fd uintptr) {
		advErr = unix.Fadvise(int(fd), 0, 0, unix.FADV_SEQUENTIAL)
	})
	if err != nil {
		return err
	}
	return advErr
}
