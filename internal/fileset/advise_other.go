//go:build !linux

package fileset

import "os"

func adviseSequential(f *os.File) error {
	return nil
}
