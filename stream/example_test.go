package stream_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cenkalti/filecat/stream"
)

func Example() {
	dir, err := os.MkdirTemp("", "filecat-example-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	part1 := filepath.Join(dir, "movie.ts.001")
	part2 := filepath.Join(dir, "movie.ts.002")
	_ = os.WriteFile(part1, []byte("hello, "), 0600)
	_ = os.WriteFile(part2, []byte("world"), 0600)

	cfg := stream.DefaultConfig
	cfg.AdditionalFiles = []string{part2}
	s, err := stream.Open(part1, cfg)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	_, _ = s.Seek(3, io.SeekStart)
	b, _ := io.ReadAll(s)
	fmt.Println(s.Size(), string(b))
	// Output: 12 lo, world
}
