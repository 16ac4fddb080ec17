package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cenkalti/filecat/internal/jsonutil"
	"github.com/cenkalti/filecat/internal/logger"
	"github.com/cenkalti/filecat/internal/stringutil"
	"github.com/cenkalti/filecat/stream"
	clog "github.com/cenkalti/log"
	"github.com/juju/ratelimit"
	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli"
)

var (
	// Version of the program. Set during build.
	Version = "0.0.0"

	cfg *stream.Config
	log = logger.New("filecat")
)

func main() {
	app := cli.NewApp()
	app.Name = "filecat"
	app.Usage = "Read split files as a single stream"
	app.Version = Version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "read config from `FILE`",
			Value: "~/.filecat.yaml",
		},
		cli.StringFlag{
			Name:  "cat",
			Usage: "concatenate with additional files, comma-separated",
		},
		cli.StringFlag{
			Name:  "mode, m",
			Usage: "access mode: file, stream or kfir",
		},
		cli.IntFlag{
			Name:  "caching",
			Usage: "caching value in ms",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "enable debug log",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level: debug, info, notice, warning, error or critical",
		},
	}
	app.Before = handleBeforeCommand
	app.Commands = []cli.Command{
		{
			Name:      "cat",
			Usage:     "write the stream to standard output",
			ArgsUsage: "PATH",
			Flags: []cli.Flag{
				cli.Int64Flag{
					Name:  "offset, o",
					Usage: "start reading at logical `OFFSET`",
				},
				cli.Int64Flag{
					Name:  "rate, r",
					Usage: "limit output to `BYTES` per second",
				},
				cli.BoolFlag{
					Name:  "stats, s",
					Usage: "print stream stats to standard error when done",
				},
			},
			Action: handleCat,
		},
		{
			Name:      "info",
			Usage:     "print information about the stream",
			ArgsUsage: "PATH",
			Action:    handleInfo,
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func handleBeforeCommand(c *cli.Context) error {
	configPath, err := homedir.Expand(c.GlobalString("config"))
	if err != nil {
		return err
	}
	cfg, err = stream.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if c.GlobalIsSet("cat") {
		cfg.AdditionalFiles = stringutil.SplitList(c.GlobalString("cat"))
	}
	if c.GlobalIsSet("mode") {
		cfg.Mode = stream.ParseMode(c.GlobalString("mode"))
	}
	if c.GlobalIsSet("caching") {
		cfg.CachingDelay = c.GlobalInt("caching")
	}
	cfg.Notifier = func(title, text string) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", title, text)
	}
	if c.GlobalIsSet("log-level") {
		if err = logger.SetLevelName(c.GlobalString("log-level")); err != nil {
			return err
		}
	}
	if c.GlobalBool("debug") {
		logger.SetLevel(clog.DEBUG)
	}
	return nil
}

func openStream(c *cli.Context) (*stream.Stream, error) {
	path := c.Args().First()
	if path == "" {
		return nil, errors.New("path is required, use \"-\" for standard input")
	}
	return stream.Open(path, *cfg)
}

func handleCat(c *cli.Context) error {
	s, err := openStream(c)
	if err != nil {
		return err
	}
	defer s.Close()

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigC)
		close(sigC)
	}()
	go func() {
		if _, ok := <-sigC; ok {
			s.Cancel()
		}
	}()

	if c.IsSet("offset") {
		if !s.Seekable() {
			log.Warning("stream is not seekable, offset may be ignored")
		}
		if _, err = s.Seek(c.Int64("offset"), io.SeekStart); err != nil {
			return err
		}
	}
	var r io.Reader = s
	if rate := c.Int64("rate"); rate > 0 {
		r = ratelimit.Reader(s, ratelimit.NewBucketWithRate(float64(rate), rate))
	}
	err = copyStream(os.Stdout, r)
	if c.Bool("stats") {
		_ = jsonutil.Fprint(os.Stderr, s.Stats())
	}
	if errors.Is(err, stream.ErrCanceled) {
		return nil
	}
	return err
}

// copyStream is like io.Copy but stops on cancellation instead of retrying forever.
func copyStream(w io.Writer, r io.Reader) error {
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

type info struct {
	ID             string
	Files          int
	Size           int64
	Mode           string
	Seekable       bool
	FastSeekable   bool
	PaceControlled bool
	MTU            int
	PTSDelay       string
}

func handleInfo(c *cli.Context) error {
	s, err := openStream(c)
	if err != nil {
		return err
	}
	defer s.Close()

	var (
		seek     stream.CanSeek
		fastSeek stream.CanFastSeek
		pace     stream.CanControlPace
		mtu      stream.GetMTU
		delay    stream.GetPTSDelay
	)
	for _, q := range []stream.Query{&seek, &fastSeek, &pace, &mtu, &delay} {
		if err = s.Control(q); err != nil {
			return err
		}
	}
	return jsonutil.Fprint(os.Stdout, info{
		ID:             s.ID(),
		Files:          s.NumFiles(),
		Size:           s.Size(),
		Mode:           cfg.Mode.String(),
		Seekable:       seek.Value,
		FastSeekable:   fastSeek.Value,
		PaceControlled: pace.Value,
		MTU:            mtu.Value,
		PTSDelay:       delay.Value.String(),
	})
}
