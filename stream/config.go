package stream

import (
	"os"
	"strings"
	"time"

	"github.com/cenkalti/filecat/internal/stringutil"
	"gopkg.in/yaml.v2"
)

// Mode selects seekability, pace control and the read strategy of a Stream.
type Mode int

const (
	// ModeStandard is plain file access: seekable if all files are, paced by the caller, blocking reads.
	ModeStandard Mode = iota
	// ModeStreaming never blocks the caller for long: reads wait for data with a bounded poll.
	ModeStreaming
	// ModeDevice is ModeStreaming for devices with a broken poll implementation.
	// Reads are retried in a loop with a small sleep instead of polling.
	ModeDevice
)

var modeNames = map[Mode]string{
	ModeStandard:  "file",
	ModeStreaming: "stream",
	ModeDevice:    "kfir",
}

// ParseMode returns the Mode for an access name. Unknown names select ModeStandard.
func ParseMode(name string) Mode {
	switch strings.ToLower(name) {
	case "stream":
		return ModeStreaming
	case "kfir":
		return ModeDevice
	default:
		return ModeStandard
	}
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*m = ParseMode(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Mode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// Notifier shows a message to the user.
type Notifier func(title, text string)

// Config for opening a Stream.
type Config struct {
	// Files read after the primary file, in order.
	AdditionalFiles []string `yaml:"additional_files"`
	// Selects seekability, pace control and read strategy.
	Mode Mode `yaml:"mode"`
	// Recommended buffering delay in milliseconds. Reported with GetPTSDelay query.
	CachingDelay int `yaml:"caching_delay"`
	// Maximum duration of a single wait for data in ModeStreaming.
	PollInterval time.Duration `yaml:"poll_interval"`
	// Sleep between empty reads in ModeDevice and after a failed read.
	RetryDelay time.Duration `yaml:"retry_delay"`
	// The size of the file being read is checked once in this many reads. Zero disables the check.
	StatInterval int `yaml:"stat_interval"`
	// Called once when reading fails.
	Notifier Notifier `yaml:"-"`
}

// DefaultConfig for Stream.
var DefaultConfig = Config{
	Mode:         ModeStandard,
	CachingDelay: 300,
	PollInterval: 500 * time.Millisecond,
	RetryDelay:   10 * time.Millisecond,
	StatInterval: 10,
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// A missing file is not an error, DefaultConfig is returned in that case.
//
// Besides the additional_files list, additional files may be given as a comma-separated
// string in the file_cat key. Those are appended after the list.
func LoadConfig(filename string) (*Config, error) {
	c := DefaultConfig
	b, err := os.ReadFile(filename) // nolint: gosec
	if os.IsNotExist(err) {
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	var cat struct {
		FileCat string `yaml:"file_cat"`
	}
	if err = yaml.Unmarshal(b, &cat); err != nil {
		return nil, err
	}
	c.AdditionalFiles = append(c.AdditionalFiles, stringutil.SplitList(cat.FileCat)...)
	return &c, nil
}
