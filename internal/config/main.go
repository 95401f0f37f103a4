package config

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	Play     = "play"
	Autoplay = "autoplay"
	Replay   = "replay"
	Dump     = "judge"
)

type Config struct {
	Command   string
	Directory string

	Difficulty    string
	Rate          float64
	Offset        time.Duration
	Delay         time.Duration
	ColumnSpacing uint
	RefreshRate   float64
	FramePeriod   time.Duration
	BarRow        uint
	ReleaseAfter  time.Duration
	JudgeFile     string
	JudgeOut      string
	Database      string
	Drain         string
	Seed          int64
	Verbose       bool

	scrollSpeedModifier uint
	keys4               string
	keys5               string
	keys6               string
	keys8               string
	strumKey            string
}

func app(c *Config) *kingpin.Application {
	a := kingpin.New("stepjudge", "Play and judge step charts in a terminal.")
	a.Version("0.2.0")

	a.Flag("rate", "Playback speed").Default("1.0").Short('r').Float64Var(&c.Rate)
	a.Flag("offset", "Global offset").Default("0ms").Short('o').DurationVar(&c.Offset)
	a.Flag("delay", "Start delay").Default("1.5s").Short('d').DurationVar(&c.Delay)
	a.Flag("spacing", "Columns between keys").Default("6").Short('S').UintVar(&c.ColumnSpacing)
	a.Flag("refresh-rate", "Monitor refresh rate").Default("240.0").Short('R').Float64Var(&c.RefreshRate)
	a.Flag("frame-period", "Render frame period").Default("1ms").Short('p').DurationVar(&c.FramePeriod)
	a.Flag("scroll-speed", "Scroll speed, lower is faster").Default("3").Short('s').UintVar(&c.scrollSpeedModifier)
	a.Flag("keys-single", "Keys for 4k").Default("_-mp").Short('k').StringVar(&c.keys4)
	a.Flag("keys-five", "Keys for 5k and frets").Default("zxcvb").StringVar(&c.keys5)
	a.Flag("keys-solo", "Keys for 6k").Default("ieotsc").StringVar(&c.keys6)
	a.Flag("keys-double", "Keys for 8k").Default("ieonhtsc").StringVar(&c.keys8)
	a.Flag("strum-key", "Strum bar key for fret charts").Default(" ").StringVar(&c.strumKey)
	a.Flag("bar-row", "Console row to render hit bar").Default("8").UintVar(&c.BarRow)
	a.Flag("release-after", "A key counts as released this long after its last repeat").Default("120ms").DurationVar(&c.ReleaseAfter)
	a.Flag("difficulty", "Difficulty name, the first chart if empty").Short('D').StringVar(&c.Difficulty)
	a.Flag("judge", "Judge settings file").Short('j').ExistingFileVar(&c.JudgeFile)
	a.Flag("db", "Score database").Default("./scores.db").StringVar(&c.Database)
	a.Flag("drain", "Life drain").Default("normal").EnumVar(&c.Drain, "normal", "no-recover", "sudden-death")
	a.Flag("seed", "Autoplay random seed").Default("0").Int64Var(&c.Seed)
	a.Flag("verbose", "Debug logging").Short('v').BoolVar(&c.Verbose)

	play := a.Command(Play, "Play a chart").Default()
	play.Arg("directory", "Song/chart directory").Required().ExistingDirVar(&c.Directory)
	auto := a.Command(Autoplay, "Let the computer play a chart")
	auto.Arg("directory", "Song/chart directory").Required().ExistingDirVar(&c.Directory)
	replay := a.Command(Replay, "Judge the saved performances of a chart again")
	replay.Arg("directory", "Song/chart directory").Required().ExistingDirVar(&c.Directory)
	dump := a.Command(Dump, "Write the default judge settings")
	dump.Arg("file", "Judge file to write").Required().StringVar(&c.JudgeOut)
	return a
}

// Parse reads the command line, without the program name.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	cmd, err := app(c).Parse(args)
	if err != nil {
		return nil, err
	}
	c.Command = cmd
	if c.Rate <= 0 {
		return nil, errors.Errorf("rate must be positive, got %v", c.Rate)
	}
	if c.RefreshRate <= 0 {
		return nil, errors.Errorf("refresh rate must be positive, got %v", c.RefreshRate)
	}
	if len([]rune(c.strumKey)) != 1 {
		return nil, errors.Errorf("strum key must be one key, got %q", c.strumKey)
	}
	return c, nil
}

// LineSeconds is how much music time one console line of the note field
// covers.
func (c *Config) LineSeconds() float64 {
	return float64(c.scrollSpeedModifier) / c.RefreshRate
}

func (c *Config) Keys(nKeys uint8) []rune {
	switch nKeys {
	case 4:
		return []rune(c.keys4)
	case 5:
		return []rune(c.keys5)
	case 6:
		return []rune(c.keys6)
	case 8:
		return []rune(c.keys8)
	}
	return []rune(c.keys4)
}

func (c *Config) KeyColumn(r rune, nKeys uint8) int {
	for i, k := range c.Keys(nKeys) {
		if r == k {
			return i
		}
	}
	return -1
}

func (c *Config) StrumKey() rune {
	return []rune(c.strumKey)[0]
}
