package main

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"git.lost.host/meutraa/stepjudge/internal/config"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

// newLogger logs to stderr, or to a file while the terminal is taken by
// the note field.
func newLogger(c *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Verbose {
		zc = zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if c.Command == config.Play {
		zc.OutputPaths = []string{"stepjudge.log"}
		zc.ErrorOutputPaths = []string{"stepjudge.log"}
	}
	return zc.Build()
}

func run(args []string) error {
	c, err := config.Parse(args)
	if nil != err {
		return err
	}
	if c.Command == config.Dump {
		return config.WriteJudge(c.JudgeOut, config.DefaultJudge())
	}

	logger, err := newLogger(c)
	if nil != err {
		return err
	}
	defer logger.Sync()

	g := &Program{Config: c, Log: logger}
	if err := g.Init(); nil != err {
		return err
	}
	switch c.Command {
	case config.Autoplay:
		_, err = g.Autoplay()
	case config.Replay:
		_, err = g.Replay()
	default:
		err = g.Play()
	}
	return err
}
