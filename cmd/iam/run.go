package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/iam/pkg/config"
	"github.com/agenthands/iam/pkg/driver"
	"github.com/agenthands/iam/pkg/stdlib"
)

func cmdRun(cfg *config.Config, diag *logrus.Logger, path string, stdout io.Writer) int {
	sandbox := stdlib.NewFSSandbox("", cfg.MaxSourceSize)

	var (
		src string
		err error
	)
	if path == "" {
		src, err = sandbox.ReadFrom(os.Stdin)
	} else {
		src, err = sandbox.ReadSource(path)
	}
	if err != nil {
		log.WithError(err).Error("failed to load program")
		return 1
	}

	printBanner(cfg, stdout)

	in := &inputSource{prompt: cfg.Prompt, interactive: path != "" && stdlib.TerminalSupported()}
	defer in.Close()

	res, err := driver.Run(src, driver.Options{
		Out:  stdout,
		In:   in,
		Diag: diag,
		Gas:  cfg.Gas,
	})
	if err != nil {
		log.WithError(err).Error("run failed")
		return 1
	}

	log.WithFields(logrus.Fields{
		"steps":  res.Steps,
		"halted": res.Halted,
	}).Debug("program finished")
	return 0
}

// inputSource serves input statements. The terminal is only taken over
// when the program actually asks for input.
type inputSource struct {
	prompt      string
	interactive bool

	term   *stdlib.Terminal
	reader *stdlib.LineReader
}

func (s *inputSource) ReadLine() (string, error) {
	if s.interactive {
		if s.term == nil {
			s.term = stdlib.NewTerminal(s.prompt)
		}
		return s.term.ReadLine()
	}
	if s.reader == nil {
		s.reader = stdlib.NewLineReader(os.Stdin)
	}
	return s.reader.ReadLine()
}

func (s *inputSource) Close() error {
	if s.term != nil {
		return s.term.Close()
	}
	return nil
}
