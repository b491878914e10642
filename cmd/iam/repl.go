package main

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/iam/pkg/config"
	"github.com/agenthands/iam/pkg/driver"
	"github.com/agenthands/iam/pkg/stdlib"
	"github.com/agenthands/iam/pkg/vm"
)

const (
	replPrompt     = "iam> "
	continuePrompt = "...  "
)

func cmdRepl(cfg *config.Config, diag *logrus.Logger, stdout io.Writer) int {
	printBanner(cfg, stdout)

	var (
		term   *stdlib.Terminal
		reader *stdlib.LineReader
	)
	if stdlib.TerminalSupported() {
		term = stdlib.NewTerminal(cfg.Prompt)
		defer term.Close()
		loadHistory(term, cfg.HistoryFile)
		defer saveHistory(term, cfg.HistoryFile)
	} else {
		reader = stdlib.NewLineReader(os.Stdin)
	}

	// input statements share the same terminal as the session itself
	var in vm.LineReader = reader
	if term != nil {
		in = term
	}

	session := driver.NewSession(driver.Options{
		Out:  stdout,
		In:   in,
		Diag: diag,
		Gas:  cfg.Gas,
	})

	for !session.Halted() {
		prompt := replPrompt
		if session.Pending() {
			prompt = continuePrompt
		}

		var (
			line string
			err  error
		)
		if term != nil {
			line, err = term.PromptLine(prompt)
		} else {
			line, err = reader.ReadLine()
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.WithError(err).Error("failed to read line")
			return 1
		}

		if err := session.Feed(line); err != nil {
			// gas is per statement batch, the session goes on
			log.WithError(err).Warn("statement failed")
		}
	}

	if err := session.Flush(); err != nil {
		log.WithError(err).Warn("statement failed")
	}
	return 0
}

func loadHistory(term *stdlib.Terminal, name string) {
	if name == "" {
		return
	}
	f, err := os.Open(name)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := term.ReadHistory(f); err != nil {
		log.WithError(err).WithField("file", name).Debug("failed to read history")
	}
}

func saveHistory(term *stdlib.Terminal, name string) {
	if name == "" {
		return
	}
	f, err := os.Create(name)
	if err != nil {
		log.WithError(err).WithField("file", name).Warn("failed to save history")
		return
	}
	defer f.Close()
	if _, err := term.WriteHistory(f); err != nil {
		log.WithError(err).WithField("file", name).Warn("failed to save history")
	}
}
