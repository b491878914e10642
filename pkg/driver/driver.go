// Package driver runs whole IAM programs: it tokenizes the source once,
// indexes its loops and steps a vm.Machine until the program is exhausted
// or halted.
package driver

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/iam/pkg/compiler/lexer"
	"github.com/agenthands/iam/pkg/config"
	"github.com/agenthands/iam/pkg/core/env"
	"github.com/agenthands/iam/pkg/vm"
)

var log = logrus.New()

// SetLogLevel changes the driver logger level.
func SetLogLevel(level logrus.Level) {
	log.Level = level
}

// GetLogLevel returns the driver logger level.
func GetLogLevel() logrus.Level {
	return log.Level
}

// Options wire a run to its collaborators.
type Options struct {
	Out  io.Writer          // print output
	In   vm.LineReader      // input statement source
	Diag logrus.FieldLogger // diagnostics channel
	Gas  int                // statement budget, 0 = unlimited
}

// Result describes a finished run.
type Result struct {
	Env    *env.Env
	Halted bool // EXIT was reached
	Steps  int
	Tokens int
}

// Run executes src from a fresh environment.
func Run(src string, opts Options) (*Result, error) {
	return RunIn(env.New(), src, opts)
}

// RunIn executes src against an existing environment.
func RunIn(e *env.Env, src string, opts Options) (*Result, error) {
	tokens := lexer.Tokenize(src)

	m := vm.New(tokens, e)
	m.Out = opts.Out
	m.In = opts.In
	m.Diag = opts.Diag

	err := m.Run(opts.Gas)
	res := &Result{
		Env:    m.Env,
		Halted: m.Halted,
		Steps:  m.Steps,
		Tokens: len(tokens),
	}

	log.WithFields(logrus.Fields{
		"tokens": res.Tokens,
		"steps":  res.Steps,
		"halted": res.Halted,
	}).Debug("run finished")

	return res, err
}

// NewDiagnostics builds the diagnostics logger described by cfg.
func NewDiagnostics(cfg *config.Config, w io.Writer) (*logrus.Logger, error) {
	ll, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	d := logrus.New()
	d.Level = ll
	d.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	d.Out = w
	if !cfg.DiagnosticsEnabled() {
		d.Out = io.Discard
	}
	return d, nil
}
